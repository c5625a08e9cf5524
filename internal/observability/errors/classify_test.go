package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "unauthorized", err: &apperrors.RemoteCallFailure{StatusCode: 401}, want: "http_401"},
		{name: "not found", err: &apperrors.RemoteCallFailure{StatusCode: 404}, want: "http_404"},
		{name: "bad request", err: &apperrors.RemoteCallFailure{StatusCode: 400}, want: "http_4xx"},
		{name: "server error", err: &apperrors.RemoteCallFailure{StatusCode: 503}, want: "http_5xx"},
		{name: "redirect", err: &apperrors.RemoteCallFailure{StatusCode: 302}, want: "http_302"},
		{
			name: "transport",
			err:  &apperrors.RemoteCallFailure{Cause: goerrors.New("connection refused")},
			want: "transport",
		},
		{
			name: "timeout",
			err:  fmt.Errorf("wrap: %w", &apperrors.RemoteCallFailure{Cause: context.DeadlineExceeded}),
			want: "timeout",
		},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "local", err: goerrors.New("disk full"), want: "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
