package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestCodeHelpers(t *testing.T) {
	if !IsNotFound(NotFoundf("no %s", "match")) {
		t.Error("IsNotFound() = false, want true")
	}
	field := ValidationField("API_BASE_URL", "must be absolute")
	if !IsValidation(field) || GetField(field) != "API_BASE_URL" {
		t.Errorf("unexpected validation error: %+v", field)
	}
	wrapped := fmt.Errorf("outer: %w", Wrapf(errors.New("disk"), ErrCodeInternal, "read %s", "token"))
	if !IsInternal(wrapped) {
		t.Error("IsInternal() through fmt wrap = false, want true")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode() on plain error should be empty")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestRemoteCallFailure_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RemoteCallFailure
		want string
	}{
		{
			name: "status only",
			err:  &RemoteCallFailure{Op: "login", Method: http.MethodPost, URL: "http://api/api/auth/login", StatusCode: 401},
			want: "login: POST http://api/api/auth/login: status 401",
		},
		{
			name: "status and message",
			err: &RemoteCallFailure{
				Op: "register", Method: http.MethodPost, URL: "http://api/api/auth/register",
				StatusCode: 400, Message: "username taken",
			},
			want: "register: POST http://api/api/auth/register: status 400: username taken",
		},
		{
			name: "transport",
			err: &RemoteCallFailure{
				Op: "profile", Method: http.MethodGet, URL: "http://api/api/users/profile",
				Cause: errors.New("connection refused"),
			},
			want: "profile: GET http://api/api/users/profile: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoteCallFailure_Classification(t *testing.T) {
	unauthorized := fmt.Errorf("load: %w", &RemoteCallFailure{Op: "profile", StatusCode: http.StatusUnauthorized})
	if !IsRemoteCallFailure(unauthorized) {
		t.Error("IsRemoteCallFailure() = false, want true")
	}
	if !IsUnauthorized(unauthorized) {
		t.Error("IsUnauthorized() = false, want true")
	}
	if StatusCode(unauthorized) != http.StatusUnauthorized {
		t.Errorf("StatusCode() = %d", StatusCode(unauthorized))
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Error("IsUnauthorized() on plain error = true")
	}

	timeout := &RemoteCallFailure{Op: "profile", Cause: fmt.Errorf("do: %w", context.DeadlineExceeded)}
	if !timeout.Timeout() {
		t.Error("Timeout() = false, want true")
	}
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Error("errors.Is(DeadlineExceeded) = false, want true")
	}
}

func TestTruncateBody(t *testing.T) {
	if got := TruncateBody([]byte("  short  ")); got != "short" {
		t.Errorf("TruncateBody() = %q", got)
	}
	long := strings.Repeat("x", maxBodyInError+10)
	got := TruncateBody([]byte(long))
	if len(got) != maxBodyInError+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("TruncateBody() length = %d", len(got))
	}
}

func TestTruncateBody_KeepsRunesWhole(t *testing.T) {
	// "é" is two bytes, so a one-byte prefix puts the limit mid-rune.
	body := "x" + strings.Repeat("é", maxBodyInError)
	got := TruncateBody([]byte(body))
	if !utf8.ValidString(got) {
		t.Fatalf("TruncateBody() produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("TruncateBody() = %q, want ... suffix", got)
	}
	if len(got) != maxBodyInError-1+3 {
		t.Errorf("TruncateBody() length = %d, want %d", len(got), maxBodyInError-1+3)
	}
}
