package errors

import (
	"context"
	goerrors "errors"
	"strconv"

	apperrors "github.com/target/usermgmt-ui/internal/errors"
)

// Classify returns a short, low-cardinality error class suitable for tagging metrics/logs:
// "http_4xx"/"http_5xx" (or the exact status for 401/403/404), "timeout", "canceled",
// "transport", or "local".
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var rf *apperrors.RemoteCallFailure
	if goerrors.As(err, &rf) {
		switch {
		case rf.StatusCode == 401, rf.StatusCode == 403, rf.StatusCode == 404:
			return "http_" + strconv.Itoa(rf.StatusCode)
		case rf.StatusCode >= 500:
			return "http_5xx"
		case rf.StatusCode >= 400:
			return "http_4xx"
		case rf.StatusCode != 0:
			return "http_" + strconv.Itoa(rf.StatusCode)
		}
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	case rf != nil:
		return "transport"
	default:
		return "local"
	}
}
