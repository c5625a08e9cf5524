package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxBodyInError bounds how much of a response body is kept on a failure.
const maxBodyInError = 512

// RemoteCallFailure reports a failed call to the remote user-management API:
// a transport error (StatusCode == 0) or a non-2xx response.
type RemoteCallFailure struct {
	Op         string // login, register, profile
	Method     string
	URL        string
	StatusCode int
	// Body is the (truncated) response body, if any.
	Body string
	// Message is the server-provided message when the body carried one.
	Message string
	Cause   error
}

func (e *RemoteCallFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s", e.Op, e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *RemoteCallFailure) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the call failed because its deadline expired.
func (e *RemoteCallFailure) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// TruncateBody trims a response body for inclusion in a RemoteCallFailure.
// The cut never splits a multi-byte UTF-8 sequence.
func TruncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxBodyInError {
		return s
	}
	cut := maxBodyInError
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// IsRemoteCallFailure reports whether err is or wraps a *RemoteCallFailure.
func IsRemoteCallFailure(err error) bool {
	var rf *RemoteCallFailure
	return errors.As(err, &rf)
}

// StatusCode returns the HTTP status carried by a RemoteCallFailure, or 0.
func StatusCode(err error) int {
	var rf *RemoteCallFailure
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether the remote API rejected the session token.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
