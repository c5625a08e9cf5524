package metrics

import (
	"time"

	obserrors "github.com/target/usermgmt-ui/internal/observability/errors"
	"github.com/target/usermgmt-ui/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RemoteCall captures one call to the user-management API.
type RemoteCall struct {
	Op       string
	Duration time.Duration
	Err      error
}

// EmitRemoteCall emits a counter and timing for a remote API call.
func EmitRemoteCall(sink statsd.Sink, in RemoteCall) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"op":     in.Op,
		"result": resultOf(in.Err),
	}
	if in.Err != nil {
		tags["error_class"] = obserrors.Classify(in.Err)
	}

	sink.Count("session.remote_call", 1, tags)
	if in.Duration > 0 {
		sink.Timing("session.remote_call.duration", in.Duration, CloneTags(tags))
	}
}

// EmitHydration counts a background profile hydration attempt.
// trigger is "startup" or "login".
func EmitHydration(sink statsd.Sink, trigger string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"trigger": trigger,
		"result":  resultOf(err),
	}
	if err != nil {
		tags["error_class"] = obserrors.Classify(err)
	}
	sink.Count("session.hydration", 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
