package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{"", " session/hydration ", "session_hydration"},
		{"usermgmt", "session..remote_call", "usermgmt.session.remote_call"},
		{"usermgmt", "", ""},
		{"", "a:b|c", "a_b_c"},
	}

	for _, tt := range tests {
		if got := metricName(tt.prefix, tt.name); got != tt.want {
			t.Fatalf("metricName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":       "prod",
		" service ": " usermgmt ",
	}
	local := map[string]string{
		"result": " success ",
		"":       "ignored",
		"env":    "stage",
	}

	got := formatTags(global, local)
	want := "|#env:stage,result:success,service:usermgmt"
	if got != want {
		t.Fatalf("formatTags mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := formatTags(nil, nil); got != "" {
		t.Fatalf("formatTags(nil, nil) = %q, want empty string", got)
	}
}

func TestClientLine(t *testing.T) {
	t.Parallel()

	c := &Client{prefix: "usermgmt", globalTags: map[string]string{"env": "dev"}}
	got := c.line("session.hydration", "1|c", map[string]string{"result": "failure"})
	want := "usermgmt.session.hydration:1|c|#env:dev,result:failure"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestClientWritesOverConn(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	c := &Client{prefix: "usermgmt", conn: clientConn}
	if !c.Enabled() {
		t.Fatal("expected client to be enabled with a connection")
	}

	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := peerConn.Read(buf)
		done <- string(buf[:n])
	}()

	c.Timing("session.remote_call", 1500*time.Microsecond, map[string]string{"op": "login"})

	select {
	case got := <-done:
		if got != "usermgmt.session.remote_call:1.5|ms|#op:login" {
			t.Fatalf("unexpected payload %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for metric")
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if c.Enabled() {
		t.Fatal("expected client to be disabled after Close")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	t.Parallel()

	var c *Client
	c.Count("x", 1, nil)
	c.Timing("x", time.Second, nil)
	if c.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}
