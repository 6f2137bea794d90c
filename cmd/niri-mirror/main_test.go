package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/yourusername/niri-mirror/internal/client"
	"github.com/yourusername/niri-mirror/internal/config"
	"github.com/yourusername/niri-mirror/internal/focus"
	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

func TestWorkspaceAction(t *testing.T) {
	tests := []struct {
		ref, by string
		want    string
		wantErr bool
	}{
		{"2", "auto", `{"Action":{"FocusWorkspace":{"reference":{"Index":2}}}}`, false},
		{"web", "auto", `{"Action":{"FocusWorkspace":{"reference":{"Name":"web"}}}}`, false},
		{"300", "auto", `{"Action":{"FocusWorkspace":{"reference":{"Name":"300"}}}}`, false},
		{"300", "id", `{"Action":{"FocusWorkspace":{"reference":{"Id":300}}}}`, false},
		{"3", "name", `{"Action":{"FocusWorkspace":{"reference":{"Name":"3"}}}}`, false},
		{"300", "index", "", true},
		{"x", "id", "", true},
		{"1", "position", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.by+"/"+tt.ref, func(t *testing.T) {
			action, err := workspaceAction(tt.ref, tt.by)
			if tt.wantErr {
				if err == nil {
					t.Errorf("workspaceAction(%q, %q) expected error", tt.ref, tt.by)
				}
				return
			}
			if err != nil {
				t.Fatalf("workspaceAction() error = %v", err)
			}
			data, err := models.EncodeRequest(action)
			if err != nil {
				t.Fatalf("EncodeRequest() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("encoded = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEventEnvelope(t *testing.T) {
	known, err := json.Marshal(eventEnvelope(&models.WindowClosed{ID: 7}))
	if err != nil {
		t.Fatal(err)
	}
	if string(known) != `{"WindowClosed":{"id":7}}` {
		t.Errorf("known event = %s", known)
	}

	unknown, err := json.Marshal(eventEnvelope(&models.UnknownEvent{Kind: "ConfigLoaded", Payload: json.RawMessage(`{"failed":false}`)}))
	if err != nil {
		t.Fatal(err)
	}
	if string(unknown) != `{"ConfigLoaded":{"failed":false}}` {
		t.Errorf("unknown event = %s", unknown)
	}
}

// serveCompositor plays niri on a unix socket: it streams the initial state on
// the first connection and answers every request on the second with Ok.
// Requests are delivered on the returned channel.
func serveCompositor(t *testing.T) (string, <-chan string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "niri.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	requests := make(chan string, 4)
	go func() {
		events, err := ln.Accept()
		if err != nil {
			return
		}
		defer events.Close()
		reqs, err := ln.Accept()
		if err != nil {
			return
		}
		defer reqs.Close()

		reader := bufio.NewReader(events)
		if _, err := reader.ReadString('\n'); err != nil {
			return
		}
		events.Write([]byte(`{"Ok":"Handled"}` + "\n" +
			`{"WorkspacesChanged":{"workspaces":[{"id":1,"idx":1,"name":null,"output":"DP-1","is_active":true,"is_focused":true,"is_urgent":false,"active_window_id":10}]}}` + "\n" +
			`{"WindowsChanged":{"windows":[` +
			`{"id":10,"title":"a","app_id":"foot","pid":1,"workspace_id":1,"is_focused":true,"is_floating":false,"is_urgent":false},` +
			`{"id":11,"title":"b","app_id":"foot","pid":2,"workspace_id":1,"is_focused":false,"is_floating":false,"is_urgent":false}]}}` + "\n"))

		line, err := bufio.NewReader(reqs).ReadString('\n')
		if err != nil {
			return
		}
		requests <- line
		reqs.Write([]byte(`{"Ok":"Handled"}` + "\n"))

		// Hold the event stream open until the client goes away
		buf := make([]byte, 1)
		events.Read(buf)
	}()
	return path, requests
}

func useSocket(t *testing.T, path string) {
	t.Helper()
	prevSocket, prevCfg := socketPath, cfg
	socketPath = path
	cfg = config.Default()
	cfg.Icons.Enabled = false
	t.Cleanup(func() { socketPath, cfg = prevSocket, prevCfg })
}

func TestWithMirror_CycleWindow(t *testing.T) {
	path, requests := serveCompositor(t)
	useSocket(t, path)

	var focused uint64
	err := withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
		if m.Windows.Len() != 2 || m.Workspaces.Len() != 1 {
			t.Errorf("mirror has %d windows, %d workspaces", m.Windows.Len(), m.Workspaces.Len())
		}
		id, err := focus.CycleWindow(ctx, c, m, true)
		focused = id
		return err
	})
	if err != nil {
		t.Fatalf("withMirror() error = %v", err)
	}
	if focused != 11 {
		t.Errorf("focused = %d, want 11", focused)
	}

	got := <-requests
	if got != `{"Action":{"FocusWindow":{"id":11}}}`+"\n" {
		t.Errorf("request = %q", got)
	}
}

func TestWithMirror_ConnectFailed(t *testing.T) {
	useSocket(t, filepath.Join(t.TempDir(), "missing.sock"))

	called := false
	err := withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected connect error")
	}
	if called {
		t.Error("callback ran without a connection")
	}
}
