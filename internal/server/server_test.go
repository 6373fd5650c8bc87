package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/fview-histogram/internal/config"
)

// newTestServer creates a server with the default configuration.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.Histogram() == nil || s.Host() == nil {
		t.Fatal("New() did not wire the histogram plugin")
	}
	if _, ok := s.Host().Registry().Get(s.Histogram().Name()); !ok {
		t.Error("histogram plugin not registered with the host")
	}
	if s.Histogram().Interval().Milliseconds() != 100 {
		t.Errorf("interval: got %v, want 100ms", s.Histogram().Interval())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.UpdateIntervalMsec = 0
	if _, err := New(cfg); err == nil {
		t.Error("New should reject an invalid configuration")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "fview-histogram" {
		t.Errorf("serverInfo.name: got %v", info["name"])
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "p", Method: "ping"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID != "p" {
		t.Errorf("ID: got %v, want p", resp.ID)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := newTestServer(t)
	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("notification should get no response, got %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "resources/list"})

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("code: got %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("message should name the method: %s", resp.Error.Message)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"histogram_camera_start","arguments":{"pixel_format":"MONO8"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"histogram_frame_raw","arguments":{"data_base64":"AAAAAA=="}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var ids []float64
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if resp.Error != nil {
			t.Errorf("response %v failed: %+v", resp.ID, resp.Error)
		}
		ids = append(ids, resp.ID.(float64))
	}

	if len(ids) != 4 {
		t.Fatalf("expected 4 responses, got %v", ids)
	}
	for i, id := range ids {
		if id != float64(i+1) {
			t.Errorf("response %d: got id %v", i, id)
		}
	}

	if got := s.Histogram().Snapshot().Counts[0]; got != 4 {
		t.Errorf("bin 0 after raw frame: got %f, want 4", got)
	}
}
