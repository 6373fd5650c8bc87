package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ironsheep/fview-histogram/internal/config"
	"github.com/ironsheep/fview-histogram/internal/frames"
	"github.com/ironsheep/fview-histogram/internal/histogram"
	"github.com/ironsheep/fview-histogram/internal/host"
	applog "github.com/ironsheep/fview-histogram/internal/log"
	"github.com/ironsheep/fview-histogram/internal/plot"
)

// Server handles MCP protocol communication
type Server struct {
	cfg     config.Config
	cache   *frames.FrameCache
	updater *histogram.Updater
	host    *host.Host
	logger  *slog.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server hosting a histogram plugin configured by cfg.
func New(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	updater := histogram.NewUpdater(histogram.WithInterval(cfg.UpdateInterval()))
	reg := host.NewRegistry()
	if err := reg.Register(updater); err != nil {
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		cache:   frames.NewFrameCache(),
		updater: updater,
		host:    host.New(reg),
		logger:  applog.With("component", "server"),
	}, nil
}

// Host returns the plugin host driven by this server.
func (s *Server) Host() *host.Host {
	return s.host
}

// Histogram returns the hosted histogram plugin.
func (s *Server) Histogram() *histogram.Updater {
	return s.updater
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF,
// writing responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Raw frames arrive inline as base64, so allow large lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "fview-histogram",
				"version": "0.1.0",
			},
		},
	}
}

// plotOptions returns the configured chart size, overridden by non-zero arguments.
func (s *Server) plotOptions(width, height int) plot.Options {
	opts := plot.DefaultOptions()
	opts.Width = s.cfg.PlotWidth
	opts.Height = s.cfg.PlotHeight
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}
	return opts
}
