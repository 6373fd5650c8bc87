package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/fview-histogram/internal/frames"
	"github.com/ironsheep/fview-histogram/internal/histogram"
	"github.com/ironsheep/fview-histogram/internal/host"
	"github.com/ironsheep/fview-histogram/internal/plot"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "histogram_get").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Camera Session
	case "histogram_camera_start":
		return s.handleCameraStart(args)
	case "histogram_camera_stop":
		return s.handleCameraStop(args)
	case "histogram_display":
		return s.handleDisplay(args)

	// Frame Delivery
	case "histogram_frame_raw":
		return s.handleFrameRaw(args)
	case "histogram_frame_image":
		return s.handleFrameImage(args)

	// Histogram Access
	case "histogram_get":
		return s.handleGet(args)
	case "histogram_render":
		return s.handleRender(args)
	case "histogram_set_interval":
		return s.handleSetInterval(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Camera Session Handlers ===

type cameraStartArgs struct {
	CamID       string `json:"cam_id"`
	PixelFormat string `json:"pixel_format"`
	MaxWidth    int    `json:"max_width"`
	MaxHeight   int    `json:"max_height"`
}

// CameraStartResult describes the session that was started.
type CameraStartResult struct {
	Session   histogram.SessionInfo `json:"session"`
	Supported bool                  `json:"supported"`
	Edges     []float64             `json:"edges"`
}

func (s *Server) handleCameraStart(args json.RawMessage) (interface{}, error) {
	var a cameraStartArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CamID == "" {
		a.CamID = uuid.New().String()
	}

	info := histogram.SessionInfo{
		CamID:       a.CamID,
		PixelFormat: histogram.PixelFormat(a.PixelFormat),
		MaxWidth:    a.MaxWidth,
		MaxHeight:   a.MaxHeight,
	}
	s.host.StartCamera(info)

	return &CameraStartResult{
		Session:   info,
		Supported: info.PixelFormat.Supported(),
		Edges:     s.updater.Snapshot().Edges,
	}, nil
}

func (s *Server) handleCameraStop(args json.RawMessage) (interface{}, error) {
	_, running := s.host.Session()
	s.host.StopCamera()
	s.cache.Clear()
	return map[string]interface{}{"stopped": running}, nil
}

type displayArgs struct {
	Visible *bool `json:"visible"`
}

func (s *Server) handleDisplay(args json.RawMessage) (interface{}, error) {
	var a displayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Visible == nil {
		return nil, errors.New("visible is required")
	}
	if err := s.host.SetVisible(s.updater.Name(), *a.Visible); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"plugin":  s.updater.Name(),
		"visible": *a.Visible,
	}, nil
}

// === Frame Delivery Handlers ===

// FrameResult reports what happened to a delivered frame.
type FrameResult struct {
	Frame    uint64       `json:"frame"`
	Bytes    int          `json:"bytes"`
	Updated  bool         `json:"updated"`
	Updates  uint64       `json:"updates"`
	Warnings uint64       `json:"warnings"`
	Overlay  host.Overlay `json:"overlay"`
}

// deliver hands a buffer to the host and reports whether the histogram changed.
func (s *Server) deliver(data []byte) (*FrameResult, error) {
	before := s.updater.Snapshot().Updates

	overlay, err := s.host.ProcessFrame(histogram.Frame{
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	after := s.updater.Snapshot()
	return &FrameResult{
		Frame:    overlay.Frame,
		Bytes:    len(data),
		Updated:  after.Updates != before,
		Updates:  after.Updates,
		Warnings: after.Warnings,
		Overlay:  overlay,
	}, nil
}

type frameRawArgs struct {
	DataBase64 string `json:"data_base64"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

func (s *Server) handleFrameRaw(args json.RawMessage) (interface{}, error) {
	var a frameRawArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := frames.DecodeRaw(a.DataBase64, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return s.deliver(data)
}

type frameImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFrameImage(args json.RawMessage) (interface{}, error) {
	var a frameImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	f, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.deliver(f.Data)
}

// === Histogram Access Handlers ===

func (s *Server) handleGet(args json.RawMessage) (interface{}, error) {
	snap := s.updater.Snapshot()
	return map[string]interface{}{
		"histogram":            snap,
		"plugins":              s.host.Registry().Names(),
		"total":                snap.Total(),
		"visible":              s.host.Visible(s.updater.Name()),
		"update_interval_msec": s.updater.Interval().Milliseconds(),
	}, nil
}

type renderArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width < 0 || a.Height < 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", a.Width, a.Height)
	}
	return plot.Render(s.updater.Snapshot(), s.plotOptions(a.Width, a.Height))
}

type setIntervalArgs struct {
	UpdateIntervalMsec int `json:"update_interval_msec"`
}

func (s *Server) handleSetInterval(args json.RawMessage) (interface{}, error) {
	var a setIntervalArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.UpdateIntervalMsec <= 0 {
		return nil, fmt.Errorf("update_interval_msec must be positive, got %d", a.UpdateIntervalMsec)
	}

	s.cfg.UpdateIntervalMsec = a.UpdateIntervalMsec
	s.updater.SetInterval(s.cfg.UpdateInterval())
	return map[string]interface{}{
		"update_interval_msec": a.UpdateIntervalMsec,
	}, nil
}
