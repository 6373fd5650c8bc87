package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Camera Session
		{
			Name:        "histogram_camera_start",
			Description: "Start a camera session. Resets the histogram to 50 bin edges spanning 0-255. Only MONO8 frames produce a histogram; other formats are accepted but never update it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cam_id": map[string]interface{}{
						"type":        "string",
						"description": "Camera identifier",
					},
					"pixel_format": map[string]interface{}{
						"type":        "string",
						"description": "Pixel format reported by the camera, e.g. MONO8, MONO16, RGB8. Formats other than MONO8, including none, are accepted and warn on each frame",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Sensor width in pixels",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Sensor height in pixels",
					},
				},
			},
		},
		{
			Name:        "histogram_camera_stop",
			Description: "Stop the camera session and discard the histogram.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "histogram_display",
			Description: "Show or hide the histogram display. While hidden, frames are ignored by the histogram.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"visible": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the histogram display is shown",
					},
				},
				"required": []string{"visible"},
			},
		},

		// Frame Delivery
		{
			Name:        "histogram_frame_raw",
			Description: "Deliver one raw frame buffer (one byte per pixel, row-major) encoded as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded frame buffer",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional frame width; when given with height the buffer size is checked",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Optional frame height",
					},
				},
				"required": []string{"data_base64"},
			},
		},
		{
			Name:        "histogram_frame_image",
			Description: "Deliver an image file as a frame. The image is converted to 8-bit grayscale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Histogram Access
		{
			Name:        "histogram_get",
			Description: "Get the current histogram: pixel format, bin edges, counts and update statistics.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "histogram_render",
			Description: "Render the current histogram as a base64-encoded PNG bar chart.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Chart width in pixels. Default 800",
						"default":     800,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Chart height in pixels. Default 200",
						"default":     200,
					},
				},
			},
		},
		{
			Name:        "histogram_set_interval",
			Description: "Set the minimum time between histogram recomputations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"update_interval_msec": map[string]interface{}{
						"type":        "integer",
						"description": "Interval in milliseconds (must be positive). Default 100",
						"default":     100,
					},
				},
				"required": []string{"update_interval_msec"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
