// Package server implements the MCP (Model Context Protocol) server that hosts
// the live histogram plugin.
//
// The server plays the part of the camera viewer: it announces camera
// sessions, delivers frames, toggles the histogram display and hands the
// resulting histogram to clients as JSON or as a rendered PNG chart.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Camera session:
//   - histogram_camera_start: Start a session with a pixel format
//   - histogram_camera_stop: End the session and discard the histogram
//   - histogram_display: Show or hide the histogram display
//
// Frame delivery:
//   - histogram_frame_raw: Deliver a base64 MONO8 buffer
//   - histogram_frame_image: Deliver an image file, converted to MONO8
//
// Histogram access:
//   - histogram_get: Current bin edges and counts
//   - histogram_render: Current histogram as a base64 PNG bar chart
//   - histogram_set_interval: Change the update interval
//
// Frames are stamped with the time they are received, so the update
// interval applies to the rate at which clients deliver frames.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An unsupported pixel format is not an error: frames are accepted, a
// warning is logged on stderr, and the histogram simply never updates.
package server
