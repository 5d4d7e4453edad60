// Package server implements the MCP (Model Context Protocol) server that
// hosts the "How Screens Work" widgets.
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
// Requests are handled one at a time, in arrival order. Every tool call is a
// single widget input event and runs to completion before the next is read.
//
// # Available Tools
//
// Pixel zoom:
//   - screen_load_image: Choose a sample file
//   - screen_generate_sample: Use the generated sample
//   - screen_set_viewport: Report display geometry for pointer mapping
//   - screen_pointer: press, move, release and hover events
//   - screen_zoom_level: Zoom slider
//   - screen_zoom_render: Render around an explicit pixel
//
// Color mixer:
//   - screen_color_mix: RGB sliders
//
// Resolution explorer:
//   - screen_resolution: Factor selector
//   - screen_resolution_all: Every factor at once
//
// Other:
//   - screen_state: Snapshot of all widgets
//
// # Widget State
//
// Each widget owns its state; no tool touches another widget's state. The
// zoom and resolution widgets share only the decoded image cache.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Selecting a non-image file is such an error and leaves every widget as it
// was. Missing or undecodable files are not errors: the widget falls back to
// its generated placeholder and says so in the result's source block.
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Init(ctx); err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
