package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/screens-mcp/internal/drag"
	"github.com/ironsheep/screens-mcp/internal/imaging"
	"github.com/ironsheep/screens-mcp/internal/mixer"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "screen_zoom_level").
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
// Rejected file selections are reported the same way, with the user-facing
// message as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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

// executeTool dispatches one widget input event. Each call runs to
// completion before the next request is read.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Pixel zoom
	case "screen_load_image":
		return s.handleLoadImage(ctx, args)
	case "screen_generate_sample":
		return s.zoom.load(ctx, "")
	case "screen_set_viewport":
		return s.handleSetViewport(args)
	case "screen_pointer":
		return s.handlePointer(args)
	case "screen_zoom_level":
		return s.handleZoomLevel(args)
	case "screen_zoom_render":
		return s.handleZoomRender(args)

	// Color mixer
	case "screen_color_mix":
		return s.handleColorMix(args)

	// Resolution explorer
	case "screen_resolution":
		return s.handleResolution(args)
	case "screen_resolution_all":
		return s.resolution.all()

	case "screen_state":
		return s.handleState(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating absent arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Pixel Zoom Handlers ===

type loadImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLoadImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	return s.zoom.load(ctx, a.Path)
}

type setViewportArgs struct {
	ImageLeft   float64 `json:"image_left"`
	ImageTop    float64 `json:"image_top"`
	ImageWidth  float64 `json:"image_width"`
	ImageHeight float64 `json:"image_height"`

	// Container defaults to the image origin.
	ContainerX *float64 `json:"container_x"`
	ContainerY *float64 `json:"container_y"`
}

func (s *Server) handleSetViewport(args json.RawMessage) (interface{}, error) {
	var a setViewportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	container := drag.Point{X: a.ImageLeft, Y: a.ImageTop}
	if a.ContainerX != nil {
		container.X = *a.ContainerX
	}
	if a.ContainerY != nil {
		container.Y = *a.ContainerY
	}

	return s.zoom.setViewport(drag.Rect{
		Left:   a.ImageLeft,
		Top:    a.ImageTop,
		Width:  a.ImageWidth,
		Height: a.ImageHeight,
	}, container)
}

type pointerArgs struct {
	Event  string  `json:"event"`
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var target drag.Target
	switch a.Target {
	case "", "image":
		target = drag.TargetImage
	case "handle":
		target = drag.TargetHandle
	default:
		return nil, fmt.Errorf("unknown pointer target %q (want image or handle)", a.Target)
	}

	return s.zoom.pointer(a.Event, target, drag.Point{X: a.X, Y: a.Y})
}

type zoomLevelArgs struct {
	Level int `json:"level"`
}

func (s *Server) handleZoomLevel(args json.RawMessage) (interface{}, error) {
	var a zoomLevelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.zoom.setLevel(a.Level)
}

type zoomRenderArgs struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Level int `json:"level"`
}

func (s *Server) handleZoomRender(args json.RawMessage) (interface{}, error) {
	var a zoomRenderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.zoom.renderAt(image.Pt(a.X, a.Y), a.Level)
}

// === Color Mixer Handlers ===

type colorMixArgs struct {
	R            int   `json:"r"`
	G            int   `json:"g"`
	B            int   `json:"b"`
	IncludeImage *bool `json:"include_image"`
}

func (s *Server) handleColorMix(args json.RawMessage) (interface{}, error) {
	var a colorMixArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := mixer.FromInts(a.R, a.G, a.B)
	if err != nil {
		return nil, err
	}
	withImage := a.IncludeImage == nil || *a.IncludeImage
	return s.mixer.set(c, withImage)
}

// === Resolution Explorer Handlers ===

type resolutionArgs struct {
	Factor string `json:"factor"`
}

func (s *Server) handleResolution(args json.RawMessage) (interface{}, error) {
	var a resolutionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.resolution.selectFactor(a.Factor)
}

// === State ===

// StateResult is a snapshot of every widget.
type StateResult struct {
	Zoom       *ZoomResult     `json:"zoom"`
	Mixer      mixerState      `json:"mixer"`
	Resolution resolutionState `json:"resolution"`
}

type mixerState struct {
	Input  mixer.RGB `json:"input"`
	Swatch string    `json:"swatch"`
}

type resolutionState struct {
	Factor string          `json:"factor"`
	Source *imaging.Source `json:"source,omitempty"`
}

func (s *Server) handleState() *StateResult {
	return &StateResult{
		Zoom: s.zoom.snapshot(),
		Mixer: mixerState{
			Input:  s.mixer.current,
			Swatch: s.mixer.current.CSS(),
		},
		Resolution: resolutionState{
			Factor: s.resolution.factor.Name,
			Source: s.resolution.source,
		},
	}
}
