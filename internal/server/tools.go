package server

import "github.com/ironsheep/screens-mcp/internal/resolution"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Pixel Zoom
		{
			Name:        "screen_load_image",
			Description: "Load an image file into the pixel zoom widget. Non-image files are rejected and leave the widget unchanged; missing, broken or slow files are replaced by the generated sample. Centres the zoom area and returns the rendered zoom view.",
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
		{
			Name:        "screen_generate_sample",
			Description: "Load the generated 300x200 sample image into the pixel zoom widget.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "screen_set_viewport",
			Description: "Describe where the sample image is displayed, in viewport coordinates, so pointer events can be mapped onto it. Until called, the image is assumed to be displayed at its natural size at the origin.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_left":   map[string]interface{}{"type": "number", "description": "Left edge of the displayed image"},
					"image_top":    map[string]interface{}{"type": "number", "description": "Top edge of the displayed image"},
					"image_width":  map[string]interface{}{"type": "number", "description": "Displayed image width (> 0)"},
					"image_height": map[string]interface{}{"type": "number", "description": "Displayed image height (> 0)"},
					"container_x": map[string]interface{}{
						"type":        "number",
						"description": "Left edge of the zoom area's container (default image_left)",
					},
					"container_y": map[string]interface{}{
						"type":        "number",
						"description": "Top edge of the zoom area's container (default image_top)",
					},
				},
				"required": []string{"image_left", "image_top", "image_width", "image_height"},
			},
		},
		{
			Name:        "screen_pointer",
			Description: "Send a pointer event to the zoom area drag controller. Presses and moves on the image reposition the area and re-render; moves are ignored unless dragging and over the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"press", "move", "release", "hover"},
						"description": "Pointer event kind",
					},
					"target": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"image", "handle"},
						"description": "What a press landed on (default image)",
						"default":     "image",
					},
					"x": map[string]interface{}{"type": "number", "description": "Viewport X coordinate"},
					"y": map[string]interface{}{"type": "number", "description": "Viewport Y coordinate"},
				},
				"required": []string{"event"},
			},
		},
		{
			Name:        "screen_zoom_level",
			Description: "Set the zoom slider (1-40) and re-render. Levels up to 10 blit with smoothing, levels above 20 add a pixel grid, and level 40 splits pixels into RGB subpixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"level": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     40,
						"description": "Zoom level",
					},
				},
				"required": []string{"level"},
			},
		},
		{
			Name:        "screen_zoom_render",
			Description: "Render the zoom view around an explicit image pixel without moving the zoom area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "integer", "description": "Focus X in image pixels"},
					"y": map[string]interface{}{"type": "integer", "description": "Focus Y in image pixels"},
					"level": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     40,
						"description": "Zoom level (default: current slider value)",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Color Mixer
		{
			Name:        "screen_color_mix",
			Description: "Set the RGB sliders. Returns the swatch colour and a 10x10 grid of cells, each showing only one channel, cycling red, green, blue.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"r": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255, "description": "Red"},
					"g": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255, "description": "Green"},
					"b": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255, "description": "Blue"},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the swatch and grid as a PNG (default true)",
						"default":     true,
					},
				},
				"required": []string{"r", "g", "b"},
			},
		},

		// Resolution Explorer
		{
			Name:        "screen_resolution",
			Description: "Select a resolution factor and return the source image downsampled by that factor and scaled back up with hard pixel edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"factor": map[string]interface{}{
						"type":        "string",
						"enum":        resolution.Names(),
						"description": "high (1.0), medium (0.5), low (0.25) or very-low (0.1)",
					},
				},
				"required": []string{"factor"},
			},
		},
		{
			Name:        "screen_resolution_all",
			Description: "Render the resolution source at every factor in one call. Does not change the selected factor.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		{
			Name:        "screen_state",
			Description: "Report the current state of all three widgets without rendering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
