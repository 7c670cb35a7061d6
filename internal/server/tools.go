package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region to analyze. (x1,y1) inclusive, (x2,y2) exclusive, image coordinates. Results are reported in full-image coordinates.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// accumulatorProperties are the arguments that shape the Hough space.
func accumulatorProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"theta_scale": map[string]interface{}{
			"type":        "integer",
			"description": "Angle oversampling: the theta axis has 180*theta_scale steps (default 1)",
			"default":     1,
			"minimum":     1,
		},
		"rho_scale": map[string]interface{}{
			"type":        "integer",
			"description": "Distance oversampling of the rho axis (default 1)",
			"default":     1,
			"minimum":     1,
		},
		"edge_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"intensity", "contrast", "canny"},
			"description": "Edge test: 'intensity' votes with dark pixels, 'contrast' with pixels that differ from a neighbour, 'canny' with the outlines found by the Canny detector (default intensity)",
			"default":     "intensity",
		},
		"edge_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Intensity mode: pixels whose average RGB is below this vote (default 1, pure black only)",
			"default":     1,
		},
		"min_contrast": map[string]interface{}{
			"type":        "integer",
			"description": "Contrast mode: minimum luminance difference to a neighbour (default 85)",
			"default":     85,
		},
		"canny_low": map[string]interface{}{
			"type":        "integer",
			"description": "Canny mode: weak edge gradient threshold, 0-255 (default 50)",
			"default":     50,
		},
		"canny_high": map[string]interface{}{
			"type":        "integer",
			"description": "Canny mode: strong edge gradient threshold, 0-255 (default 150)",
			"default":     150,
		},
		"region": regionProperty(),
	}
}

// detectionProperties extends accumulatorProperties with peak selection.
func detectionProperties() map[string]interface{} {
	props := accumulatorProperties()
	props["threshold"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum votes for a line (default 100). 0 turns every accumulator cell into a line.",
		"default":     100,
		"minimum":     0,
	}
	props["peak_radius"] = map[string]interface{}{
		"type":        "integer",
		"description": "Non-maximum suppression radius in accumulator cells (default 0, disabled)",
		"default":     0,
	}
	props["max_lines"] = map[string]interface{}{
		"type":        "integer",
		"description": "Keep only the strongest lines (default 0, unlimited)",
		"default":     0,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	overlayProps := detectionProperties()
	overlayProps["line_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex color for drawn lines (default #FF0000)",
		"default":     "#FF0000",
	}

	spaceProps := accumulatorProperties()
	spaceProps["heat"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Render with a color ramp instead of greyscale (default false)",
		"default":     false,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Hough Transform
		{
			Name:        "hough_axes",
			Description: "Report the Hough accumulator geometry (theta and rho axis sizes, rho half offset, maximum line length) for an image and scale factors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"theta_scale": accumulatorProperties()["theta_scale"],
					"rho_scale":   accumulatorProperties()["rho_scale"],
					"region":      regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hough_detect_lines",
			Description: "Detect straight lines with the Hough transform. Returns each line's endpoints clipped to the image, its angle, distance from the origin and vote count, plus accumulator statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_space",
			Description: "Render the Hough accumulator as a base64 PNG. Columns are angles, rows are distances with the largest at the top; brighter cells have more votes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spaceProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_overlay",
			Description: "Detect lines and return the image with them drawn on top, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_clip_segment",
			Description: "Clip a segment to a rectangle (Liang-Barsky). Coordinates are Cartesian with y growing upward; the rectangle is inclusive on all sides.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rect": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"left":   map[string]interface{}{"type": "integer"},
							"right":  map[string]interface{}{"type": "integer"},
							"bottom": map[string]interface{}{"type": "integer"},
							"top":    map[string]interface{}{"type": "integer"},
						},
						"required": []string{"left", "right", "bottom", "top"},
					},
					"segment": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"rect", "segment"},
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
