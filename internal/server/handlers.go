package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "hough_detect_lines").
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
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection/hough function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Hough Transform
	case "hough_axes":
		return s.handleHoughAxes(args)
	case "hough_detect_lines":
		return s.handleHoughDetectLines(args)
	case "hough_space":
		return s.handleHoughSpace(args)
	case "hough_overlay":
		return s.handleHoughOverlay(args)
	case "hough_clip_segment":
		return s.handleHoughClipSegment(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Hough Transform Handlers ===

// detectionArgs are shared by every tool that runs the pipeline. Pointer
// fields distinguish "not given" from an explicit 0, which is either
// meaningful (threshold) or an error the caller should hear about (scales).
type detectionArgs struct {
	Path          string          `json:"path"`
	ThetaScale    *int            `json:"theta_scale"`
	RhoScale      *int            `json:"rho_scale"`
	Threshold     *int            `json:"threshold"`
	EdgeMode      string          `json:"edge_mode"`
	EdgeThreshold *int            `json:"edge_threshold"`
	MinContrast   *int            `json:"min_contrast"`
	CannyLow      *int            `json:"canny_low"`
	CannyHigh     *int            `json:"canny_high"`
	PeakRadius    int             `json:"peak_radius"`
	MaxLines      int             `json:"max_lines"`
	Region        *imaging.Region `json:"region"`
}

// params overlays the given arguments on detection.DefaultParams.
func (a detectionArgs) params() detection.Params {
	p := detection.DefaultParams()
	if a.ThetaScale != nil {
		p.ThetaScale = *a.ThetaScale
	}
	if a.RhoScale != nil {
		p.RhoScale = *a.RhoScale
	}
	if a.Threshold != nil {
		p.Threshold = *a.Threshold
	}
	if a.EdgeMode != "" {
		p.EdgeMode = detection.EdgeMode(a.EdgeMode)
	}
	if a.EdgeThreshold != nil {
		p.EdgeThreshold = *a.EdgeThreshold
	}
	if a.MinContrast != nil {
		p.MinContrast = *a.MinContrast
	}
	if a.CannyLow != nil {
		p.CannyLow = *a.CannyLow
	}
	if a.CannyHigh != nil {
		p.CannyHigh = *a.CannyHigh
	}
	p.PeakRadius = a.PeakRadius
	p.MaxLines = a.MaxLines
	return p
}

// loadRegion returns the full image and the part of it to analyze.
func (s *Server) loadRegion(path string, region *imaging.Region) (full, analyzed image.Image, err error) {
	full, err = s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if region == nil {
		return full, full, nil
	}
	analyzed, err = imaging.Crop(full, *region)
	if err != nil {
		return nil, nil, err
	}
	return full, analyzed, nil
}

// detect runs the pipeline and reports the result in full-image coordinates.
func (s *Server) detect(a detectionArgs) (full image.Image, result *detection.Result, err error) {
	full, analyzed, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, nil, err
	}

	logger := s.logger.With().Str("path", a.Path).Logger()
	result, err = detection.Detect(analyzed, a.params(), logger)
	if err != nil {
		return nil, nil, err
	}

	if a.Region != nil {
		result.Translate(image.Pt(a.Region.X1, a.Region.Y1), full.Bounds().Dy())
	}
	return full, result, nil
}

func (s *Server) handleHoughAxes(args json.RawMessage) (interface{}, error) {
	var a detectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p := a.params()

	_, analyzed, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	bounds := analyzed.Bounds()
	axes, err := hough.NewAxes(bounds.Dx(), bounds.Dy(), p.ThetaScale, p.RhoScale)
	if err != nil {
		return nil, err
	}
	return axes, nil
}

// handleHoughDetectLines returns the detection.Result as is, so clients see
// the axes, statistics and rejected count alongside the lines.
func (s *Server) handleHoughDetectLines(args json.RawMessage) (interface{}, error) {
	var a detectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, result, err := s.detect(a)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type houghSpaceArgs struct {
	detectionArgs
	Heat bool `json:"heat"`
}

// HoughSpaceResult is the rendered accumulator.
//
// The image has one column per theta step and one row per rho bin, with the
// largest rho at the top.
type HoughSpaceResult struct {
	*imaging.EncodedImage

	// Axes describes the accumulator the image was rendered from.
	Axes hough.Axes `json:"axes"`

	// MaxVotes is the count that maps to full brightness.
	MaxVotes uint32 `json:"max_votes"`
}

func (s *Server) handleHoughSpace(args json.RawMessage) (interface{}, error) {
	var a houghSpaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	_, analyzed, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	acc, err := detection.Accumulate(analyzed, a.params())
	if err != nil {
		return nil, err
	}

	var rendered image.Image = imaging.HoughSpace(acc)
	if a.Heat {
		rendered = imaging.HoughSpaceHeat(acc)
	}
	encoded, err := imaging.EncodePNG(rendered)
	if err != nil {
		return nil, err
	}
	return &HoughSpaceResult{EncodedImage: encoded, Axes: acc.Axes, MaxVotes: acc.Max()}, nil
}

type houghOverlayArgs struct {
	detectionArgs
	LineColor string `json:"line_color"`
}

// OverlayResult is the input image with detected lines drawn on it.
type OverlayResult struct {
	*imaging.EncodedImage

	// Count is the number of lines drawn.
	Count int `json:"count"`

	// Lines are the drawn lines in full-image coordinates.
	Lines []detection.Line `json:"lines"`
}

func (s *Server) handleHoughOverlay(args json.RawMessage) (interface{}, error) {
	var a houghOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = imaging.DefaultLineColor
	}
	lineColor, err := imaging.ParseColor(a.LineColor)
	if err != nil {
		return nil, err
	}

	full, result, err := s.detect(a.detectionArgs)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(imaging.Overlay(full, result.Segments, lineColor))
	if err != nil {
		return nil, err
	}
	return &OverlayResult{EncodedImage: encoded, Count: result.Count, Lines: result.Lines}, nil
}

type clipSegmentArgs struct {
	Rect    hough.Rect `json:"rect"`
	Segment struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"segment"`
}

// ClipResult reports whether any of a segment survived clipping, and which part.
//
// Start and End are in the caller's Cartesian frame and are omitted when
// Visible is false.
type ClipResult struct {
	Visible bool             `json:"visible"`
	Start   *detection.Point `json:"start,omitempty"`
	End     *detection.Point `json:"end,omitempty"`
}

// handleHoughClipSegment runs the clipper on caller-supplied geometry. No
// image is involved.
func (s *Server) handleHoughClipSegment(args json.RawMessage) (interface{}, error) {
	var a clipSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Rect.Left > a.Rect.Right || a.Rect.Bottom > a.Rect.Top {
		return nil, fmt.Errorf("invalid rect: left must be <= right, bottom must be <= top")
	}

	seg := hough.Segment{
		A: image.Pt(a.Segment.X1, a.Segment.Y1),
		B: image.Pt(a.Segment.X2, a.Segment.Y2),
	}
	clipped, ok := hough.ClipLiangBarsky(a.Rect, seg)
	if !ok {
		return &ClipResult{Visible: false}, nil
	}
	return &ClipResult{
		Visible: true,
		Start:   &detection.Point{X: clipped.A.X, Y: clipped.A.Y},
		End:     &detection.Point{X: clipped.B.X, Y: clipped.B.Y},
	}, nil
}
