// Package server implements the MCP (Model Context Protocol) server for Hough
// line detection.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs never go to stdout; the caller supplies a zerolog.Logger, normally
// writing to stderr.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Hough Transform:
//   - hough_axes: Accumulator geometry for an image and scale factors
//   - hough_detect_lines: Detect lines, with optional region of interest
//   - hough_space: Render the accumulator as a PNG
//   - hough_overlay: Draw detected lines over the input image
//   - hough_clip_segment: Clip a segment to a rectangle
//
// Detection arguments that are omitted take the values of
// detection.DefaultParams. An explicit 0 is honoured: threshold 0 turns every
// accumulator cell into a line, and a 0 scale factor is an error.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server stopped")
//	}
package server
