// Package server implements the MCP (Model Context Protocol) front-end of the image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing
// session through MCP tools, so an MCP client can open an image, apply
// transforms, step through undo/redo and save the result.
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
// File Operations:
//   - image_open: Open an image and start a new history
//   - image_save: Save to the current path
//   - image_save_as: Save to a new path
//   - image_probe: Inspect a file without opening it
//
// History:
//   - image_undo, image_redo
//
// Transforms (each is one undoable step):
//   - image_grayscale, image_edge_detect, image_rotate, image_flip
//   - image_brightness (delta, default +30)
//   - image_contrast (factor, default x1.2)
//   - image_crop_center (percent, default 50, relative to the opened image)
//   - image_blur (intensity 0-20)
//
// Presentation:
//   - image_status: Dimensions, path, dirty flag, history depth
//   - image_preview: Scaled PNG of the current image
//   - image_sample_color: Color at a pixel
//
// # Session Ownership
//
// Requests are processed one at a time by the read loop in Serve, which is
// the single owner of the edit session. No request runs concurrently with
// another, so the session needs no locking.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "no image loaded"
//
// A failed tool never changes the session: a failed open keeps the previous
// image, a failed save keeps the dirty flag, and a failed transform records
// no history.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(server.DefaultConfig())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
