package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_blur").
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
		if s.cfg.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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

// executeTool dispatches tool execution to the editor.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the matching editor command
//  4. Returns the resulting status or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// File Operations
	case "image_open":
		return s.handleImageOpen(args)
	case "image_save":
		return s.editor.Save()
	case "image_save_as":
		return s.handleImageSaveAs(args)
	case "image_probe":
		return s.handleImageProbe(args)

	// History
	case "image_undo":
		return s.editor.Undo()
	case "image_redo":
		return s.editor.Redo()

	// Transforms
	case "image_grayscale":
		return s.editor.Apply(session.Grayscale())
	case "image_edge_detect":
		return s.editor.Apply(session.Edge())
	case "image_brightness":
		return s.handleImageBrightness(args)
	case "image_contrast":
		return s.handleImageContrast(args)
	case "image_rotate":
		return s.editor.Apply(session.Rotate90())
	case "image_flip":
		return s.editor.Apply(session.FlipHorizontal())
	case "image_crop_center":
		return s.handleImageCropCenter(args)
	case "image_blur":
		return s.handleImageBlur(args)

	// Presentation
	case "image_status":
		return s.editor.Status(), nil
	case "image_preview":
		return s.handleImagePreview(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

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

// unmarshalArgs decodes tool arguments, treating absent arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === File Operation Handlers ===

type imageOpenArgs struct {
	Path  string `json:"path"`
	Force bool   `json:"force"`
}

func (s *Server) handleImageOpen(args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return s.editor.Open(a.Path, a.Force)
}

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageSaveAs(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return s.editor.SaveAs(a.Path)
}

func (s *Server) handleImageProbe(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.ProbeFile(a.Path)
}

// === Transform Handlers ===

type imageBrightnessArgs struct {
	Delta *int `json:"delta"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	delta := session.DefaultBrightnessDelta
	if a.Delta != nil {
		delta = *a.Delta
	}
	return s.editor.Apply(session.Brightness(delta))
}

type imageContrastArgs struct {
	Factor *float64 `json:"factor"`
}

func (s *Server) handleImageContrast(args json.RawMessage) (interface{}, error) {
	var a imageContrastArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	factor := session.DefaultContrastFactor
	if a.Factor != nil {
		factor = *a.Factor
	}
	return s.editor.Apply(session.Contrast(factor))
}

type imageCropCenterArgs struct {
	Percent *int `json:"percent"`
}

func (s *Server) handleImageCropCenter(args json.RawMessage) (interface{}, error) {
	var a imageCropCenterArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	percent := session.DefaultCropPercent
	if a.Percent != nil {
		percent = *a.Percent
	}
	return s.editor.Apply(session.CropCenterPercent(percent))
}

type imageBlurArgs struct {
	Intensity int `json:"intensity"`
}

func (s *Server) handleImageBlur(args json.RawMessage) (interface{}, error) {
	var a imageBlurArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.editor.Apply(session.Blur(a.Intensity))
}

// === Presentation Handlers ===

type imagePreviewArgs struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = s.cfg.PreviewWidth
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = s.cfg.PreviewHeight
	}
	return s.editor.Preview(a.MaxWidth, a.MaxHeight)
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.editor.SampleColor(a.X, a.Y)
}
