package server

import "fmt"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgs is the schema of tools that take no arguments.
func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// File Operations
		{
			Name:        "image_open",
			Description: "Open an image file (PNG, JPEG or BMP) for editing. Starts a new edit history. Fails if the current image has unsaved changes unless force is true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"force": map[string]interface{}{
						"type":        "boolean",
						"description": "Discard unsaved changes to the current image. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_save",
			Description: "Save the current image back to the file it was opened from or last saved to.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_save_as",
			Description: "Save the current image to a new path. The format is chosen from the extension (.png, .jpg, .jpeg, .bmp).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute destination path",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_probe",
			Description: "Read the dimensions and format of an image file without opening it for editing.",
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

		// History
		{
			Name:        "image_undo",
			Description: "Undo the last edit.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_redo",
			Description: "Redo the last undone edit. Only available until a new edit is made.",
			InputSchema: noArgs(),
		},

		// Transforms
		{
			Name:        "image_grayscale",
			Description: "Convert the current image to grayscale.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_edge_detect",
			Description: "Replace the current image with its Canny edge map (white edges on black).",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_brightness",
			Description: "Add a fixed amount to every color channel, clamped to 0-255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"delta": map[string]interface{}{
						"type":        "integer",
						"description": "Amount added to each channel. Default 30",
						"default":     30,
					},
				},
			},
		},
		{
			Name:        "image_contrast",
			Description: "Multiply every color channel by a factor, clamped to 0-255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier, must be >= 0. Default 1.2",
						"default":     1.2,
					},
				},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate the current image 90 degrees clockwise.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_flip",
			Description: "Mirror the current image left to right.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_crop_center",
			Description: "Crop a centered region of the image as originally opened (earlier edits are discarded from the result). Percent is clamped to 10-90.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"percent": map[string]interface{}{
						"type":        "integer",
						"description": "Size of the kept region as a percentage of each dimension. Default 50",
						"default":     50,
					},
				},
			},
		},
		{
			Name:        "image_blur",
			Description: "Apply a Gaussian blur. Intensity 0-20; the kernel size is 2*max(1,intensity)+1, so 0 still blurs slightly.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"intensity": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"maximum":     20,
						"description": "Blur intensity (0-20). Default 0",
						"default":     0,
					},
				},
			},
		},

		// Presentation
		{
			Name:        "image_status",
			Description: "Report the editor state: dimensions, path, unsaved changes and undo/redo depth.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_preview",
			Description: "Render the current image as a base64 PNG scaled down to fit the given box, preserving aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width in pixels",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview height in pixels",
					},
				},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a pixel of the current image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	tools := GetToolDefinitions()
	for i := range tools {
		if tools[i].Name == "image_preview" {
			tools[i].Description += fmt.Sprintf(" Default box %dx%d.", s.cfg.PreviewWidth, s.cfg.PreviewHeight)
		}
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": tools,
		},
	}
}
