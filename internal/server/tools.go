package server

import "github.com/pixelcut/rembg-mcp/internal/models"

// Tool describes an MCP tool with its input schema
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// toolDefinitions returns the complete list of tools this server exposes
func toolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "remove_background",
			Description: "Remove the background from an image file and write the result as a PNG with transparency. Tries a fast uniform-background flood fill first, then falls back to a segmentation model.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the input image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Path for the output PNG. Defaults to the input path with a _nobg suffix",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"description": "Segmentation model to use when the flood fill heuristic does not apply",
						"enum":        models.IDs(),
						"default":     models.Default,
					},
					"alpha_matting": map[string]interface{}{
						"type":        "boolean",
						"description": "Enable alpha matting for smoother edges (slower)",
						"default":     false,
					},
					"try_floodfill_first": map[string]interface{}{
						"type":        "boolean",
						"description": "Try the uniform-background flood fill before loading a model",
						"default":     true,
					},
				},
				"required": []string{"image_path"},
			},
		},
		{
			Name:        "list_background_models",
			Description: "List the available background removal models with descriptions and approximate sizes",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "unload_models",
			Description: "Unload all cached segmentation models to free memory",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "get_model_cache_status",
			Description: "Report which models are currently loaded and when idle models will be unloaded",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
