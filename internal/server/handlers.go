package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/pixelcut/rembg-mcp/internal/models"
	"github.com/pixelcut/rembg-mcp/internal/removal"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "remove_background").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsList responds with the tool catalog.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": toolDefinitions(),
		},
	}
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

	callID := ksuid.New().String()
	s.log.Debug("tool call",
		zap.String("call_id", callID),
		zap.String("tool", params.Name))

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool call failed",
			zap.String("call_id", callID),
			zap.String("tool", params.Name),
			zap.Error(err))
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "remove_background":
		return s.handleRemoveBackground(args)
	case "list_background_models":
		return s.handleListModels(args)
	case "unload_models":
		return s.handleUnloadModels(args)
	case "get_model_cache_status":
		return s.handleCacheStatus(args)
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

// === Tool Handlers ===

type removeBackgroundArgs struct {
	ImagePath         string `json:"image_path"`
	OutputPath        string `json:"output_path"`
	Model             string `json:"model"`
	AlphaMatting      bool   `json:"alpha_matting"`
	TryFloodfillFirst *bool  `json:"try_floodfill_first"`
}

func (s *Server) handleRemoveBackground(args json.RawMessage) (interface{}, error) {
	var a removeBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Model == "" {
		a.Model = models.Default
	}
	tryFloodFill := true
	if a.TryFloodfillFirst != nil {
		tryFloodFill = *a.TryFloodfillFirst
	}

	// Failures are reported inside the result so the caller always sees
	// a structured outcome rather than a protocol error.
	return s.remover.Remove(context.Background(), removal.Request{
		InputPath:         a.ImagePath,
		OutputPath:        a.OutputPath,
		Model:             a.Model,
		AlphaMatting:      a.AlphaMatting,
		TryFloodFillFirst: tryFloodFill,
	}), nil
}

func (s *Server) handleListModels(_ json.RawMessage) (interface{}, error) {
	all := models.All()
	return map[string]interface{}{
		"models":        all,
		"total_count":   len(all),
		"default_model": models.Default,
		"usage_hint":    removal.UnloadHint,
	}, nil
}

func (s *Server) handleUnloadModels(_ json.RawMessage) (interface{}, error) {
	unloaded := s.cache.Clear()
	msg := fmt.Sprintf("Unloaded %d model(s)", len(unloaded))
	if len(unloaded) == 0 {
		msg = "No models were loaded"
	}
	return map[string]interface{}{
		"success":         true,
		"models_unloaded": unloaded,
		"models_count":    len(unloaded),
		"message":         msg,
	}, nil
}

func (s *Server) handleCacheStatus(_ json.RawMessage) (interface{}, error) {
	return s.cache.Status(), nil
}
