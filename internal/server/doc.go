// Package server implements the MCP (Model Context Protocol) server for
// background removal tools.
//
// This package provides a JSON-RPC 2.0 server that exposes image background
// removal through the MCP protocol. It's designed to work with Claude and
// other MCP-compatible clients.
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
//   - remove_background: Remove the background from an image file
//   - list_background_models: List supported segmentation models
//   - unload_models: Free all cached model sessions
//   - get_model_cache_status: Inspect the model session cache
//
// # Error Handling
//
// Protocol-level failures (bad params, unknown tools) are returned as
// JSON-RPC error responses with code -32000 or standard JSON-RPC codes.
// Failures inside remove_background are reported in the result payload
// instead, with success=false and an error message, so clients always get
// a structured outcome for a well-formed call.
package server
