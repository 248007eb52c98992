package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/balsymbols/symbolindex/internal/shaping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolResult marshals payload as the successful tool response,
// attaching a sizeWarning block if the serialized body crosses
// shaping.TokenWarnThreshold.
func toolResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	if warning := shaping.MaybeSizeWarning(data); warning != nil {
		enveloped := map[string]any{"result": payload, "sizeWarning": warning}
		data, err = json.Marshal(enveloped)
		if err != nil {
			return nil, fmt.Errorf("marshal enveloped response: %w", err)
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// errorResult converts err into the wire {code, message, details}
// shape, with IsError set per the MCP SDK contract: tool errors are
// reported inside the result, not as a protocol-level error, so a
// calling model can see and self-correct.
func errorResult(err error) (*mcp.CallToolResult, error) {
	var engErr *engineerr.EngineError
	if !errors.As(err, &engErr) {
		engErr = engineerr.New(engineerr.Internal, "%v", err)
	}

	body := map[string]any{
		"code":    engErr.Code,
		"message": engErr.Message,
	}
	if len(engErr.Details) > 0 {
		body["details"] = engErr.Details
	}

	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		return nil, marshalErr
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}, nil
}
