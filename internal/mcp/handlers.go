package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhinavsaxena2308/codegen/internal/errors"
	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/preview"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc   *gen.Service
	store *store.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *gen.Service, st *store.Store) *Handlers {
	return &Handlers{svc: svc, store: st}
}

// GenerateRequest represents the arguments for codegen_generate.
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language,omitempty"`
}

// PreviewRequest represents the arguments for codegen_preview.
type PreviewRequest struct {
	ID string `json:"id"`
}

// HandleGenerate handles the codegen_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	rec, err := h.svc.Generate(ctx, input.Prompt, input.Language)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"id":       rec.ID,
		"code":     rec.Code,
		"preview":  rec.Preview,
		"language": rec.Language,
	})
}

// HandlePreview handles the codegen_preview tool call.
func (h *Handlers) HandlePreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PreviewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	html, err := h.store.Preview(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "preview": html})
}

// HandleHistory handles the codegen_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.store.History())
}

// HandleLanguages handles the codegen_languages tool call.
func (h *Handlers) HandleLanguages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(preview.Known())
}

// errorResult creates an MCP error result.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.CodeGenError); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
