package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhinavsaxena2308/codegen/internal/db"
	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

func setupHandlers(t *testing.T) *Handlers {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st, err := store.New(database, filepath.Join(tmpDir, "data"), 0)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return NewHandlers(gen.NewService(nil, st), st)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

// resultText extracts the text payload of the first content item.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func TestDecode(t *testing.T) {
	req := callRequest(map[string]any{"prompt": "a navbar", "language": "react"})

	input, err := decode[GenerateRequest](req)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if input.Prompt != "a navbar" || input.Language != "react" {
		t.Errorf("decoded %+v", input)
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	req := callRequest(map[string]any{"id": "abc", "extra": 42})

	input, err := decode[PreviewRequest](req)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if input.ID != "abc" {
		t.Errorf("ID = %q", input.ID)
	}
}

func TestToolRegistry(t *testing.T) {
	names := AllToolNames()
	sort.Strings(names)

	want := []string{"codegen_generate", "codegen_history", "codegen_languages", "codegen_preview"}
	if len(names) != len(want) {
		t.Fatalf("tool names = %v", names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestNewServer(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	st, err := store.New(database, filepath.Join(tmpDir, "data"), 0)
	if err != nil {
		t.Fatal(err)
	}

	if s := NewServer(gen.NewService(nil, st), st, "test"); s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestHandleGenerate(t *testing.T) {
	h := setupHandlers(t)

	res, err := h.HandleGenerate(context.Background(), callRequest(map[string]any{
		"prompt":   "a hero section",
		"language": "html",
	}))
	if err != nil {
		t.Fatalf("HandleGenerate: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}

	var payload struct {
		ID       string `json:"id"`
		Code     string `json:"code"`
		Preview  string `json:"preview"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.ID == "" || payload.Language != "html" {
		t.Errorf("payload = %+v", payload)
	}
	if !strings.HasPrefix(payload.Preview, "<!doctype html>") {
		t.Error("preview is not a full document")
	}
}

func TestHandleGenerate_MissingPrompt(t *testing.T) {
	h := setupHandlers(t)

	res, err := h.HandleGenerate(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleGenerate: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, res), "INVALID_REQUEST") {
		t.Errorf("body = %s", resultText(t, res))
	}
}

func TestHandlePreview_RoundTrip(t *testing.T) {
	h := setupHandlers(t)

	genRes, err := h.HandleGenerate(context.Background(), callRequest(map[string]any{
		"prompt": "a footer",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var generated struct {
		ID      string `json:"id"`
		Preview string `json:"preview"`
	}
	if err := json.Unmarshal([]byte(resultText(t, genRes)), &generated); err != nil {
		t.Fatal(err)
	}

	res, err := h.HandlePreview(context.Background(), callRequest(map[string]any{
		"id": generated.ID,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}

	var payload struct {
		ID      string `json:"id"`
		Preview string `json:"preview"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Preview != generated.Preview {
		t.Error("preview differs from the generated document")
	}
}

func TestHandlePreview_NotFound(t *testing.T) {
	h := setupHandlers(t)

	res, err := h.HandlePreview(context.Background(), callRequest(map[string]any{
		"id": "doesnotexist",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	body := resultText(t, res)
	if !strings.Contains(body, "NOT_FOUND") || !strings.Contains(body, "Preview not found") {
		t.Errorf("body = %s", body)
	}
}

func TestHandlePreview_MissingID(t *testing.T) {
	h := setupHandlers(t)

	res, err := h.HandlePreview(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
}

func TestHandleHistoryAndLanguages(t *testing.T) {
	h := setupHandlers(t)

	if _, err := h.HandleGenerate(context.Background(), callRequest(map[string]any{
		"prompt": "a sidebar", "language": "vue",
	})); err != nil {
		t.Fatal(err)
	}

	histRes, err := h.HandleHistory(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var history []struct {
		ID       string `json:"id"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(resultText(t, histRes)), &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Language != "vue" {
		t.Errorf("history = %+v", history)
	}

	langRes, err := h.HandleLanguages(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, langRes), "react") {
		t.Errorf("languages = %s", resultText(t, langRes))
	}
}
