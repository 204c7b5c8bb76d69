package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abhinavsaxena2308/codegen/internal/errors"
	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/preview"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

// Handlers contains the REST route handlers.
type Handlers struct {
	svc     *gen.Service
	store   *store.Store
	maxBody int64
	version string
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

// HandleGenerate handles POST /generate: run the full generation pipeline.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, errors.NewInvalidRequest("request body must be a JSON object with a prompt field"))
		return
	}

	rec, err := h.svc.Generate(r.Context(), req.Prompt, req.Language)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"id":       rec.ID,
		"code":     rec.Code,
		"preview":  rec.Preview,
		"language": rec.Language,
	})
}

// HandlePreview handles GET /preview/{id}: serve the stored HTML document.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		renderError(w, errors.NewInvalidRequest("preview id is required"))
		return
	}

	html, err := h.store.Preview(id)
	if err != nil {
		renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// HandleHistory handles GET /history: the bounded summary list, newest first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, h.store.History())
}

// HandleLanguages handles GET /languages: recognized language tags.
func (h *Handlers) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, preview.Known())
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": h.version,
	})
}
