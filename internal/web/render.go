package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/abhinavsaxena2308/codegen/internal/errors"
)

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes a structured JSON error, mapping unknown errors to 500.
func renderError(w http.ResponseWriter, err error) {
	var cErr *errors.CodeGenError
	if !stderrors.As(err, &cErr) {
		cErr = errors.NewInternal(err)
	}

	payload := map[string]any{
		"code":    string(cErr.Code),
		"message": cErr.Message,
		"status":  cErr.Status,
	}
	// Internal details stay out of responses to avoid leaking paths or SQL.
	if cErr.Code != errors.ErrInternal && cErr.Details != nil {
		payload["details"] = cErr.Details
	}

	renderJSON(w, cErr.Status, map[string]any{"error": payload})
}
