// Package gen implements the generation orchestrator: it wraps the upstream
// model call, sanitizes the raw output, compiles the preview, and stores the
// resulting record.
package gen

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/abhinavsaxena2308/codegen/internal/ai"
	"github.com/abhinavsaxena2308/codegen/internal/errors"
	"github.com/abhinavsaxena2308/codegen/internal/generation"
	"github.com/abhinavsaxena2308/codegen/internal/preview"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

// codeFence matches markdown code-fence delimiters, with or without a
// language token and trailing newline.
var codeFence = regexp.MustCompile("```[a-zA-Z]*\n?")

const modelPromptFormat = `Generate %s code for the following prompt: %s
Include a full component or page implementation with minimal external dependencies.
Return code only, and if appropriate include any CSS.`

// fallbackCodeFormat is the deterministic local artifact produced when no
// upstream model is configured. It keeps the pipeline total without a live
// AI backend.
const fallbackCodeFormat = `/* Generation model not configured. Fallback output. Prompt: */
/* %s */

<div>Preview not available - no generation model is configured on the server.</div>`

// Service orchestrates a single generation call end to end.
type Service struct {
	provider ai.Provider // nil when no upstream model is configured
	store    *store.Store
}

// NewService creates the orchestrator. provider may be nil.
func NewService(provider ai.Provider, st *store.Store) *Service {
	return &Service{provider: provider, store: st}
}

// Generate runs the full pipeline for one prompt: validate, call the model
// (or produce the local fallback), strip code fences, compile the preview,
// and store the record. Validation and upstream failures abort the call with
// no side effects in any tier.
func (s *Service) Generate(ctx context.Context, prompt, language string) (*generation.Record, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.NewInvalidRequest("prompt is required")
	}

	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = "plain"
	}

	var raw string
	if s.provider == nil {
		raw = fmt.Sprintf(fallbackCodeFormat, prompt)
	} else {
		out, err := s.provider.Generate(ctx, fmt.Sprintf(modelPromptFormat, lang, prompt))
		if err != nil {
			return nil, errors.NewUpstreamFailed(err)
		}
		raw = out
	}

	code := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))

	id, err := newID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	rec := &generation.Record{
		ID:        id,
		Prompt:    prompt,
		Language:  lang,
		Code:      code,
		Preview:   preview.Render(code, lang),
		CreatedAt: time.Now().UTC(),
	}

	s.store.Put(rec)
	return rec, nil
}

// newID generates a new ULID.
func newID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
