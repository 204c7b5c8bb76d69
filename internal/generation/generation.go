// Package generation defines the record produced by one prompt→code→preview
// pipeline run. Records are immutable once created.
package generation

import "time"

// Record is the stored result of a single generation call.
type Record struct {
	// ID is a ULID that uniquely identifies this generation; it keys the
	// memory tier, the archive row, and the per-id preview file.
	ID string `json:"id"`

	// Prompt is the original user-supplied natural-language text.
	Prompt string `json:"prompt"`

	// Language is the normalized (lower-cased, trimmed) language tag.
	Language string `json:"language"`

	// Code is the generated source after markdown-fence stripping.
	Code string `json:"code"`

	// Preview is the self-contained HTML document derived from Code and
	// Language. It is persisted for reuse but always recomputable.
	Preview string `json:"preview"`

	// CreatedAt is the creation time; serialized as RFC 3339.
	CreatedAt time.Time `json:"timestamp"`
}

// Summary is the lightweight history entry for a record. Code and Preview
// are deliberately excluded to keep the history file small.
type Summary struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"timestamp"`
}

// Summarize returns the history Summary for r.
func (r *Record) Summarize() Summary {
	return Summary{
		ID:        r.ID,
		Prompt:    r.Prompt,
		Language:  r.Language,
		CreatedAt: r.CreatedAt,
	}
}
