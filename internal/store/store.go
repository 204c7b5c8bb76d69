// Package store implements the two-tier generation store.
//
// The memory tier (record map plus bounded history list) is the source of
// truth within process lifetime. The durable tier (a SQLite archive, per-id
// preview HTML files, and a serialized history file under the data directory)
// lets records and previews survive restarts. Lookups consult the memory tier
// first and fall back to the durable tier.
package store

import (
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/abhinavsaxena2308/codegen/internal/db"
	"github.com/abhinavsaxena2308/codegen/internal/errors"
	"github.com/abhinavsaxena2308/codegen/internal/generation"
)

// DefaultHistoryLimit caps retained history entries when no limit is
// configured. Eviction is FIFO on insertion order, not LRU.
const DefaultHistoryLimit = 200

const historyFileName = "generated_history.json"

// Store holds both tiers. All history and cache mutation happens under mu;
// the history read-modify-write (prepend, truncate, persist) runs as one
// critical section so concurrent generations cannot lose updates.
type Store struct {
	mu      sync.Mutex
	cache   map[string]*generation.Record
	history []generation.Summary

	limit    int
	dataDir  string
	database *sql.DB
}

// New opens a store rooted at dataDir, creating the directory if absent. The
// persisted history is reloaded and used to pre-warm the cache with
// summary-only entries; full code and preview come from the archive and the
// per-id files on demand.
func New(database *sql.DB, dataDir string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		cache:    make(map[string]*generation.Record),
		limit:    limit,
		dataDir:  dataDir,
		database: database,
	}
	s.loadHistory()
	return s, nil
}

// loadHistory restores the bounded summary list from disk (best-effort).
func (s *Store) loadHistory() {
	data, err := os.ReadFile(filepath.Join(s.dataDir, historyFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not load history file: %v", err)
		}
		return
	}

	var summaries []generation.Summary
	if err := json.Unmarshal(data, &summaries); err != nil {
		log.Printf("could not parse history file: %v", err)
		return
	}
	if len(summaries) > s.limit {
		summaries = summaries[:s.limit]
	}
	s.history = summaries

	for _, sum := range summaries {
		s.cache[sum.ID] = &generation.Record{
			ID:        sum.ID,
			Prompt:    sum.Prompt,
			Language:  sum.Language,
			CreatedAt: sum.CreatedAt,
		}
	}
}

// Put inserts a freshly created record into both tiers. Durable-tier
// failures are logged and never fail the call; the memory tier remains the
// primary source of truth for the process lifetime.
func (s *Store) Put(rec *generation.Record) {
	s.mu.Lock()
	s.cache[rec.ID] = rec
	s.history = append([]generation.Summary{rec.Summarize()}, s.history...)
	if len(s.history) > s.limit {
		s.history = s.history[:s.limit]
	}
	s.persistHistoryLocked()
	s.mu.Unlock()

	if err := os.WriteFile(s.previewPath(rec.ID), []byte(rec.Preview), 0600); err != nil {
		log.Printf("could not write preview file for %s: %v", rec.ID, err)
	}
	if err := db.InsertGeneration(s.database, rec); err != nil {
		log.Printf("could not archive generation %s: %v", rec.ID, err)
	}
}

// persistHistoryLocked writes the history file; callers must hold mu.
func (s *Store) persistHistoryLocked() {
	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		log.Printf("could not serialize history: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, historyFileName), data, 0600); err != nil {
		log.Printf("could not persist history: %v", err)
	}
}

// Get retrieves a full record by id: memory tier first, then the archive
// joined with the per-id preview file. A summary-only cache entry (history
// pre-warm) is upgraded from the durable tier when possible.
func (s *Store) Get(id string) (*generation.Record, error) {
	if !validID(id) {
		return nil, errors.NewNotFound(id)
	}

	s.mu.Lock()
	cached, ok := s.cache[id]
	s.mu.Unlock()
	if ok && cached.Code != "" {
		return cached, nil
	}

	archived, err := db.GetGeneration(s.database, id)
	if err != nil {
		log.Printf("archive lookup for %s: %v", id, err)
	}
	previewHTML := s.readPreviewFile(id)

	if archived != nil {
		archived.Preview = previewHTML
		s.mu.Lock()
		s.cache[id] = archived
		s.mu.Unlock()
		return archived, nil
	}

	if previewHTML != "" {
		rec := &generation.Record{ID: id, Preview: previewHTML}
		if cached != nil {
			rec.Prompt = cached.Prompt
			rec.Language = cached.Language
			rec.CreatedAt = cached.CreatedAt
		}
		return rec, nil
	}

	if cached != nil {
		return cached, nil
	}
	return nil, errors.NewNotFound(id)
}

// Preview returns the rendered HTML document for id, falling back to the
// per-id file when the memory tier is cold.
func (s *Store) Preview(id string) (string, error) {
	if !validID(id) {
		return "", errors.NewPreviewNotFound(id)
	}

	s.mu.Lock()
	cached, ok := s.cache[id]
	s.mu.Unlock()
	if ok && cached.Preview != "" {
		return cached.Preview, nil
	}

	if html := s.readPreviewFile(id); html != "" {
		return html, nil
	}
	return "", errors.NewPreviewNotFound(id)
}

// History returns a copy of the bounded summary list, newest first.
func (s *Store) History() []generation.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]generation.Summary, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) previewPath(id string) string {
	return filepath.Join(s.dataDir, id+".html")
}

func (s *Store) readPreviewFile(id string) string {
	data, err := os.ReadFile(s.previewPath(id))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read preview file for %s: %v", id, err)
		}
		return ""
	}
	return string(data)
}

// validID rejects ids that could escape the data directory. Generated ids
// are ULIDs, so anything with a path separator or dot is not ours.
func validID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, `/\.`)
}
