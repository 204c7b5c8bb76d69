package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abhinavsaxena2308/codegen/internal/generation"
)

// InsertGeneration archives a record (without its preview, which lives in a
// per-id HTML file). Inserts are idempotent on id.
func InsertGeneration(database *sql.DB, rec *generation.Record) error {
	_, err := database.Exec(
		`INSERT OR IGNORE INTO generations (id, prompt, language, code, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Prompt, rec.Language, rec.Code,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

// GetGeneration loads an archived record by id. Returns nil (no error) when
// the id is not archived; the Preview field is left empty.
func GetGeneration(database *sql.DB, id string) (*generation.Record, error) {
	row := database.QueryRow(
		`SELECT id, prompt, language, code, created_at FROM generations WHERE id = ?`, id)

	var rec generation.Record
	var createdAt string
	err := row.Scan(&rec.ID, &rec.Prompt, &rec.Language, &rec.Code, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	return &rec, nil
}

// CountGenerations returns the number of archived records.
func CountGenerations(database *sql.DB) (int, error) {
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return n, nil
}
