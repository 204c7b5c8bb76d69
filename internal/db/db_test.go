package db

import (
	"testing"
	"time"

	"github.com/abhinavsaxena2308/codegen/internal/generation"
)

func TestInit_CreatesSchema(t *testing.T) {
	dir := t.TempDir()
	database, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatal(err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}

	n, err := CountGenerations(database)
	if err != nil {
		t.Fatalf("CountGenerations: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestInit_Idempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Init(dir)
	if err != nil {
		t.Fatalf("re-Init over existing database: %v", err)
	}
	defer second.Close()

	version, err := GetUserVersion(second)
	if err != nil {
		t.Fatal(err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d after reopen", version)
	}
}

func TestInsertGet_RoundTrip(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	created := time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)
	rec := &generation.Record{
		ID:        "01JTESTULID00000000000000",
		Prompt:    "make a pricing card",
		Language:  "react",
		Code:      "export default function Card() {}",
		Preview:   "<!doctype html>...",
		CreatedAt: created,
	}

	if err := InsertGeneration(database, rec); err != nil {
		t.Fatalf("InsertGeneration: %v", err)
	}

	got, err := GetGeneration(database, rec.ID)
	if err != nil {
		t.Fatalf("GetGeneration: %v", err)
	}
	if got == nil {
		t.Fatal("record not found")
	}

	if got.Prompt != rec.Prompt || got.Language != rec.Language || got.Code != rec.Code {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	// Previews live in per-id files, not the archive.
	if got.Preview != "" {
		t.Errorf("Preview = %q, want empty", got.Preview)
	}
}

func TestGetGeneration_Missing(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	got, err := GetGeneration(database, "nope")
	if err != nil {
		t.Fatalf("GetGeneration: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestInsertGeneration_DuplicateIgnored(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	rec := &generation.Record{
		ID: "dup", Prompt: "original", Language: "html",
		Code: "<div/>", CreatedAt: time.Now().UTC(),
	}
	if err := InsertGeneration(database, rec); err != nil {
		t.Fatal(err)
	}

	changed := *rec
	changed.Prompt = "changed"
	if err := InsertGeneration(database, &changed); err != nil {
		t.Fatalf("duplicate insert should be a no-op, got %v", err)
	}

	got, err := GetGeneration(database, "dup")
	if err != nil {
		t.Fatal(err)
	}
	if got.Prompt != "original" {
		t.Errorf("Prompt = %q, first write must win", got.Prompt)
	}

	n, _ := CountGenerations(database)
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
