package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"AstroFeed/internal/domain/models"
)

func TestFeedFileStoreSaveAndLatest(t *testing.T) {
	store, err := NewFeedFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFeedFileStore: %v", err)
	}
	ctx := context.Background()

	feed := &models.Feed{
		ID:            "abc",
		Mode:          "now",
		Timestamp:     time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
		SchemaVersion: 2,
		Transits: map[string]models.Transit{
			"Sun": {Body: "Sun", Lon: 153.2, Sign: "Virgo"},
		},
	}

	path, err := store.Save(ctx, feed)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "feed_now.json" {
		t.Fatalf("path = %s", path)
	}

	got, err := store.Latest(ctx, "now")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.ID != "abc" || got.Transits["Sun"].Sign != "Virgo" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFeedFileStoreOverwrites(t *testing.T) {
	store, err := NewFeedFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFeedFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Save(ctx, &models.Feed{ID: "first", Mode: "daily"}); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if _, err := store.Save(ctx, &models.Feed{ID: "second", Mode: "daily"}); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := store.Latest(ctx, "daily")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.ID != "second" {
		t.Fatalf("ID = %s, want second", got.ID)
	}
}

func TestFeedFileStoreWeeklyArchive(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFeedFileStore(dir)
	if err != nil {
		t.Fatalf("NewFeedFileStore: %v", err)
	}

	feed := &models.Feed{
		ID:        "wk",
		Mode:      "weekly",
		Timestamp: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}
	if _, err := store.Save(context.Background(), feed); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "feed_weekly_2026-08-24.json")); err != nil {
		t.Fatalf("archival copy missing: %v", err)
	}
}

func TestFeedFileStoreLatestMissing(t *testing.T) {
	store, err := NewFeedFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFeedFileStore: %v", err)
	}
	if _, err := store.Latest(context.Background(), "now"); err == nil {
		t.Fatal("expected error for missing feed")
	}
}

func TestFeedFileStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFeedFileStore(dir)
	if err != nil {
		t.Fatalf("NewFeedFileStore: %v", err)
	}
	if _, err := store.Save(context.Background(), &models.Feed{Mode: "now"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
