package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
)

// FeedFileStore persists feeds as flat JSON documents under a base
// directory. Writes go through a temp file plus rename so readers never
// observe a partial document.
type FeedFileStore struct {
	dir string
}

// NewFeedFileStore creates the store and its directory.
func NewFeedFileStore(dir string) (*FeedFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FeedFileStore{dir: dir}, nil
}

var _ repository.FeedStore = (*FeedFileStore)(nil)

// Save writes the feed to feed_<mode>.json and an archival copy keyed
// by timestamp for weekly runs.
func (s *FeedFileStore) Save(_ context.Context, feed *models.Feed) (string, error) {
	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal feed: %w", err)
	}

	path := filepath.Join(s.dir, s.filename(feed))
	if err := s.writeAtomic(path, data); err != nil {
		return "", err
	}

	// Weekly runs also keep the per-day document so a later run for the
	// same week does not clobber earlier days.
	if feed.Mode == "weekly" {
		daily := filepath.Join(s.dir, fmt.Sprintf("feed_weekly_%s.json", feed.Timestamp.Format("2006-01-02")))
		if err := s.writeAtomic(daily, data); err != nil {
			return "", err
		}
	}

	return path, nil
}

// Latest loads the most recently saved feed for a mode.
func (s *FeedFileStore) Latest(_ context.Context, mode string) (*models.Feed, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("feed_%s.json", mode))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var feed models.Feed
	if err := json.Unmarshal(b, &feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return &feed, nil
}

func (s *FeedFileStore) filename(feed *models.Feed) string {
	return fmt.Sprintf("feed_%s.json", feed.Mode)
}

func (s *FeedFileStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".feed-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
