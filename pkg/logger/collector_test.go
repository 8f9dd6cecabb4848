package logger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	batch, ok := payload.([]AggregatedLogEntry)
	if !ok {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.batches = append(p.batches, batch)
	return nil
}

func (p *capturePublisher) snapshot() ([]string, [][]AggregatedLogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...), append([][]AggregatedLogEntry(nil), p.batches...)
}

func waitForBatches(t *testing.T, p *capturePublisher, n int) [][]AggregatedLogEntry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, batches := p.snapshot(); len(batches) >= n {
			return batches
		}
		time.Sleep(5 * time.Millisecond)
	}
	_, batches := p.snapshot()
	t.Fatalf("expected %d batches, got %d", n, len(batches))
	return nil
}

func TestCollectorDeduplicatesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logs.test",
		Publisher:      pub,
	})

	for i := 0; i < 3; i++ {
		c.AddLog("error", "provider unavailable", map[string]interface{}{"provider": "horizons"}, "resolver.go:42")
	}
	c.AddLog("warn", "cache miss", nil, "resolver.go:57")
	c.Close()

	topics, batches := pub.snapshot()
	if len(batches) != 1 {
		t.Fatalf("expected 1 batch after close, got %d", len(batches))
	}
	if topics[0] != "logs.test" {
		t.Fatalf("expected topic logs.test, got %q", topics[0])
	}
	if len(batches[0]) != 2 {
		t.Fatalf("expected 2 deduplicated entries, got %d", len(batches[0]))
	}
	counts := make(map[string]int)
	for _, e := range batches[0] {
		counts[e.Message] = e.Count
	}
	if counts["provider unavailable"] != 3 {
		t.Fatalf("expected count 3 for repeated entry, got %d", counts["provider unavailable"])
	}
	if counts["cache miss"] != 1 {
		t.Fatalf("expected count 1 for single entry, got %d", counts["cache miss"])
	}
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "logs.test",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "first", nil, "a.go:1")
	c.AddLog("error", "second", nil, "b.go:2")

	batches := waitForBatches(t, pub, 1)
	if len(batches[0]) != 2 {
		t.Fatalf("expected 2 entries in threshold flush, got %d", len(batches[0]))
	}
}

func TestLoggerRoutesWarningsToCollector(t *testing.T) {
	l, err := New(&Config{
		Level:  "warn",
		Format: "json",
		Output: filepath.Join(t.TempDir(), "app.log"),
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	pub := &capturePublisher{}
	l.AddCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logs.test",
		Publisher:      pub,
	})

	for i := 0; i < 2; i++ {
		l.Warn("provider flapping", String("provider", "miriade"))
	}
	l.RemoveCollector()

	_, batches := pub.snapshot()
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("expected a single deduplicated entry, got %+v", batches)
	}
	entry := batches[0][0]
	if entry.Level != "warn" || entry.Count != 2 {
		t.Fatalf("entry = %+v, want warn with count 2", entry)
	}
	if entry.Fields["provider"] != "miriade" {
		t.Fatalf("expected provider field, got %v", entry.Fields)
	}
}
