package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForEvent(t *testing.T, m *MockEmitter, timeout time.Duration) []EmittedEvent {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if events := m.Events(); len(events) > 0 {
			return events
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("no event emitted before timeout")
	return nil
}

func TestDatasetWatcher_EmitsOnNewFile(t *testing.T) {
	dir := t.TempDir()
	mock := &MockEmitter{}

	w, err := newDatasetWatcher(context.Background(), dir, mock, zap.NewNop())
	if err != nil {
		t.Fatalf("newDatasetWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "new.csv"), []byte("Name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := waitForEvent(t, mock, 3*time.Second)
	last := events[len(events)-1]
	if last.Event != EventFilesChanged {
		t.Fatalf("event = %q, want %q", last.Event, EventFilesChanged)
	}
	names, ok := last.Data.([]string)
	if !ok {
		t.Fatalf("event data = %T, want []string", last.Data)
	}
	if len(names) != 1 || names[0] != "new.csv" {
		t.Errorf("event payload = %v", names)
	}
}

func TestDatasetWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	mock := &MockEmitter{}

	w, err := newDatasetWatcher(context.Background(), dir, mock, zap.NewNop())
	if err != nil {
		t.Fatalf("newDatasetWatcher: %v", err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "burst.csv")
		if err := os.WriteFile(name, []byte("Name\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	waitForEvent(t, mock, 3*time.Second)
	// Give any stragglers a chance to fire, then expect the burst to
	// have collapsed into very few refreshes.
	time.Sleep(2 * settleDelay)
	if got := len(mock.Events()); got > 2 {
		t.Errorf("expected coalesced refreshes, got %d events", got)
	}
}

func TestDatasetWatcher_MissingDir(t *testing.T) {
	if _, err := newDatasetWatcher(context.Background(), filepath.Join(t.TempDir(), "nope"), &MockEmitter{}, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDatasetWatcher_StopTerminates(t *testing.T) {
	dir := t.TempDir()
	mock := &MockEmitter{}

	w, err := newDatasetWatcher(context.Background(), dir, mock, zap.NewNop())
	if err != nil {
		t.Fatalf("newDatasetWatcher: %v", err)
	}
	w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "after.csv"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * settleDelay)
	if got := len(mock.Events()); got != 0 {
		t.Errorf("stopped watcher still emitted %d events", got)
	}
}
