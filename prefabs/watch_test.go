package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsEditedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := filepath.Join(dir, "npc.yaml")
	if err := os.WriteFile(want, []byte("name: NPC\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, path := range w.Drain() {
			if filepath.Ext(path) == ".txt" {
				t.Fatalf("non-prefab file reported: %s", path)
			}
			if path == want {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("no event for %s", want)
}

func TestWatcherCoalescesWritesInSubdirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	scripts := filepath.Join(dir, "scripts")
	if err := os.Mkdir(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(100 * time.Millisecond)

	want := filepath.Join(scripts, "marta.tengo")
	for i := range 5 {
		if err := os.WriteFile(want, []byte(fmt.Sprintf("// %d\n", i)), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	var got []string
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && len(got) == 0 {
		got = append(got, w.Drain()...)
		time.Sleep(20 * time.Millisecond)
	}
	// Let a second report arrive if one was going to.
	time.Sleep(2 * settle)
	got = append(got, w.Drain()...)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("events = %v, want one for %s", got, want)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel not closed")
		}
	}
}
