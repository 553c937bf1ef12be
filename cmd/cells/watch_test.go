package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestShouldReload(t *testing.T) {
	path := filepath.Join("tmp", "sheet.yaml")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"unclean path", fsnotify.Event{Name: "tmp/./sheet.yaml", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"sibling file", fsnotify.Event{Name: filepath.Join("tmp", "other.yaml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldReload(tt.event, path); got != tt.want {
				t.Fatalf("shouldReload(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

// syncBuffer makes the command's output safe to read while the watch
// loop is still writing to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, buf.String())
}

// rewriteUntil keeps rewriting the sheet until the watch loop reports
// the expected value, so a coalesced or dropped event cannot hang the
// test.
func rewriteUntil(t *testing.T, buf *syncBuffer, path string, data []byte, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("rewrite sheet: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
		if strings.Contains(buf.String(), want) {
			return
		}
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, buf.String())
}

func TestWatchReEvaluatesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	if err := os.WriteFile(path, []byte("A1: \"5\"\nB1: =A1*2\n"), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}

	root := newRootCommand()
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"watch", path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitForOutput(t, out, "B1\t10")
	rewriteUntil(t, out, path, []byte("A1: \"7\"\nB1: =A1*2\n"), "B1\t14")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watch did not stop on cancel")
	}
}
