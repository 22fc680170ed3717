package local

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	path, size, mime, err := store.Save(ctx, "job-42", "resume.txt", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "job-42/") {
		t.Fatalf("expected job-scoped path, got %q", path)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Fatalf("expected extension preserved, got %q", path)
	}
	if size != int64(len("hello world")) {
		t.Fatalf("size = %d, want %d", size, len("hello world"))
	}
	if !strings.HasPrefix(mime, "text/plain") {
		t.Fatalf("mime = %q, want text/plain", mime)
	}

	rc, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("read back %q", data)
	}

	if err := store.Remove(ctx, path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, path); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist on second remove, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../escape"); err == nil {
		t.Fatal("expected error for traversal path")
	}
}

func TestSaveUniquePaths(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	first, _, _, err := store.Save(ctx, "job-1", "same.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _, _, err := store.Save(ctx, "job-1", "same.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique storage paths, both %q", first)
	}
}
