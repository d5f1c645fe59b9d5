package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"careergenie-backend/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	key, err := object.ResumeKey("uid-1", "r1", "cv.txt")
	if err != nil {
		t.Fatalf("ResumeKey: %v", err)
	}

	n, err := store.Put(ctx, key, "text/plain", strings.NewReader("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Put: n=%d err=%v", n, err)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "hello" {
		t.Fatalf("unexpected body %q", body)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Put(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected invalid key error")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected invalid key error")
	}
}
