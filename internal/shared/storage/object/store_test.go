package object

import (
	"strings"
	"testing"
)

func TestResumeKey(t *testing.T) {
	key, err := ResumeKey("uid-1", "r1", "My CV.pdf")
	if err != nil {
		t.Fatalf("ResumeKey: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[0] != "resumes" || parts[2] != "r1" || parts[3] != "My CV.pdf" {
		t.Fatalf("unexpected key %s", key)
	}
	if len(parts[1]) != 64 {
		t.Fatalf("expected hashed user segment, got %s", parts[1])
	}
}

func TestResumeKeyRejectsTraversal(t *testing.T) {
	if _, err := ResumeKey("uid-1", "r1", "../../etc/passwd"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ResumeKey("", "r1", "a.pdf"); err == nil {
		t.Fatalf("expected error for empty user")
	}
}
