package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedWelcome(t *testing.T) {
	c := MustDefault()
	got, err := c.Render("annotation.welcome", map[string]any{"Variant": "Ruy Lopez"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "You chose: Ruy Lopez.\n") {
		t.Fatalf("unexpected welcome %q", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("welcome should have three lines, got %q", got)
	}
}

func TestRenderMissingKey(t *testing.T) {
	c := MustDefault()
	if _, err := c.Render("annotation.nope", nil); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestRenderMissingField(t *testing.T) {
	c := MustDefault()
	if _, err := c.Render("annotation.welcome", map[string]any{}); err == nil {
		t.Fatalf("expected error for missing template field")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	body := "annotation:\n  placeholder: \"(no comment)\"\n"
	if err := os.WriteFile(filepath.Join(dir, "pt.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, _ := c.Render("annotation.placeholder", nil)
	if got != "(no comment)" {
		t.Fatalf("override not applied: %q", got)
	}
	if got, _ := c.Render("annotation.prompt", nil); got != "Select a variant to get started!" {
		t.Fatalf("non-overridden key changed: %q", got)
	}
}
