package content

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	src := []byte("# Title\n\nA short paragraph.\n")

	out, err := RenderMarkdown(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("heading not rendered: %s", out)
	}
	if !strings.Contains(out, "<p>A short paragraph.</p>") {
		t.Errorf("paragraph not rendered: %s", out)
	}
}

func TestRenderMarkdown_GFMTable(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	out, err := RenderMarkdown(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table not rendered: %s", out)
	}
}

func TestPage(t *testing.T) {
	src := []byte("Hello world\n")

	out, err := Page(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `data-word="Hello"`) {
		t.Errorf("words not wrapped: %s", out)
	}
	if !strings.Contains(out, `data-word="world"`) {
		t.Errorf("words not wrapped: %s", out)
	}
}

func TestPage_CodeBlockNotWrapped(t *testing.T) {
	src := []byte("Prose here.\n\n```\ncode tokens\n```\n")

	out, err := Page(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `data-word="Prose"`) {
		t.Errorf("prose should be wrapped: %s", out)
	}
	if strings.Contains(out, `data-word="code"`) {
		t.Errorf("code block content should not be wrapped: %s", out)
	}
}
