package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if err := run([]string{"--version"}, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "lexipage") {
		t.Errorf("version output should name the binary: %q", stdout.String())
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MISTRAL_API_KEY", "")

	var stdout, stderr bytes.Buffer

	err := run(nil, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error without an API key")
	}
	if !strings.Contains(err.Error(), "API key required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if err := run([]string{"--no-such-flag"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"--help"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected flag.ErrHelp")
	}
	if !strings.Contains(stderr.String(), "-addr") {
		t.Errorf("usage should list flags: %q", stderr.String())
	}
}
