package main

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/lmittmann/tint"
)

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if isTerminal(w) {
		t.Error("expected a pipe not to be a terminal")
	}
}

func TestLevelRouterColourPerStream(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(&levelRouter{
		stdout: tint.NewHandler(&stdout, tintOptions(true)),
		stderr: tint.NewHandler(&stderr, tintOptions(false)),
	})

	logger.Info("started")
	logger.Error("failed")

	if !strings.Contains(stdout.String(), "started") || strings.Contains(stdout.String(), "failed") {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "\x1b[") {
		t.Errorf("expected ANSI codes on stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed") || strings.Contains(stderr.String(), "started") {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "\x1b[") {
		t.Errorf("expected no ANSI codes on stderr, got %q", stderr.String())
	}
}
