// Package testutil provides shared test helpers used across internal packages.
package testutil

import (
	"bytes"
	"os"
	"testing"
)

// WithTempHome sets HOME to a temporary directory for the duration of the test.
func WithTempHome(t *testing.T) string {
	t.Helper()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	return tempHome
}

// CaptureStdout captures stdout during fn() and returns the output as a string.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = orig
		_ = w.Close()
		_ = r.Close()
	}()

	fn()

	_ = w.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// WriteExecutable writes a minimal executable script to the given path.
func WriteExecutable(t *testing.T, path string) {
	t.Helper()
	WriteScript(t, path, "exit 0\n")
}

// WriteScript writes an executable shell script with the given body.
func WriteScript(t *testing.T, path, body string) {
	t.Helper()
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0755); err != nil {
		t.Fatalf("failed to write executable %s: %v", path, err)
	}
}
