package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := New(Warning, &buf)

	l.Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("Debug logged at Warning level: %q", buf.String())
	}

	l.Warning("should appear")
	if !strings.Contains(buf.String(), "WARNING: should appear") {
		t.Fatalf("missing expected warning message: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Warning, &buf)
	l.SetLevel(Debug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "DEBUG: now visible") {
		t.Fatalf("SetLevel(Debug) didn't raise verbosity: %q", buf.String())
	}
}

func TestMessageFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Error, &buf)
	l.Error("boom %d", 7)
	got := buf.String()
	if !strings.HasPrefix(got, "[logging_test.go ") {
		t.Fatalf("message missing [FILE ...] prefix: %q", got)
	}
	if !strings.Contains(got, "ERROR: boom 7") {
		t.Fatalf("message missing level/body: %q", got)
	}
}

func TestDefaultIsIdempotent(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Fatal("Default() returned different instances across calls")
	}
}
