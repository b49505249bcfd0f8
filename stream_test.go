package hbars

import (
	"strings"
	"testing"
)

func TestStream(t *testing.T) {
	var buf strings.Builder
	err := Stream("t", "Hello {{name}}!", map[string]any{"name": "World"}, &buf)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if want := "Hello World!"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestStreamCompileError(t *testing.T) {
	var buf strings.Builder
	err := Stream("t", "{{#if a}}unclosed", nil, &buf)
	if err == nil {
		t.Fatal("expected a compile error to propagate")
	}
}
