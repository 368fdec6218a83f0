package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWithProgress(t *testing.T) {
	var out bytes.Buffer
	calls := 0

	err := withProgress(&out, "Rendering portfolio...", time.Millisecond, func() error {
		calls++
		time.Sleep(30 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected fn to run once, ran %d times", calls)
	}

	got := out.String()
	if !strings.HasPrefix(got, "Rendering portfolio... ") {
		t.Errorf("Expected output to start with the label, got %q", got)
	}
	if !strings.Contains(got, "\rRendering portfolio... |") {
		t.Errorf("Expected at least one frame, got %q", got)
	}

	erased := "\r" + strings.Repeat(" ", len("Rendering portfolio...")+2) + "\r"
	if !strings.HasSuffix(got, erased) {
		t.Errorf("Expected the indicator line to be erased, got %q", got)
	}
}

func TestWithProgressReturnsError(t *testing.T) {
	var out bytes.Buffer
	want := errors.New("render failed")

	err := withProgress(&out, "Working", time.Hour, func() error {
		return want
	})

	if !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
	if !strings.HasPrefix(out.String(), "Working ") {
		t.Errorf("Expected the label to be drawn, got %q", out.String())
	}
}
