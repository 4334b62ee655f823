package tour

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRun_PrintsEveryStage(t *testing.T) {
	seed := uint64(11)
	var buf bytes.Buffer
	if err := Run(&buf, Options{Seed: &seed}); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()

	for i, stage := range Stages(Options{}) {
		if !strings.Contains(out, stage.Title) {
			t.Fatalf("stage %d title %q missing from output", i, stage.Title)
		}
	}

	want := "This is the man all tattered and torn that kissed\n" +
		"        the maiden all forlorn that milked\n" +
		"        the cow with the crumpled horn that tossed\n" +
		"        the dog that worried."
	if !strings.Contains(out, want) {
		t.Fatalf("expected first stage poem in output:\n%s", out)
	}
	if !strings.Contains(out, "the dog that worried the dog that worried") {
		t.Fatalf("expected echo stage in output:\n%s", out)
	}
}

func TestRun_SeededIsRepeatable(t *testing.T) {
	seed := uint64(3)
	var first, second bytes.Buffer
	if err := Run(&first, Options{Seed: &seed}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := Run(&second, Options{Seed: &seed}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("seeded tours differ")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRun_WriteError(t *testing.T) {
	err := Run(failingWriter{}, Options{})
	if err == nil || !strings.Contains(err.Error(), "tour: write") {
		t.Fatalf("expected write error, got %v", err)
	}
}
