package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) Logger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
	return &slogLogger{Logger: slog.New(h)}
}

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Get() == nil {
		t.Fatal("Get returned nil after Init")
	}
	if Named("store") == nil {
		t.Fatal("Named returned nil")
	}
	if err := Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func TestLogOutput(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, slog.LevelDebug)
	ctx := context.Background()

	log.Info(ctx, "record stored", String("device_id", "dev1"), Int("step_count", 150))

	out := buf.String()
	for _, want := range []string{"record stored", "device_id=dev1", "step_count=150", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, slog.LevelWarn)
	ctx := context.Background()

	log.Debug(ctx, "noise")
	log.Info(ctx, "still noise")
	if buf.Len() != 0 {
		t.Errorf("entries below the level leaked through: %s", buf.String())
	}

	log.Error(ctx, "store unreachable", Error(errors.New("connection refused")))
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("error entry missing: %s", buf.String())
	}
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, slog.LevelInfo).Named("ingest")

	log.Info(context.Background(), "accepted", Int64("total", 42))

	out := buf.String()
	if !strings.Contains(out, "ingest.total=42") {
		t.Errorf("named group missing from output: %s", out)
	}
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO  "} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q): %v", level, err)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("SetLevelString accepted an unknown level")
	}
}

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("a", "b"), "a"},
		{Int("n", 1), "n"},
		{Int64("m", 2), "m"},
		{Any("v", struct{}{}), "v"},
		{Error(errors.New("boom")), "error"},
	}
	for _, tc := range cases {
		if tc.field.Key != tc.key {
			t.Errorf("field key = %q, want %q", tc.field.Key, tc.key)
		}
	}
}
