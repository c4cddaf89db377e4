// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestSlogObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	failureLevel := slog.LevelWarn
	obs := &SlogObserver{Logger: logger, Level: slog.LevelDebug, FailureLevel: &failureLevel}

	ctx := t.Context()
	quietEngine(WithObserver(obs)).
		Start(ctx, set("first", "a", 1)).
		Then(ctx, fail("second", "bad"))

	records := decodeRecords(t, &buf)
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d: %v", len(records), records)
	}

	expected := []struct {
		msg, level, useCase, kind, typ string
	}{
		{"use case started", "DEBUG", "first", "", ""},
		{"use case finished", "DEBUG", "first", "success", "ok"},
		{"use case started", "DEBUG", "second", "", ""},
		{"use case finished", "WARN", "second", "failure", "bad"},
	}
	for i, want := range expected {
		got := records[i]
		if got["msg"] != want.msg || got["level"] != want.level || got["use_case"] != want.useCase {
			t.Errorf("record %d = %v, want msg=%q level=%q use_case=%q", i, got, want.msg, want.level, want.useCase)
		}
		if want.kind == "" {
			continue
		}
		if got["kind"] != want.kind || got["type"] != want.typ {
			t.Errorf("record %d = %v, want kind=%q type=%q", i, got, want.kind, want.typ)
		}
		if _, ok := got["duration_ms"]; !ok {
			t.Errorf("record %d has no duration_ms", i)
		}
	}
}

func TestSlogObserverUsesContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "r-1")
	ctx := WithSlogger(t.Context(), logger)

	quietEngine(WithObserver(&SlogObserver{Level: slog.LevelInfo})).Start(ctx, set("first", "a", 1))

	records := decodeRecords(t, &buf)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r["request_id"] != "r-1" {
			t.Errorf("expected request_id from context logger, got %v", r)
		}
	}
}

func TestSlogObserverRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	quietEngine(WithObserver(&SlogObserver{Logger: logger, Level: slog.LevelDebug})).
		Start(t.Context(), set("first", "a", 1))

	if buf.Len() != 0 {
		t.Errorf("expected no output below the handler level, got %q", buf.String())
	}
}
