package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("standings recomputed", "users", 3, "duration_ms", int64(12))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["users"] != int64(3) {
		t.Fatalf("unexpected users field: %v", fields["users"])
	}
	if fields["duration_ms"] != int64(12) {
		t.Fatalf("unexpected duration field: %v", fields["duration_ms"])
	}
}

func TestLogger_OddArgsDoNotPanic(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Warn("partial", "key_without_value")

	if recorded.Len() != 1 {
		t.Fatalf("expected the entry to be written")
	}
}

func TestDefault_NeverNil(t *testing.T) {
	t.Parallel()

	if Default() == nil {
		t.Fatalf("Default returned nil")
	}
}
