package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAIFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAIFields(zap.New(core), "  openai  ", "gpt-4").Info("completion requested")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "openai" {
		t.Fatalf("unexpected provider field: %q", ctx[FieldProvider])
	}
	if ctx[FieldModel] != "gpt-4" {
		t.Fatalf("unexpected model field: %q", ctx[FieldModel])
	}
}

func TestWithAIFieldsSkipsBlankValues(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAIFields(zap.New(core), "", "   ").Info("completion requested")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); len(ctx) != 0 {
		t.Fatalf("expected no fields, got %v", ctx)
	}
}

func TestWithAIFieldsNilLogger(t *testing.T) {
	logger := WithAIFields(nil, "gemini", "gemini-2.5-pro")
	if logger == nil {
		t.Fatal("expected fallback logger when nil provided")
	}

	// Logging via the fallback must not panic.
	logger.Info("completion requested")
}
