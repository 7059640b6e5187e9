package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared by every log entry that involves an AI provider.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// WithAIFields returns the logger tagged with the AI provider and model so
// completion logs can be traced back to the backend that produced them. Blank
// values are skipped and a nil logger falls back to a no-op one.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := make([]zap.Field, 0, 2)
	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
