package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the invocation id.
	FieldRunID = "run_id"
	// FieldCommand is the structured log field key for the cli command name.
	FieldCommand = "command"
	// FieldSources is the structured log field key for the number of evidence documents.
	FieldSources = "sources"
	// FieldCandidate is the structured log field key for a ranked candidate.
	FieldCandidate = "candidate"
)

// OrNop returns log, or a no-op logger when log is nil. Components that take
// an optional logger call it once in their constructor.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// WithSources tags the logger with the number of evidence documents a command
// works on. A zero count adds nothing.
func WithSources(log *zap.Logger, n int) *zap.Logger {
	log = OrNop(log)
	if n <= 0 {
		return log
	}
	return log.With(zap.Int(FieldSources, n))
}

// WithCandidate tags the logger with a candidate name. Blank names add nothing.
func WithCandidate(log *zap.Logger, name string) *zap.Logger {
	log = OrNop(log)
	name = strings.TrimSpace(name)
	if name == "" {
		return log
	}
	return log.With(zap.String(FieldCandidate, name))
}
