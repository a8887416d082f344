package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects how one skillsense invocation logs.
type Options struct {
	JSON  bool
	Debug bool
	// File receives the log lines instead of stderr when set.
	File string

	RunID   string
	Command string
}

// New builds the invocation logger. Lines go to stderr unless File is set,
// stdout is left to reports and JSON output. The run id and command are
// attached to every line.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	if opts.JSON {
		encoding = "json"
	}

	output := "stderr"
	if file := strings.TrimSpace(opts.File); file != "" {
		output = file
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    runFields(opts.RunID, opts.Command),
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// runFields skips blank values so a bare logger carries no empty keys.
func runFields(runID, command string) map[string]any {
	fields := make(map[string]any, 2)
	if v := strings.TrimSpace(runID); v != "" {
		fields[FieldRunID] = v
	}
	if v := strings.TrimSpace(command); v != "" {
		fields[FieldCommand] = v
	}
	return fields
}
