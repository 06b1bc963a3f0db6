package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger for benchmark runs.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	// Quiet raises the level to warn so progress lines disappear.
	Quiet bool
	// OutputPaths defaults to stderr; stdout belongs to the report.
	OutputPaths []string
}

// New creates a logger for one benchmark process.
func New(cfg Config) (*Logger, error) {
	level, err := effectiveLevel(cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stderr"}
	}

	encoding := "json"
	if cfg.Development {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// WithRun returns a child logger tagging every entry with the run id.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.With(zap.String("run_id", runID))}
}

// effectiveLevel parses cfg.Level and applies Quiet.
func effectiveLevel(cfg Config) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return zapcore.InfoLevel, err
	}
	if cfg.Quiet && level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}
	return level, nil
}

// encoderConfig keeps JSON keys stable for log scrapers and switches to
// short colored keys on a terminal. Durations are written as strings
// ("1.234µs") since most benchmark fields are sub-millisecond.
func encoderConfig(development bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		enc.TimeKey, enc.LevelKey, enc.CallerKey, enc.MessageKey = "T", "L", "C", "M"
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return enc
}
