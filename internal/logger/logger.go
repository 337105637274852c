package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

type implLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a zap-backed Logger. format is "json" or "text".
func New(level, format string) Logger {
	return &implLogger{sugar: build(newConfig(level, format)).Sugar()}
}

func newConfig(level, format string) zap.Config {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var cfg zap.Config
	if strings.ToLower(format) == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	// Stack traces only on Error and above.
	cfg.Development = false
	cfg.EncoderConfig = encCfg
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.OutputPaths = []string{"stdout"}
	cfg.Sampling = nil
	return cfg
}

// build falls back to a console logger on stderr when cfg cannot be built.
func build(cfg zap.Config) *zap.Logger {
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err == nil {
		return z
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.Lock(os.Stderr), cfg.Level)
	z = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	z.Warn("Falling back to stderr logging", zap.Error(err))
	return z
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &implLogger{sugar: zap.NewNop().Sugar()}
}

// WithRequestID returns a context whose log lines carry the given request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *implLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return l.sugar
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return l.sugar.With("request_id", id)
	}
	return l.sugar
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Errorf(msg, args...)
}

func (l *implLogger) Sync() error {
	return l.sugar.Sync()
}
