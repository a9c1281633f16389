package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the backend and output of the logger built by New.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Format string // text, json or zap
	File   string // rotate into this file instead of writing to stderr
}

// New builds a Logger from opts. Unknown levels fall back to info and unknown
// formats to text; the fallback is reported through the returned logger.
func New(opts Options) Logger {
	out := output(opts.File)

	level, levelOK := parseLevel(opts.Level)

	var logger Logger
	formatOK := true
	switch strings.ToLower(opts.Format) {
	case "zap":
		logger = NewZapLogger(newZap(out, level))
	case "json":
		logger = NewSlogLogger(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})))
	case "", "text":
		logger = NewSlogLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	default:
		formatOK = false
		logger = NewSlogLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	}

	if !levelOK {
		logger.Warn(context.Background(), "could not parse log level, using info", "level", opts.Level)
	}
	if !formatOK {
		logger.Warn(context.Background(), "could not parse log format, using text", "format", opts.Format)
	}
	return logger
}

func output(file string) io.Writer {
	switch file {
	case "":
		return os.Stderr
	case os.DevNull:
		return io.Discard
	default:
		return &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func newZap(out io.Writer, level slog.Level) *zap.Logger {
	var zl zapcore.Level
	switch level {
	case slog.LevelDebug:
		zl = zapcore.DebugLevel
	case slog.LevelWarn:
		zl = zapcore.WarnLevel
	case slog.LevelError:
		zl = zapcore.ErrorLevel
	default:
		zl = zapcore.InfoLevel
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(out), zl)
	return zap.New(core)
}
