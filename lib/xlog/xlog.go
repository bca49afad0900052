package xlog

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xmap/lib/infra"
)

type loggerCfg struct {
	ws          zapcore.WriteSyncer
	encoderType *LogEncoderType
	lvlEncoder  zapcore.LevelEncoder
	tsEncoder   zapcore.TimeEncoder
	level       *zapcore.Level
	name        string
	core        XLogCore
}

func (cfg *loggerCfg) apply() {
	if cfg.ws == nil {
		cfg.ws = zapcore.Lock(os.Stdout)
	}

	if cfg.encoderType == nil {
		enc := JSON
		cfg.encoderType = &enc
	}

	if cfg.level == nil {
		lvl := LogLevel(os.Getenv("XLOG_LVL")).zapLevel()
		cfg.level = &lvl
	}

	if cfg.lvlEncoder == nil {
		cfg.lvlEncoder = zapcore.CapitalLevelEncoder
	}

	if cfg.tsEncoder == nil {
		cfg.tsEncoder = zapcore.ISO8601TimeEncoder
	}

	if cfg.core == nil {
		cfg.core = &writerCore{}
	}
}

type XLoggerOption func(*loggerCfg) error

// NewXLogger builds a zap logger with the writer core.
// The level is read from the XLOG_LVL env if it is not set by option.
func NewXLogger(opts ...XLoggerOption) (*zap.Logger, error) {
	cfg := &loggerCfg{}
	for _, o := range opts {
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	cfg.apply()

	lvl := *cfg.level
	core, err := cfg.core.Build(
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= lvl
		}),
		*cfg.encoderType,
		cfg.ws,
		cfg.lvlEncoder,
		cfg.tsEncoder,
	)
	if err != nil {
		return nil, err
	}

	// Disable zap logger error stack.
	l := zap.New(core, zap.AddCaller())
	if cfg.name != "" {
		l = l.Named(cfg.name)
	}
	return l, nil
}

func WithXLoggerWriter(w io.Writer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w == nil {
			return infra.NewErrorStack("[XLogger] nil writer")
		}
		cfg.ws = zapcore.Lock(zapcore.AddSync(w))
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("[XLogger] unknown encoder")
		}
		cfg.encoderType = &logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := lvl.zapLevel()
		cfg.level = &_lvl
		return nil
	}
}

func WithXLoggerLevelEncoder(lvlEnc zapcore.LevelEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if lvlEnc == nil {
			lvlEnc = zapcore.CapitalColorLevelEncoder
		}
		cfg.lvlEncoder = lvlEnc
		return nil
	}
}

func WithXLoggerTimeEncoder(tsEnc zapcore.TimeEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if tsEnc == nil {
			tsEnc = zapcore.ISO8601TimeEncoder
		}
		cfg.tsEncoder = tsEnc
		return nil
	}
}

// WithXLoggerName names the logger as a component.
func WithXLoggerName(name string) XLoggerOption {
	return func(cfg *loggerCfg) error {
		cfg.name = name
		return nil
	}
}

// ErrorStack is used to print all errors throws stacks.
// Instead of using zap default error stack, it prints the
// frames in JSON array and keeps the log aggregator parsing
// simple.
func ErrorStack(err error) zap.Field {
	var es infra.ErrorStack
	if errors.As(err, &es) && es != nil {
		return zap.Inline(es)
	}
	return zap.Error(err)
}
