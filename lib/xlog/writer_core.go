package xlog

import (
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xmap/lib/infra"
)

var _ XLogCore = (*writerCore)(nil)

// writerCore encodes entries into a single write syncer, stdout by default.
type writerCore struct{}

// Caller and name are kept, function and stacktrace are dropped since
// ErrorStack fields carry their own frames.
func newEncoderConfig(lvlEnc zapcore.LevelEncoder, tsEnc zapcore.TimeEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "lvl",
		NameKey:       "component",
		CallerKey:     "callAt",
		MessageKey:    "msg",
		FunctionKey:   coreKeyIgnored,
		StacktraceKey: coreKeyIgnored,
		EncodeTime:    tsEnc,
		EncodeLevel:   lvlEnc,
		EncodeName:    zapcore.FullNameEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

func (wc *writerCore) Build(
	lvlEnabler zapcore.LevelEnabler,
	encoder LogEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) (zapcore.Core, error) {
	if ws == nil {
		return nil, infra.NewErrorStack("[XLogger] writer core without write syncer")
	}
	enc := getEncoderByType(encoder)(newEncoderConfig(lvlEnc, tsEnc))
	return zapcore.NewCore(enc, ws, lvlEnabler), nil
}
