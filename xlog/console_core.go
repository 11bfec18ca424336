package xlog

import (
	"go.uber.org/zap/zapcore"
)

// newConsoleCore encodes entries with the msg/lvl/ts/callAt/component keys.
func newConsoleCore(
	lvlEnabler zapcore.LevelEnabler,
	encoder LogEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) zapcore.Core {
	config := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		EncodeLevel:   lvlEnc,
		TimeKey:       "ts",
		EncodeTime:    tsEnc,
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   coreKeyIgnored,
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
	return zapcore.NewCore(getEncoderByType(encoder)(config), ws, lvlEnabler)
}
