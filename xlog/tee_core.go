package xlog

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (xLogMultiCore)(nil)

type xLogMultiCore []zapcore.Core

func (mc xLogMultiCore) With(fields []zap.Field) zapcore.Core {
	clone := make([]zapcore.Core, len(mc))
	for i := range mc {
		clone[i] = mc[i].With(fields)
	}
	return zapcore.NewTee(clone...)
}

// Level is the lowest level enabled by any of the cores.
func (mc xLogMultiCore) Level() zapcore.Level {
	minLvl := zapcore.InvalidLevel
	for i := range mc {
		if lvl := zapcore.LevelOf(mc[i]); lvl < minLvl {
			minLvl = lvl
		}
	}
	return minLvl
}

func (mc xLogMultiCore) Enabled(lvl zapcore.Level) bool {
	for i := range mc {
		if mc[i].Enabled(lvl) {
			return true
		}
	}
	return false
}

func (mc xLogMultiCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for i := range mc {
		ce = mc[i].Check(ent, ce)
	}
	return ce
}

func (mc xLogMultiCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	var err error
	for i := range mc {
		err = multierr.Append(err, mc[i].Write(ent, fields))
	}
	return err
}

func (mc xLogMultiCore) Sync() error {
	var err error
	for i := range mc {
		err = multierr.Append(err, mc[i].Sync())
	}
	return err
}

// XLogTeeCore writes every entry to each of the cores.
func XLogTeeCore(cores ...zapcore.Core) zapcore.Core {
	return xLogMultiCore(cores)
}
