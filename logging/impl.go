package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	*zap.SugaredLogger

	name  string
	level zap.AtomicLevel
	cores []zapcore.Core
}

// newImpl builds a logger writing to every core. The cores accept everything; filtering happens
// against the logger's own atomic level so sublogger levels stay independent.
func newImpl(name string, level Level, cores ...zapcore.Core) *impl {
	atomicLevel := zap.NewAtomicLevelAt(level.AsZap())
	base := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.IncreaseLevel(atomicLevel),
	)
	if name != "" {
		base = base.Named(name)
	}
	return &impl{
		SugaredLogger: base.Sugar(),
		name:          name,
		level:         atomicLevel,
		cores:         cores,
	}
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return newImpl(newName, imp.GetLevel(), imp.cores...)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	return Level(imp.level.Level())
}
