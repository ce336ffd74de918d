// Package monitoring holds the process-wide diagnostic loggers.
package monitoring

import (
	"io"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives verbose progress messages. It is a no-op until a debug
// logger is installed with SetDebugLogger or Install.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebugLogger replaces the debug logger. Passing nil will set a no-op logger.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}

// NewZapLogger builds a console logger writing to w. Debug messages are
// enabled when verbose is set.
func NewZapLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Install routes Logf and Debugf through l. The returned function restores
// the previous loggers and flushes l.
func Install(l *zap.Logger) (restore func()) {
	prevLog, prevDebug := Logf, Debugf
	s := l.Sugar()
	Logf = s.Infof
	Debugf = s.Debugf
	return func() {
		_ = l.Sync()
		Logf, Debugf = prevLog, prevDebug
	}
}
