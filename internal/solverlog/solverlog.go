// Package solverlog is a small leveled-logging shim over the standard
// library's log package, mirroring the verbosity levels
// original_source/log_setup/logger_setup.py sets up (DEBUG < VERBOSE <
// INFO at the console) without adopting a third-party structured
// logging library: the teacher itself never uses one anywhere
// (cmd/server/main.go calls log.Printf/log.Fatal directly), so this
// package stays on stdlib log for the same reason — see DESIGN.md.
package solverlog

import (
	"log"
	"os"
)

// Level is a verbosity tier: the smaller its value, the chattier
// (Debug < Verbose < Info).
type Level int

const (
	Debug Level = iota
	Verbose
	Info
)

// Logger wraps a stdlib *log.Logger with a minimum level: calls below
// the configured level are silently dropped.
type Logger struct {
	min Level
	out *log.Logger
}

// New builds a Logger writing to stderr with the given prefix,
// filtering out any call below min.
func New(prefix string, min Level) *Logger {
	return &Logger{min: min, out: log.New(os.Stderr, prefix, log.LstdFlags)}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.min {
		return
	}
	l.out.Printf(format, args...)
}

// Debugf logs at the most verbose tier.
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, format, args...) }

// Verbosef logs at the intermediate tier.
func (l *Logger) Verbosef(format string, args ...interface{}) { l.log(Verbose, format, args...) }

// Infof logs at the least verbose tier.
func (l *Logger) Infof(format string, args ...interface{}) { l.log(Info, format, args...) }
