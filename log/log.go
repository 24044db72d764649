// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log exports logging primitives used across storepass. It
// mimics Go's standard log package so call sites read the same way,
// but is backed by logrus so the CLI gets structured, leveled output.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the interface for logging messages.
type Logger interface {
	// Printf writes a formatted message to the log.
	Printf(format string, v ...interface{})

	// Print writes a message to the log.
	Print(v ...interface{})

	// Println writes a line to the log.
	Println(v ...interface{})

	// Fatal writes a message to the log and aborts.
	Fatal(v ...interface{})

	// Fatalf writes a formatted message to the log and aborts.
	Fatalf(format string, v ...interface{})
}

// Level is the level of logging.
type Level int

// Different levels of logging.
const (
	Ldebug    = Level(logrus.DebugLevel)
	Linfo     = Level(logrus.InfoLevel)
	Lerror    = Level(logrus.ErrorLevel)
	Ldisabled = Level(4000) // Some big value we'll never use.
	Linvalid  = Level(-2)
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// Pre-allocated Loggers at each logging level.
var (
	Debug Logger = &logger{level: logrus.DebugLevel}
	Info  Logger = &logger{level: logrus.InfoLevel}
	Error Logger = &logger{level: logrus.ErrorLevel}
)

type logger struct {
	level logrus.Level
}

var _ Logger = (*logger)(nil)

func (l Level) String() string {
	switch l {
	case Ldebug:
		return "debug"
	case Linfo:
		return "info"
	case Lerror:
		return "error"
	case Ldisabled:
		return "disabled"
	}
	return "unknown error type"
}

// logLevelFromString is the inverse of Level.String for the four named
// levels; any other string yields Linvalid.
func logLevelFromString(s string) Level {
	for _, l := range []Level{Ldebug, Linfo, Lerror, Ldisabled} {
		if l.String() == s {
			return l
		}
	}
	return Linvalid
}

func (l *logger) entry() *logrus.Entry {
	return logrus.NewEntry(base).WithField("level", l.level.String())
}

// Printf writes a formatted message to the log.
func (l *logger) Printf(format string, v ...interface{}) {
	if base.IsLevelEnabled(l.level) {
		l.entry().Logf(l.level, format, v...)
	}
}

// Print writes a message to the log.
func (l *logger) Print(v ...interface{}) {
	if base.IsLevelEnabled(l.level) {
		l.entry().Log(l.level, v...)
	}
}

// Println writes a line to the log.
func (l *logger) Println(v ...interface{}) {
	l.Print(v...)
}

// Fatal writes a message to the log if l's level is enabled, and aborts regardless of the current log level.
func (l *logger) Fatal(v ...interface{}) {
	l.entry().Log(l.level, v...)
	os.Exit(1)
}

// Fatalf writes a formatted message to the log if l's level is enabled, and aborts regardless of the current log level.
func (l *logger) Fatalf(format string, v ...interface{}) {
	l.entry().Logf(l.level, format, v...)
	os.Exit(1)
}

// SetLevel sets the current logging level. Lower levels than current will not be logged.
func SetLevel(level Level) {
	switch level {
	case Ldisabled:
		base.SetLevel(logrus.PanicLevel)
	default:
		base.SetLevel(logrus.Level(level))
	}
}

// CurrentLevel returns the current logging level.
func CurrentLevel() Level {
	if base.GetLevel() == logrus.PanicLevel {
		return Ldisabled
	}
	return Level(base.GetLevel())
}

// At returns whether the level will be logged currently.
func At(level Level) bool {
	return base.IsLevelEnabled(logrus.Level(level))
}

// Printf writes a formatted message to the log.
func Printf(format string, v ...interface{}) { Info.Printf(format, v...) }

// Print writes a message to the log.
func Print(v ...interface{}) { Info.Print(v...) }

// Println writes a line to the log.
func Println(v ...interface{}) { Info.Println(v...) }

// Fatal writes a message to the log and aborts.
func Fatal(v ...interface{}) { Info.Fatal(v...) }

// Fatalf writes a formatted message to the log and aborts.
func Fatalf(format string, v ...interface{}) { Info.Fatalf(format, v...) }
