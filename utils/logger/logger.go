// Package logger is a thin logrus front end. Every entry carries the name of
// the object that produced it, taken from its String method when it has one.
package logger

import (
	"fmt"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

const objWidth = 20

var std = logrus.StandardLogger()

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		t := reflect.TypeOf(obj)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		objStr = t.Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

// Init sets the level and the text formatter used by all package functions.
func Init(lvl logrus.Level) {
	std.SetLevel(lvl)
	std.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

// SetOutput redirects log entries, mostly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// ParseLevel maps a level name to a logrus level and falls back to info.
func ParseLevel(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func log(lvl logrus.Level, object any, msg string) {
	if !std.IsLevelEnabled(lvl) {
		return
	}
	std.Logf(lvl, "|%20s|%-100s", objToString(object), msg)
}

func Trace(object any, message string) {
	log(logrus.TraceLevel, object, message)
}

func Tracef(object any, message string, args ...any) {
	if !std.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	log(logrus.TraceLevel, object, fmt.Sprintf(message, args...))
}

func Debug(object any, message string) {
	log(logrus.DebugLevel, object, message)
}

func Debugf(object any, message string, args ...any) {
	if !std.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	log(logrus.DebugLevel, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	log(logrus.InfoLevel, object, message)
}

func Infof(object any, message string, args ...any) {
	log(logrus.InfoLevel, object, fmt.Sprintf(message, args...))
}

func Warning(object any, message string) {
	log(logrus.WarnLevel, object, message)
}

func Warningf(object any, message string, args ...any) {
	log(logrus.WarnLevel, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	log(logrus.ErrorLevel, object, message)
}

func Errorf(object any, message string, args ...any) {
	log(logrus.ErrorLevel, object, fmt.Sprintf(message, args...))
}

func Fatal(object any, message string) {
	std.Fatalf("|%20s|%-100s", objToString(object), message)
}

func Fatalf(object any, message string, args ...any) {
	std.Fatalf("|%20s|%-100s", objToString(object), fmt.Sprintf(message, args...))
}
