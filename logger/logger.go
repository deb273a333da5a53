package logger

import (
	"fmt"
	"strconv"
	"strings"
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) MarshalText() (text []byte, err error) {
	switch l {
	case LevelError:
		return []byte("error"), nil
	case LevelWarn:
		return []byte("warn"), nil
	case LevelInfo:
		return []byte("info"), nil
	case LevelDebug:
		return []byte("debug"), nil
	default:
		panic(fmt.Sprintf("unexpected logger.Level: %d", l))
	}
}

func (l Level) String() string {
	text, err := l.MarshalText()
	if err != nil {
		return strconv.FormatInt(int64(l), 10)
	}
	return string(text)
}

func (l *Level) UnmarshalText(text []byte) error {
	switch {
	case strings.EqualFold(string(text), "error"):
		*l = LevelError
	case strings.EqualFold(string(text), "warn"):
		*l = LevelWarn
	case strings.EqualFold(string(text), "info"):
		*l = LevelInfo
	case strings.EqualFold(string(text), "debug"):
		*l = LevelDebug
	default:
		return fmt.Errorf("unknown log level: %s", string(text))
	}
	return nil
}

type Logger interface {
	With(field string, value any) Logger
	Logf(level Level, format string, args ...any)
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}
