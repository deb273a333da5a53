package cosekey

import (
	"github.com/sirupsen/logrus"
	"github.com/smithee-solutions/libcose/logger"
)

type LogrusAdapter struct {
	*logrus.Logger
}

type logrusEntryAdapter struct {
	*logrus.Entry
}

func logrusLevel(l logger.Level) logrus.Level {
	switch l {
	case logger.LevelError:
		return logrus.ErrorLevel
	case logger.LevelWarn:
		return logrus.WarnLevel
	case logger.LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (l LogrusAdapter) Logf(level logger.Level, format string, args ...any) {
	l.Logger.Logf(logrusLevel(level), format, args...)
}

func (l LogrusAdapter) With(field string, value any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Logger.WithField(field, value)}
}

func (l logrusEntryAdapter) Logf(level logger.Level, format string, args ...any) {
	l.Entry.Logf(logrusLevel(level), format, args...)
}

func (l logrusEntryAdapter) With(field string, value any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Entry.WithField(field, value)}
}

func newLogger(level logger.Level) logger.Logger {
	l := logrus.New()
	l.SetLevel(logrusLevel(level))
	return LogrusAdapter{Logger: l}
}
