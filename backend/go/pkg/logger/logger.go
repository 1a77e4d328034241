package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus to provide structured logging with pre-bound fields.
type Logger struct {
	entry *logrus.Entry
}

// Init configures the global logrus instance. It must be called once at
// process start, before any Logger is created.
func Init(level logrus.Level) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(level)
}

// ParseLevel converts a config-file level string to a logrus level,
// defaulting to info for unknown values.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// New creates a Logger with service and trace fields pre-bound.
func New(serviceName, traceID string) *Logger {
	return &Logger{
		entry: logrus.WithFields(logrus.Fields{
			"service_name": serviceName,
			"trace_id":     traceID,
		}),
	}
}

// WithError returns a Logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// WithPayload returns a Logger with arbitrary business fields attached.
func (l *Logger) WithPayload(payload map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithField("payload", payload)}
}

func (l *Logger) Info(message string) {
	l.entry.Info(message)
}

func (l *Logger) Warn(message string) {
	l.entry.Warn(message)
}

func (l *Logger) Error(message string) {
	l.entry.Error(message)
}

func (l *Logger) Debug(message string) {
	l.entry.Debug(message)
}

func (l *Logger) Fatal(message string) {
	l.entry.Fatal(message)
}
