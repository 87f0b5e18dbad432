package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentConfig addresses a Fluent Bit / Fluentd forward input.
type FluentConfig struct {
	Host      string
	Port      int
	TagPrefix string
}

// NewFluentClient creates the forward client. Creation does not dial; delivery
// errors surface on the first post.
func NewFluentClient(cfg FluentConfig) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, errors.New("fluent tag prefix is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create fluent client: %w", err)
	}
	return client, nil
}

// poster is the part of *fluent.Fluent the logger needs.
type poster interface {
	Post(tag string, message interface{}) error
}

// FluentLogger posts one record per log call, tagged with the level.
type FluentLogger struct {
	client   poster
	fields   Fields
	minLevel slog.Level
}

// NewFluent wraps client. Records below minLevel are dropped.
func NewFluent(client poster, minLevel slog.Level) (*FluentLogger, error) {
	if client == nil {
		return nil, errors.New("fluent client cannot be nil")
	}
	return &FluentLogger{client: client, fields: Fields{}, minLevel: minLevel}, nil
}

func (l *FluentLogger) merge(fields Fields) Fields {
	out := make(Fields, len(l.fields)+len(fields)+3)
	for k, v := range l.fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (l *FluentLogger) post(level slog.Level, tag, msg string, data Fields) {
	if level < l.minLevel {
		return
	}
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	_ = l.client.Post(tag, data)
}

func (l *FluentLogger) Debug(msg string, fields Fields) {
	l.post(slog.LevelDebug, "debug", msg, l.merge(fields))
}

func (l *FluentLogger) Info(msg string, fields Fields) {
	l.post(slog.LevelInfo, "info", msg, l.merge(fields))
}

func (l *FluentLogger) Warn(msg string, fields Fields) {
	l.post(slog.LevelWarn, "warn", msg, l.merge(fields))
}

func (l *FluentLogger) Error(msg string, err error, fields Fields) {
	data := l.merge(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	l.post(slog.LevelError, "error", msg, data)
}

func (l *FluentLogger) WithFields(fields Fields) Logger {
	return &FluentLogger{client: l.client, fields: l.merge(fields), minLevel: l.minLevel}
}
