// Package logging builds the zap logger and provides fields that keep raw
// payment data out of log sinks.
package logging

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cleared-dev/payfield/internal/config"
	"github.com/cleared-dev/payfield/internal/redact"
)

// New builds a logger writing to w at the configured level and encoding.
func New(cfg config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	enc := encoderConfig()
	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(cfg.Encoding)) {
	case "console", "":
		encoder = zapcore.NewConsoleEncoder(enc)
	case "json":
		encoder = zapcore.NewJSONEncoder(enc)
	default:
		return nil, errors.New("logging: unsupported encoding " + cfg.Encoding)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, errors.New("logging: unsupported level " + level)
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// Payload returns a field holding a redacted copy of v.
func Payload(key string, v any, s redact.Sanitizer) zap.Field {
	return nodeField(key, s.Node(v))
}

func nodeField(key string, n redact.Node) zap.Field {
	switch n.Kind() {
	case redact.MappingNode:
		return zap.Object(key, mappingMarshaler(n))
	case redact.SequenceNode:
		return zap.Array(key, sequenceMarshaler(n))
	default:
		return zap.Any(key, n.ScalarValue())
	}
}

type mappingMarshaler redact.Node

func (m mappingMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	var errs []error
	for _, e := range redact.Node(m).Entries() {
		switch e.Value.Kind() {
		case redact.MappingNode:
			errs = append(errs, enc.AddObject(e.Key, mappingMarshaler(e.Value)))
		case redact.SequenceNode:
			errs = append(errs, enc.AddArray(e.Key, sequenceMarshaler(e.Value)))
		default:
			errs = append(errs, enc.AddReflected(e.Key, e.Value.ScalarValue()))
		}
	}
	return errors.Join(errs...)
}

type sequenceMarshaler redact.Node

func (s sequenceMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	var errs []error
	for _, item := range redact.Node(s).Items() {
		switch item.Kind() {
		case redact.MappingNode:
			errs = append(errs, enc.AppendObject(mappingMarshaler(item)))
		case redact.SequenceNode:
			errs = append(errs, enc.AppendArray(sequenceMarshaler(item)))
		default:
			errs = append(errs, enc.AppendReflected(item.ScalarValue()))
		}
	}
	return errors.Join(errs...)
}
