// Package logger wraps a process-wide zap logger behind the small
// Info/Error surface the rest of the service uses. Payload logging runs
// through SanitizePayload so secrets never reach the sink.
package logger

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var (
	base *zap.Logger
	once sync.Once
)

var sensitiveKeys = map[string]struct{}{
	"pin":             {},
	"password":        {},
	"transactionpin":  {},
	"transaction_pin": {},
	"authorization":   {},
	"channel_key":     {},
	"channelkey":      {},
}

// Init builds the global logger. Development environments get the console
// encoder, everything else structured JSON on stdout.
func Init() {
	once.Do(func() {
		env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))

		var cfg zap.Config
		if env == "dev" || env == "development" || env == "" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
			cfg.OutputPaths = []string{"stdout"}
			cfg.ErrorOutputPaths = []string{"stderr"}
		}

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		base = l
	})
}

func Info(message string, fields Fields) {
	logger().Info(message, zapFields(fields)...)
}

func Error(message string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	logger().Error(message, zf...)
}

func Sync() {
	_ = logger().Sync()
}

func logger() *zap.Logger {
	Init()
	return base
}

func zapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			out = append(out, zap.String(key, "******"))
			continue
		}
		out = append(out, zap.Any(key, sanitizeValue(value)))
	}
	return out
}

// SanitizePayload renders a request payload safe for logging by masking
// sensitive keys anywhere in the structure.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
