package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New crea un *zap.Logger con nivel y formato configurables.
// level: debug|info|warn|error (default info)
// format: json|console (default json)
func New(level, format, app string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if app = strings.TrimSpace(app); app != "" {
		l = l.With(zap.String("app", app))
	}
	return l, nil
}

// NewFromEnv crea el logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=json|console (default json)
// - APP_NAME=vetco (opcional)
// Si la config de zap falla, cae a un logger no-op para no tumbar el arranque.
func NewFromEnv() *zap.Logger {
	l, err := New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("APP_NAME"))
	if err != nil {
		return zap.NewNop()
	}
	return l
}
