package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		config.Level = level
	}

	switch cfg.Format {
	case FormatConsole:
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	case FormatGCP:
		// Cloud Logging parses JSON lines on stdout and reads severity from "severity".
		config.Encoding = "json"
		config.OutputPaths = []string{"stdout"}
		config.EncoderConfig = GCPEncoderConfig()
	default:
		config.Encoding = "json"
	}

	if cfg.Format != FormatGCP {
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.TimeKey = "time"
		config.EncoderConfig.MessageKey = "message"
	}

	return config.Build()
}

// GCPEncoderConfig returns the encoder configuration for Google Cloud Logging.
func GCPEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "exception",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    EncodeSeverity,
		EncodeTime:     encodeUTC,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// EncodeSeverity writes the Cloud Logging severity name for a zap level.
func EncodeSeverity(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Severity(l))
}

// Severity maps a zap level to a Cloud Logging severity.
func Severity(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.InfoLevel:
		return "INFO"
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.ErrorLevel:
		return "ERROR"
	case zapcore.DPanicLevel:
		return "CRITICAL"
	case zapcore.PanicLevel:
		return "ALERT"
	case zapcore.FatalLevel:
		return "EMERGENCY"
	default:
		return "DEFAULT"
	}
}

func encodeUTC(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}
