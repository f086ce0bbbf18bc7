// Package logging wraps zap for the diff service.
package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for the protocol layer and CLI.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger writing JSON lines to logPath. An empty path disables
// logging. Development mode uses the readable encoder config.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger; call on shutdown.
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// ToolCall logs one protocol tool invocation.
func (l *Logger) ToolCall(tool string, duration time.Duration, err error) {
	if err != nil {
		l.zap.Info("tool call",
			zap.String("tool", tool),
			zap.Duration("duration", duration),
			zap.Bool("success", false),
			zap.Error(err),
		)
		return
	}
	l.zap.Info("tool call",
		zap.String("tool", tool),
		zap.Duration("duration", duration),
		zap.Bool("success", true),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}
