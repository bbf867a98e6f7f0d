package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the application log file.
const (
	rotateAfterMB  = 10
	keepBackups    = 5
	keepBackupDays = 30
)

// NewLogger writes to the console and, when filePath is set, to a rotated log file.
func NewLogger(filePath, serviceName string) (zerolog.Logger, error) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}
	if filePath != "" {
		writers = append(writers, rotatingFile(filePath))
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()

	logger.Debug().
		Str("log_file", filePath).
		Msg("logger ready")

	return logger, nil
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotateAfterMB,
		MaxBackups: keepBackups,
		MaxAge:     keepBackupDays,
		Compress:   true,
	}
}
