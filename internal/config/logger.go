package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger configures console output plus a rotating log file and
// installs the logger as the global zerolog logger.
func SetupLogger(cfg *Config) zerolog.Logger {
	_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
