package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/logger"
)

// SetupLogger writes logs to stdout and a timestamped file under cfg.LogDir.
// The caller must close the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	cleanupLogs(cfg.LogDir, LogFilesToKeep)

	name := filepath.Join(cfg.LogDir, LogFilePrefix+time.Now().Format("2006-01-02_15-04-05")+LogFileSuffix)
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)
	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", name)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageDriver)
	slog.Debug(LogMsgConfigLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port)

	return logFile, nil
}

// cleanupLogs deletes the oldest session logs so that keep remain before a new one is opened
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), LogFilePrefix) && strings.HasSuffix(e.Name(), LogFileSuffix) {
			names = append(names, e.Name())
		}
	}
	// timestamped names sort chronologically
	sort.Strings(names)

	for len(names) > keep {
		if err := os.Remove(filepath.Join(logDir, names[0])); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", names[0], "error", err)
		}
		names = names[1:]
	}
}
