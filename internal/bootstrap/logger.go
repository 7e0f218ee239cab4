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

	"github.com/dooficoin/doofigame/internal/config"
	"github.com/dooficoin/doofigame/internal/logger"
)

// SetupLogger installs the default logger writing to a timestamped file in
// cfg.LogDir and, when echo is non-nil, to echo as well. The console front
// end passes nil so logs never interleave with the prompt.
// Returns the log file handle (caller must close).
func SetupLogger(cfg *config.Config, frontend string, echo io.Writer) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, frontend, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}

	var w io.Writer = logFile
	if echo != nil {
		w = io.MultiWriter(echo, logFile)
	}

	logCfg := logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Frontend:    frontend,
	}
	logger.InitLoggerWithWriter(logCfg, w)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", logFileName)
	slog.Info(LogMsgStarting,
		"frontend", frontend,
		"environment", cfg.Environment,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"api_url", cfg.APIURL,
		"token_file", cfg.TokenFile,
		"request_timeout", cfg.RequestTimeout)

	return logFile, nil
}

// cleanupLogs removes the oldest log files so that keep-1 remain, leaving
// room for the file about to be created.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) < keep {
		return
	}

	// timestamped names sort chronologically within a front end
	sort.Slice(logFiles, func(i, j int) bool {
		return logTimestamp(logFiles[i]) < logTimestamp(logFiles[j])
	})
	for _, name := range logFiles[:len(logFiles)-keep+1] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}

func logTimestamp(name string) string {
	base := strings.TrimSuffix(name, LogFileExtension)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[i+1:]
	}
	return base
}
