// internal/logging/logger.go

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"ledger/internal/config"
)

// L is the package-level logger used by the command entrypoint.
var L = log.New(os.Stderr)

// New 依設定建立 logger：等級無法解析時使用 info；格式支援 text、json、logfmt。
func New(w io.Writer, cfg config.LogConfig) *log.Logger {
	opts := log.Options{
		Level:           parseLevel(cfg.Level),
		ReportTimestamp: cfg.Timestamps,
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, opts)
}

// Setup 以設定重建 L 並回傳。
func Setup(w io.Writer, cfg config.LogConfig) *log.Logger {
	L = New(w, cfg)
	return L
}

func parseLevel(level string) log.Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if s == "warning" {
		s = "warn"
	}
	l, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
