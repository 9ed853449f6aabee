package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	infoTxtColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
)

func levelStyle(glyph string, color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(glyph).
		Bold(true).
		Padding(0, 1).
		Foreground(color)
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = levelStyle("❌", errorTxtColor)
	styles.Levels[log.InfoLevel] = levelStyle("ℹ️", infoTxtColor)
	styles.Levels[log.WarnLevel] = levelStyle("⚠️", warnTxtColor)
	styles.Levels[log.DebugLevel] = levelStyle("🐛", debugTxtColor)

	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":     errorTxtColor,
		"warn":      warnTxtColor,
		"info":      infoTxtColor,
		"debug":     debugTxtColor,
		"from":      infoTxtColor,
		"to":        infoTxtColor,
		"converted": infoTxtColor,
		"provider":  debugTxtColor,
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// SetupLogger builds the process logger from cfg, writing to w (stdout when
// nil), and installs it as the slog default.
func SetupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05"}
	}
	if w == nil {
		w = os.Stdout
	}

	formattersMap := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"text":   log.TextFormatter,
		"logfmt": log.LogfmtFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level < 0,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
