package config

import (
	"log/slog"

	"github.com/rezkam/choices/pkg/choices"
)

// LogLevels are the accepted CHOICES_LOG_LEVEL values.
var LogLevels = choices.MustText("LogLevel",
	choices.Def("DEBUG", "debug"),
	choices.Def("INFO", "info"),
	choices.Def("WARN", "warn"),
	choices.Def("ERROR", "error"),
)

// LogFormats are the accepted CHOICES_LOG_FORMAT values.
var LogFormats = choices.MustText("LogFormat",
	choices.Def("TEXT", "text"),
	choices.Def("JSON", "json"),
)

// LogLevel is a member of LogLevels.
type LogLevel struct {
	*choices.Member[string]
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	m, err := resolve(LogLevels, text)
	if err != nil {
		return err
	}
	l.Member = m
	return nil
}

// Slog maps the level to its slog equivalent. Unset levels are info.
func (l LogLevel) Slog() slog.Level {
	if l.Member == nil {
		return slog.LevelInfo
	}
	switch l.Name() {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LogFormat is a member of LogFormats.
type LogFormat struct {
	*choices.Member[string]
}

func (f *LogFormat) UnmarshalText(text []byte) error {
	m, err := resolve(LogFormats, text)
	if err != nil {
		return err
	}
	f.Member = m
	return nil
}

// JSON reports whether records should be written as JSON.
func (f LogFormat) JSON() bool {
	return f.Member != nil && f.Name() == "JSON"
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  LogLevel  `env:"CHOICES_LOG_LEVEL" default:"info"`
	Format LogFormat `env:"CHOICES_LOG_FORMAT" default:"text"`
}
