// Package logger настраивает глобальный логгер logrus для сервера.
package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Поддерживаемые форматы вывода.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup задает уровень и формат стандартного логгера logrus.
// Пустые значения означают info и text.
func Setup(level, format string) error {
	if level == "" {
		level = log.InfoLevel.String()
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("неизвестный формат логов %q (ожидается %s или %s)", format, FormatText, FormatJSON)
	}

	log.SetLevel(lvl)
	log.SetOutput(os.Stdout)
	return nil
}
