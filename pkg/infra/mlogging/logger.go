// 指示: miu200521358
// Package mlogging はslogの生成とログレベル解析を提供する。
package mlogging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel はログレベル名を解析する。
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug", "verbose":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("未対応のログレベルです: %s", value)
	}
}

// NewLogger は出力先とレベルを指定したテキストロガーを生成する。
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup はロガーを生成して既定ロガーに設定する。
func Setup(w io.Writer, levelName string) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(w, level)
	slog.SetDefault(logger)
	return logger, nil
}
