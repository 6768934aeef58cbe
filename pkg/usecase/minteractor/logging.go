// 指示: miu200521358
package minteractor

import (
	"fmt"
	"log/slog"
)

// logRigInfo はリグ構築のINFOログを出力する。
func logRigInfo(format string, params ...any) {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Info(fmt.Sprintf(format, params...))
}

// logRigDebug はリグ構築のDEBUGログを出力する。
func logRigDebug(format string, params ...any) {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Debug(fmt.Sprintf(format, params...))
}

// logRigWarn はリグ構築の警告ログを出力する。
func logRigWarn(format string, params ...any) {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Warn(fmt.Sprintf(format, params...))
}

// logRigError はリグ構築のエラーログを出力する。
func logRigError(format string, params ...any) {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Error(fmt.Sprintf(format, params...))
}
