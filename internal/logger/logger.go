// internal/logger/logger.go

// Package logger 建立系統使用的 zap 結構化日誌。
// 執行期使用 New（JSON、可調整等級）；測試一律使用 Test 或 TestObserved，
// 讓輸出跟隨 t.Log 並可在測試中斷言日誌內容。
// 各元件應注入 logger 並以 Named("<元件名>") 區分來源。
package logger

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// New 依等級字串（debug / info / warn / error）建立 production logger。
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return l.Sugar(), nil
}

// Nop 回傳不輸出任何內容的 logger，供未注入 logger 的元件使用。
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Test 回傳寫入測試輸出的 logger。
func Test(tb testing.TB) *zap.SugaredLogger {
	tb.Helper()
	return zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Sugar()
}

// TestObserved 回傳測試 logger，並同時把 lvl 以上的日誌收集到 ObservedLogs。
func TestObserved(tb testing.TB, lvl zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	tb.Helper()
	oCore, logs := observer.New(lvl)
	observe := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})
	return zaptest.NewLogger(tb, zaptest.WrapOptions(observe)).Sugar(), logs
}
