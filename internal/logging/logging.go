// internal/logging/logging.go
//
// Package logging 建立整個行程共用的 zap logger。
// log 一律寫到 stderr（或呼叫端傳入的 writer），stdout 只留給 CSV 報表。
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 支援的輸出格式
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config 為 logger 的初始化參數；空字串代表使用預設值（error 等級、console 格式）。
type Config struct {
	Level  string
	Format string
}

// New 建立寫入 w 的 logger；等級或格式無法辨識時回傳錯誤。
func New(cfg Config, w zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	enc, err := buildEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, zapcore.Lock(w), level)
	return zap.New(core, zap.AddCaller()), nil
}

func resolveLevel(s string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(s) == "" {
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel), nil
	}
	var parsed zapcore.Level
	if err := parsed.Set(s); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}

// buildEncoder 中 json 使用 ISO8601 時間，方便交給 log 收集器；console 給人閱讀。
func buildEncoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	case FormatConsole, "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
