// internal/config/env.go
//
// Package config 集中處理行程層級的設定來源：環境變數與錯誤結束。
// 命令列旗標由各指令自行定義，並以這裡讀到的值作為預設。
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix 為所有環境變數共用的前綴；結構標籤只需寫出前綴之後的名稱。
const EnvPrefix = "PAYMENTS_"

// ParseEnv 以 EnvPrefix 讀取環境變數並填入 target（必須為 struct 指標）。
// 多個欄位同時解析失敗時，錯誤會逐一展開，errors.As 可取得個別的 env.ParseError。
func ParseEnv(target any) error {
	err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix})
	if err == nil {
		return nil
	}
	var agg env.AggregateError
	if errors.As(err, &agg) {
		return fmt.Errorf("parse env: %w", errors.Join(agg.Errors...))
	}
	return fmt.Errorf("parse env: %w", err)
}
