// internal/config/exit.go

package config

import (
	"fmt"
	"io"
	"os"
)

// 測試時可替換
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf 將錯誤訊息寫到 stderr 後以結束碼 1 離開；stdout 保留給報表輸出。
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
