// internal/storage/model.go
//
// 定義 JSON 快照報表的結構模型。
// 快照只在重播結束時匯出一次，作為 CSV 之外的機器可讀報表；
// 本系統不從快照還原狀態，每次執行都從輸入檔重新計算。
package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"payments/internal/bank"
)

// Meta 為快照的中繼資料 (metadata)。
type Meta struct {
	Storage   string    `json:"storage"`          // 儲存類型，固定為 "json_snapshot"
	Version   int       `json:"version"`          // 結構版本號
	Timestamp time.Time `json:"timestamp"`        // 快照建立時間
	Source    string    `json:"source,omitempty"` // 輸入檔路徑
}

// AccountRecord 為帳戶在報表中的序列化格式，total 於匯出時推導。
type AccountRecord struct {
	Client    uint32          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// Snapshot 為一次重播的完整結果。
type Snapshot struct {
	Meta     Meta            `json:"_meta"`
	Stats    bank.Stats      `json:"stats"`
	Accounts []AccountRecord `json:"accounts"`
}

// NewSnapshot 由帳本快照建立報表，保留輸入的帳戶順序。
func NewSnapshot(source string, balances []bank.Balance, stats bank.Stats) Snapshot {
	s := Snapshot{
		Meta:     Meta{Storage: "json_snapshot", Version: 1, Source: source},
		Stats:    stats,
		Accounts: make([]AccountRecord, 0, len(balances)),
	}
	for _, b := range balances {
		s.Accounts = append(s.Accounts, AccountRecord{
			Client:    b.Client,
			Available: b.Available,
			Held:      b.Held,
			Total:     b.Total(),
			Locked:    b.Locked,
		})
	}
	return s
}
