// internal/bank/ledger.go

// Package bank 定義交易重播的核心：帳戶狀態機與帳本。
// Ledger 為聚合根 (Aggregate Root)：擁有 client -> Account 的對照表。
// 交易依到達順序逐筆同步套用，Ledger 不持有任何鎖，也不可被並行使用；
// 每個 Account 只由 Ledger 的對照表持有，外部拿到的都是值拷貝。
package bank

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Balance 為單一帳戶在快照時的狀態（值拷貝）。
type Balance struct {
	Client    uint32          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Locked    bool            `json:"locked"`
}

// Total 回傳 Available + Held。
func (b Balance) Total() decimal.Decimal { return b.Available.Add(b.Held) }

// Stats 統計本次重播中交易的套用結果。
type Stats struct {
	Accounts int `json:"accounts"`
	Applied  int `json:"applied"`
	Rejected int `json:"rejected"`
}

// Ledger 管理本次執行中出現過的所有帳戶。
type Ledger struct {
	log      *zap.Logger
	accts    map[uint32]*Account
	applied  int
	rejected int
}

// NewLedger 建立空白帳本。logger 可為 nil。
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{log: logger, accts: make(map[uint32]*Account)}
}

// account 取得帳戶；第一次出現的客戶編號會建立新帳戶。
func (l *Ledger) account(client uint32) *Account {
	a, ok := l.accts[client]
	if !ok {
		a = NewAccount(client)
		l.accts[client] = a
	}
	return a
}

// Apply 將交易原封不動轉交給所屬帳戶。
// 沒有回傳值：被帳戶捨棄的交易只會記錄在 debug log 並計數。
func (l *Ledger) Apply(tx Transaction) {
	if err := l.account(tx.Client).Apply(tx); err != nil {
		l.rejected++
		l.log.Debug("transaction dropped",
			zap.Uint32("client", tx.Client),
			zap.Uint32("tx", tx.TxID),
			zap.Stringer("type", tx.Kind),
			zap.Error(err),
		)
		return
	}
	l.applied++
}

// Get 回傳指定客戶的帳戶快照；帳戶不存在時 ok 為 false。
func (l *Ledger) Get(client uint32) (Balance, bool) {
	a, ok := l.accts[client]
	if !ok {
		return Balance{}, false
	}
	return a.Balance(), true
}

// Len 回傳目前帳戶數量。
func (l *Ledger) Len() int { return len(l.accts) }

// Snapshot 匯出所有帳戶的狀態，依客戶編號遞增排序，確保同一輸入產生相同輸出。
func (l *Ledger) Snapshot() []Balance {
	out := make([]Balance, 0, len(l.accts))
	for _, a := range l.accts {
		out = append(out, a.Balance())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Stats 回傳目前為止的套用統計。
func (l *Ledger) Stats() Stats {
	return Stats{Accounts: len(l.accts), Applied: l.applied, Rejected: l.rejected}
}
