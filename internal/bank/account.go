// internal/bank/account.go
//
// 本檔定義 Account：單一客戶的餘額、交易歷史、爭議集合與凍結旗標，
// 並負責套用每一種交易。帳戶是自身餘額唯一的擁有者與修改者。

package bank

import "github.com/shopspring/decimal"

// entry 為成功套用的存款或提款紀錄，供後續爭議、解除、退單查回金額。
type entry struct {
	kind   Kind
	amount decimal.Decimal
}

// Account represents one client's funds.
//
// 不變式（每筆交易套用後皆成立）：
//   - available >= 0 且 held >= 0
//   - total 永遠由 available + held 推導，不另外儲存
//   - 同一 TxID 在 history 中至多出現一次
//   - disputed 只包含目前爭議中的存款
//   - locked 之後任何交易都不再改變狀態
type Account struct {
	client    uint32
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
	history   map[uint32]entry
	disputed  map[uint32]struct{}
}

// NewAccount 建立餘額為零、未凍結的空帳戶。
func NewAccount(client uint32) *Account {
	return &Account{
		client:   client,
		history:  make(map[uint32]entry),
		disputed: make(map[uint32]struct{}),
	}
}

// Client 回傳帳戶所屬的客戶編號。
func (a *Account) Client() uint32 { return a.client }

// Available 回傳可提領餘額。
func (a *Account) Available() decimal.Decimal { return a.available }

// Held 回傳因爭議而凍結的餘額。
func (a *Account) Held() decimal.Decimal { return a.held }

// Total 回傳 available + held。
func (a *Account) Total() decimal.Decimal { return a.available.Add(a.held) }

// Locked 回報帳戶是否已被退單凍結。
func (a *Account) Locked() bool { return a.locked }

// Disputed 回報指定交易是否正在爭議中。
func (a *Account) Disputed(tx uint32) bool {
	_, ok := a.disputed[tx]
	return ok
}

// Balance 回傳帳戶目前狀態的值拷貝。
func (a *Account) Balance() Balance {
	return Balance{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Locked:    a.locked,
	}
}

// Apply 將交易套用至帳戶。
// 回傳 nil 表示交易已生效；回傳錯誤表示交易被捨棄，且帳戶狀態完全未變。
// 錯誤僅用於說明捨棄原因，呼叫端不需要也無法補救。
func (a *Account) Apply(tx Transaction) error {
	if a.locked {
		return ErrAccountLocked
	}
	switch tx.Kind {
	case KindDeposit:
		return a.deposit(tx.TxID, tx.Amount)
	case KindWithdrawal:
		return a.withdraw(tx.TxID, tx.Amount)
	case KindDispute:
		return a.dispute(tx.TxID)
	case KindResolve:
		return a.resolve(tx.TxID)
	case KindChargeback:
		return a.chargeback(tx.TxID)
	default:
		return ErrUnknownKind
	}
}

// record 檢查存提款共同的前置條件：金額非負、交易編號未出現過。
func (a *Account) record(tx uint32, amt decimal.Decimal) error {
	if amt.IsNegative() {
		return ErrBadAmount
	}
	if _, seen := a.history[tx]; seen {
		return ErrDuplicateTx
	}
	return nil
}

func (a *Account) deposit(tx uint32, amt decimal.Decimal) error {
	if err := a.record(tx, amt); err != nil {
		return err
	}
	a.available = a.available.Add(amt)
	a.history[tx] = entry{kind: KindDeposit, amount: amt}
	return nil
}

// withdraw 提款：可用餘額不足時捨棄，且不寫入歷史，同一編號之後仍可重送。
func (a *Account) withdraw(tx uint32, amt decimal.Decimal) error {
	if err := a.record(tx, amt); err != nil {
		return err
	}
	if a.available.LessThan(amt) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amt)
	a.history[tx] = entry{kind: KindWithdrawal, amount: amt}
	return nil
}

// dispute 將存款金額由 available 移至 held。
// 若該筆存款已被部分提領導致 available 不足，捨棄以維持 available >= 0。
func (a *Account) dispute(tx uint32) error {
	e, ok := a.history[tx]
	if !ok {
		return ErrTxNotFound
	}
	if e.kind != KindDeposit {
		return ErrNotDisputable
	}
	if a.Disputed(tx) {
		return ErrAlreadyDisputed
	}
	if a.available.LessThan(e.amount) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(e.amount)
	a.held = a.held.Add(e.amount)
	a.disputed[tx] = struct{}{}
	return nil
}

// resolve 解除爭議：金額由 held 回到 available，該筆存款可再次被爭議。
func (a *Account) resolve(tx uint32) error {
	if !a.Disputed(tx) {
		return ErrNotDisputed
	}
	amt := a.history[tx].amount
	a.held = a.held.Sub(amt)
	a.available = a.available.Add(amt)
	delete(a.disputed, tx)
	return nil
}

// chargeback 退單：移除 held 中的金額並永久凍結帳戶。
func (a *Account) chargeback(tx uint32) error {
	if !a.Disputed(tx) {
		return ErrNotDisputed
	}
	a.held = a.held.Sub(a.history[tx].amount)
	delete(a.disputed, tx)
	a.locked = true
	return nil
}
