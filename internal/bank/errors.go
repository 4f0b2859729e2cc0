// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤只說明某筆交易為何被捨棄：Account 回傳它們、Ledger 記錄後直接丟棄，
// 不會中止整批重播。結構性錯誤（檔案、標頭）不在此處，由 records 與 replay 處理。

package bank

import "errors"

var (
	// ErrAccountLocked 代表帳戶已因退單而凍結，任何交易都不再生效。
	ErrAccountLocked = errors.New("account is locked")

	// ErrBadAmount 代表金額為負數。
	ErrBadAmount = errors.New("amount must be >= 0")

	// ErrDuplicateTx 代表存款或提款的交易編號已處理過（重播保護）。
	ErrDuplicateTx = errors.New("transaction already processed")

	// ErrInsufficientFunds 代表可用餘額不足以完成提款或爭議。
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrTxNotFound 代表爭議所指的交易編號不在此帳戶的歷史中。
	ErrTxNotFound = errors.New("referenced transaction not found")

	// ErrNotDisputable 代表爭議所指的交易不是存款。
	ErrNotDisputable = errors.New("only deposits can be disputed")

	// ErrAlreadyDisputed 代表該筆存款目前已在爭議中。
	ErrAlreadyDisputed = errors.New("transaction already under dispute")

	// ErrNotDisputed 代表解除或退單所指的交易目前不在爭議中。
	ErrNotDisputed = errors.New("transaction is not under dispute")

	// ErrUnknownKind 代表無法辨識的交易類型。
	ErrUnknownKind = errors.New("unknown transaction type")
)
