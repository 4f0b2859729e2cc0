// internal/bank/transaction.go
//
// 本檔定義交易 (Transaction) 的領域模型：五種交易類型與其欄位。
// 不含任何 CSV 或檔案格式細節，解析工作由 records 套件負責。

package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision 為輸入金額允許的最大小數位數，輸出時亦固定以此位數呈現。
const Precision int32 = 4

// Kind 表示交易類型。
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

// String 回傳交易類型的小寫名稱（與輸入格式一致）。
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// HasAmount 回報此類型是否攜帶金額；只有存款與提款會有金額。
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind 以不分大小寫的方式解析交易類型名稱。
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Transaction 為一筆已解析的交易。
//   - Deposit / Withdrawal：TxID 為新發出的唯一編號，Amount 必須非負。
//   - Dispute / Resolve / Chargeback：TxID 指向先前的一筆存款，Amount 不使用。
type Transaction struct {
	Kind   Kind
	Client uint32
	TxID   uint32
	Amount decimal.Decimal
}

// Deposit 建立存款交易。
func Deposit(client, tx uint32, amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindDeposit, Client: client, TxID: tx, Amount: amount}
}

// Withdrawal 建立提款交易。
func Withdrawal(client, tx uint32, amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindWithdrawal, Client: client, TxID: tx, Amount: amount}
}

// Dispute 建立爭議交易，tx 為被爭議的存款編號。
func Dispute(client, tx uint32) Transaction {
	return Transaction{Kind: KindDispute, Client: client, TxID: tx}
}

// Resolve 建立解除爭議交易。
func Resolve(client, tx uint32) Transaction {
	return Transaction{Kind: KindResolve, Client: client, TxID: tx}
}

// Chargeback 建立退單交易。
func Chargeback(client, tx uint32) Transaction {
	return Transaction{Kind: KindChargeback, Client: client, TxID: tx}
}
