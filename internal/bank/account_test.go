// internal/bank/account_test.go
//
// Account 狀態機的單元測試。
// 涵蓋：存提款、重播保護、爭議 → 解除 / 退單生命週期、凍結後的行為，
// 以及每一種被捨棄的情境都不會改變帳戶狀態。

package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dec 為小工具：以字串建立精確的 decimal。
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertBalance 比對帳戶的 available / held / locked，並檢查 total 由兩者推導。
func assertBalance(t *testing.T, a *Account, available, held string, locked bool) {
	t.Helper()
	assert.True(t, a.Available().Equal(dec(available)), "available=%s want=%s", a.Available(), available)
	assert.True(t, a.Held().Equal(dec(held)), "held=%s want=%s", a.Held(), held)
	assert.True(t, a.Total().Equal(dec(available).Add(dec(held))), "total=%s", a.Total())
	assert.Equal(t, locked, a.Locked())
}

func TestDepositAndWithdraw(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10.5"))))
	require.NoError(t, a.Apply(Withdrawal(1, 2, dec("0.25"))))
	assertBalance(t, a, "10.25", "0", false)
}

func TestDecimalArithmeticIsExact(t *testing.T) {
	a := NewAccount(1)
	for i := uint32(1); i <= 10; i++ {
		require.NoError(t, a.Apply(Deposit(1, i, dec("0.1"))))
	}
	assertBalance(t, a, "1", "0", false)
	require.NoError(t, a.Apply(Withdrawal(1, 11, dec("0.9999"))))
	assertBalance(t, a, "0.0001", "0", false)
}

// TestReplayIsNoop 驗證同一 TxID 的存款或提款再次出現時不產生任何變化。
func TestReplayIsNoop(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	assert.ErrorIs(t, a.Apply(Deposit(1, 1, dec("10"))), ErrDuplicateTx)
	assertBalance(t, a, "10", "0", false)

	require.NoError(t, a.Apply(Withdrawal(1, 2, dec("3"))))
	assert.ErrorIs(t, a.Apply(Withdrawal(1, 2, dec("3"))), ErrDuplicateTx)
	// 提款不能重用存款的編號
	assert.ErrorIs(t, a.Apply(Withdrawal(1, 1, dec("1"))), ErrDuplicateTx)
	assertBalance(t, a, "7", "0", false)
}

func TestInsufficientFunds(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("5"))))
	assert.ErrorIs(t, a.Apply(Withdrawal(1, 2, dec("10"))), ErrInsufficientFunds)
	assertBalance(t, a, "5", "0", false)

	// 被拒的提款不寫入歷史，資金到位後同一編號仍可成功
	require.NoError(t, a.Apply(Deposit(1, 3, dec("5"))))
	require.NoError(t, a.Apply(Withdrawal(1, 2, dec("10"))))
	assertBalance(t, a, "0", "0", false)
}

func TestNegativeAmountDropped(t *testing.T) {
	a := NewAccount(1)
	assert.ErrorIs(t, a.Apply(Deposit(1, 1, dec("-1"))), ErrBadAmount)
	assert.ErrorIs(t, a.Apply(Withdrawal(1, 2, dec("-1"))), ErrBadAmount)
	assertBalance(t, a, "0", "0", false)

	// 負數被拒後編號未被佔用
	require.NoError(t, a.Apply(Deposit(1, 1, dec("1"))))
	assertBalance(t, a, "1", "0", false)
}

func TestZeroAmountAccepted(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, decimal.Zero)))
	assert.ErrorIs(t, a.Apply(Deposit(1, 1, dec("1"))), ErrDuplicateTx)
	assertBalance(t, a, "0", "0", false)
}

// TestDisputeResolveRoundTrip 驗證爭議後解除，狀態與存款後完全相同，且可再次爭議。
func TestDisputeResolveRoundTrip(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))

	require.NoError(t, a.Apply(Dispute(1, 1)))
	assertBalance(t, a, "0", "10", false)
	assert.True(t, a.Disputed(1))

	require.NoError(t, a.Apply(Resolve(1, 1)))
	assertBalance(t, a, "10", "0", false)
	assert.False(t, a.Disputed(1))

	// 回到 Posted，可再次爭議
	require.NoError(t, a.Apply(Dispute(1, 1)))
	assertBalance(t, a, "0", "10", false)
}

func TestChargebackLocksAccount(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	require.NoError(t, a.Apply(Dispute(1, 1)))
	require.NoError(t, a.Apply(Chargeback(1, 1)))
	assertBalance(t, a, "0", "0", true)
	assert.False(t, a.Disputed(1))

	// 凍結後任何交易都不生效
	assert.ErrorIs(t, a.Apply(Deposit(1, 2, dec("5"))), ErrAccountLocked)
	assert.ErrorIs(t, a.Apply(Withdrawal(1, 3, dec("1"))), ErrAccountLocked)
	assert.ErrorIs(t, a.Apply(Dispute(1, 1)), ErrAccountLocked)
	assert.ErrorIs(t, a.Apply(Chargeback(1, 1)), ErrAccountLocked)
	assertBalance(t, a, "0", "0", true)
}

func TestChargebackKeepsOtherFunds(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	require.NoError(t, a.Apply(Deposit(1, 2, dec("4"))))
	require.NoError(t, a.Apply(Dispute(1, 1)))
	require.NoError(t, a.Apply(Dispute(1, 2)))
	require.NoError(t, a.Apply(Chargeback(1, 1)))
	assertBalance(t, a, "0", "4", true)

	// 凍結後仍在爭議中的存款也無法解除
	assert.ErrorIs(t, a.Apply(Resolve(1, 2)), ErrAccountLocked)
	assertBalance(t, a, "0", "4", true)
}

func TestDisputeGuards(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	require.NoError(t, a.Apply(Withdrawal(1, 2, dec("1"))))

	// ❌ 未知編號
	assert.ErrorIs(t, a.Apply(Dispute(1, 99)), ErrTxNotFound)
	// ❌ 提款不可爭議
	assert.ErrorIs(t, a.Apply(Dispute(1, 2)), ErrNotDisputable)
	assertBalance(t, a, "9", "0", false)

	// ❌ 可用餘額已不足以凍結整筆存款
	assert.ErrorIs(t, a.Apply(Dispute(1, 1)), ErrInsufficientFunds)
	assertBalance(t, a, "9", "0", false)
}

// TestDoubleDisputeDropped 明確驗證對已在爭議中的存款再次爭議會被捨棄。
func TestDoubleDisputeDropped(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	require.NoError(t, a.Apply(Deposit(1, 2, dec("10"))))
	require.NoError(t, a.Apply(Dispute(1, 1)))
	assert.ErrorIs(t, a.Apply(Dispute(1, 1)), ErrAlreadyDisputed)
	assertBalance(t, a, "10", "10", false)
}

func TestResolveAndChargebackRequireDispute(t *testing.T) {
	a := NewAccount(1)
	require.NoError(t, a.Apply(Deposit(1, 1, dec("10"))))
	assert.ErrorIs(t, a.Apply(Resolve(1, 1)), ErrNotDisputed)
	assert.ErrorIs(t, a.Apply(Chargeback(1, 1)), ErrNotDisputed)
	assert.ErrorIs(t, a.Apply(Resolve(1, 42)), ErrNotDisputed)
	assertBalance(t, a, "10", "0", false)

	require.NoError(t, a.Apply(Dispute(1, 1)))
	require.NoError(t, a.Apply(Resolve(1, 1)))
	// 已解除後不可再解除
	assert.ErrorIs(t, a.Apply(Resolve(1, 1)), ErrNotDisputed)
	assertBalance(t, a, "10", "0", false)
}

func TestUnknownKind(t *testing.T) {
	a := NewAccount(1)
	assert.ErrorIs(t, a.Apply(Transaction{Kind: Kind(42), Client: 1, TxID: 1}), ErrUnknownKind)
	assertBalance(t, a, "0", "0", false)
}

// TestBalancesNeverNegative 以固定的混合序列逐步驗證 available、held 皆不為負，
// 且 total 恆等於已生效存款減提款減已退單金額。
func TestBalancesNeverNegative(t *testing.T) {
	a := NewAccount(7)
	seq := []Transaction{
		Deposit(7, 1, dec("3.5")),
		Withdrawal(7, 2, dec("5")),
		Deposit(7, 3, dec("2")),
		Dispute(7, 1),
		Withdrawal(7, 4, dec("2")),
		Dispute(7, 3),
		Resolve(7, 1),
		Withdrawal(7, 5, dec("3.5")),
		Dispute(7, 3),
		Deposit(7, 6, dec("0.0001")),
		Chargeback(7, 3),
	}
	for i, tx := range seq {
		_ = a.Apply(tx)
		assert.False(t, a.Available().IsNegative(), "step %d available=%s", i, a.Available())
		assert.False(t, a.Held().IsNegative(), "step %d held=%s", i, a.Held())
	}
	// deposits 3.5+2+0.0001, withdrawals 2+3.5 (5 rejected), dispute on 3 after
	// funds were spent is rejected, so nothing is charged back.
	assertBalance(t, a, "0.0001", "0", false)
}
