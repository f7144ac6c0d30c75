// internal/bank/checking.go

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultMaxWithdrawals 為支票帳戶預設的提款次數上限。
const DefaultMaxWithdrawals = 3

// DefaultOverdraftLimit 為支票帳戶預設透支額度。
var DefaultOverdraftLimit = decimal.NewFromInt(500)

// WithOverdraftLimit 指定支票帳戶的透支額度；負值視為 0。
func WithOverdraftLimit(limit decimal.Decimal) AccountOption {
	return func(c *accountConfig) {
		if limit.IsNegative() {
			limit = decimal.Zero
		}
		c.overdraftLimit = limit
	}
}

// WithMaxWithdrawals 指定支票帳戶可提款次數上限。
func WithMaxWithdrawals(n int) AccountOption {
	return func(c *accountConfig) {
		if n >= 0 {
			c.maxWithdrawals = n
		}
	}
}

// CheckingAccount 為支票帳戶：可透支到 -overdraftLimit，且提款次數有上限。
// 提款次數在帳戶存續期間只增不減，本套件不做週期重置；
// 外部協作者可呼叫 ResetWithdrawals 明確歸零。
type CheckingAccount struct {
	accountState
	overdraftLimit decimal.Decimal
	maxWithdrawals int
	withdrawals    int
}

// NewCheckingAccount 建立支票帳戶，預設透支額度 500、提款上限 3 次。
func NewCheckingAccount(owner Owner, number int, opts ...AccountOption) *CheckingAccount {
	cfg := defaultAccountConfig()
	for _, o := range opts {
		o(&cfg)
	}
	c := &CheckingAccount{
		overdraftLimit: cfg.overdraftLimit,
		maxWithdrawals: cfg.maxWithdrawals,
	}
	c.init(owner, number, cfg.agency)
	return c
}

// Withdraw 依序檢查：
//  1. 金額需 > 0（ErrInvalidAmount）
//  2. 提款次數未達上限（ErrWithdrawalLimitReached，優先於餘額檢查）
//  3. 金額不超過餘額 + 透支額度（ErrInsufficientFunds）
//
// 全部通過才建立提款交易並累加次數。
func (c *CheckingAccount) Withdraw(amount decimal.Decimal) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.withdrawals >= c.maxWithdrawals {
		return fmt.Errorf("%w: %d of %d used", ErrWithdrawalLimitReached, c.withdrawals, c.maxWithdrawals)
	}
	available := c.balance.Add(c.overdraftLimit)
	if amount.GreaterThan(available) {
		return fmt.Errorf("%w: available %s", ErrInsufficientFunds, FormatMoney(available))
	}
	c.applyLocked(NewWithdrawal(amount))
	c.withdrawals++
	return nil
}

func (c *CheckingAccount) OverdraftLimit() decimal.Decimal { return c.overdraftLimit }
func (c *CheckingAccount) MaxWithdrawals() int { return c.maxWithdrawals }

// WithdrawalsMade 回傳已成功的提款次數。
func (c *CheckingAccount) WithdrawalsMade() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withdrawals
}

// Available 回傳可動用金額（餘額 + 透支額度）。
func (c *CheckingAccount) Available() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance.Add(c.overdraftLimit)
}

// ResetWithdrawals 將提款次數歸零。
func (c *CheckingAccount) ResetWithdrawals() {
	c.mu.Lock()
	c.withdrawals = 0
	c.mu.Unlock()
}
