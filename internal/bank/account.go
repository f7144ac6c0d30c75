// internal/bank/account.go
//
// 本檔定義 Account 介面與兩種帳戶共用的狀態區塊 accountState。
// 帳戶種類（BasicAccount、CheckingAccount）各自實作 Withdraw 規則，
// 存款規則與摘要輸出則由 accountState 統一提供。

package bank

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultAgency 為新帳戶的預設分行代碼。
const DefaultAgency = "0001"

// Owner 為帳戶持有人的非擁有式參照：只記錄客戶鍵值（稅號）與顯示名稱，
// 帳戶不持有 Client 本身，也不會回呼 Client。
type Owner struct {
	Key  string
	Name string
}

// Account 是帳本對外的帳戶能力介面。
// 未匯出的 state 方法讓介面封閉在本套件內，只有本套件的帳戶種類能實作。
type Account interface {
	Number() int
	Agency() string
	Owner() Owner
	Balance() decimal.Decimal
	History() *History
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	String() string

	state() *accountState
}

// accountState 為所有帳戶種類共用的狀態。
// mu 保護 balance 與 history 的「檢查 → 建立交易 → 更新餘額 → 寫入紀錄」整段流程。
// balance 只能透過 applyLocked 變動，永遠等於 history 的帶符號總和。
type accountState struct {
	mu      sync.Mutex
	number  int
	agency  string
	owner   Owner
	balance decimal.Decimal
	history History
}

// AccountOption 調整新帳戶的參數。
type AccountOption func(*accountConfig)

type accountConfig struct {
	agency         string
	overdraftLimit decimal.Decimal
	maxWithdrawals int
}

func defaultAccountConfig() accountConfig {
	return accountConfig{
		agency:         DefaultAgency,
		overdraftLimit: DefaultOverdraftLimit,
		maxWithdrawals: DefaultMaxWithdrawals,
	}
}

// WithAgency 指定分行代碼。
func WithAgency(agency string) AccountOption {
	return func(c *accountConfig) {
		if agency != "" {
			c.agency = agency
		}
	}
}

func (s *accountState) init(owner Owner, number int, agency string) {
	s.number = number
	s.agency = agency
	s.owner = owner
	s.balance = decimal.Zero
}

func (s *accountState) state() *accountState { return s }

func (s *accountState) Number() int { return s.number }
func (s *accountState) Agency() string { return s.agency }
func (s *accountState) Owner() Owner { return s.owner }
func (s *accountState) History() *History { return &s.history }

// Balance 回傳目前餘額。
func (s *accountState) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Deposit 存款：金額需 > 0，否則回傳 ErrInvalidAmount 且不做任何變更。
func (s *accountState) Deposit(amount decimal.Decimal) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(NewDeposit(amount))
	return nil
}

// applyLocked 更新餘額並追加紀錄；呼叫端必須持有 mu。
func (s *accountState) applyLocked(t Transaction) {
	s.balance = s.balance.Add(t.Signed())
	s.history.Record(t)
}

// String 輸出帳戶摘要，例如 "Agency: 0001 | Account: 1 | Holder: Ana"。
func (s *accountState) String() string {
	name := s.owner.Name
	if name == "" {
		name = "Client"
	}
	return fmt.Sprintf("Agency: %s | Account: %d | Holder: %s", s.agency, s.number, name)
}

// BasicAccount 為基本帳戶：提款不得超過餘額，餘額永遠非負。
type BasicAccount struct {
	accountState
}

// NewBasicAccount 為 owner 建立編號為 number 的基本帳戶，初始餘額為 0。
func NewBasicAccount(owner Owner, number int, opts ...AccountOption) *BasicAccount {
	cfg := defaultAccountConfig()
	for _, o := range opts {
		o(&cfg)
	}
	a := &BasicAccount{}
	a.init(owner, number, cfg.agency)
	return a
}

// Withdraw 提款：金額需 > 0 且不得超過餘額。
// 任何失敗皆不改變餘額與紀錄。
func (a *BasicAccount) Withdraw(amount decimal.Decimal) error {
	if !positive(amount) {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: available %s", ErrInsufficientFunds, FormatMoney(a.balance))
	}
	a.applyLocked(NewWithdrawal(amount))
	return nil
}
