// internal/bank/bank.go

// Package bank 定義帳本的核心商業邏輯：交易、交易紀錄、帳戶、支票帳戶與客戶，
// 以及協調這些物件的 Bank。
// 金額一律使用 decimal.Decimal，避免浮點誤差；每個帳戶以自己的互斥鎖保護餘額與紀錄。
package bank

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ledger/internal/registry"
)

// Bank 為協調層：持有客戶登錄表（稅號 → *Individual）與帳戶登錄表（編號 → Account），
// 並依序配發帳戶編號。帳戶不會回呼 Bank。
// - mu：保護 nextNumber，確保編號配發與登錄是同一個臨界區。
type Bank struct {
	mu          sync.Mutex
	nextNumber  int
	clients     *registry.Registry[string, *Individual]
	accounts    *registry.Registry[int, Account]
	accountOpts []AccountOption
	logger      *log.Logger
	validate    *validator.Validate
}

// Option 調整 Bank 的建立參數。
type Option func(*Bank)

// WithLogger 指定操作日誌輸出；預設丟棄所有日誌。
func WithLogger(l *log.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithAccountOptions 指定所有新開帳戶共用的參數（分行、透支額度、提款上限）。
func WithAccountOptions(opts ...AccountOption) Option {
	return func(b *Bank) {
		b.accountOpts = append(b.accountOpts, opts...)
	}
}

// NewBank 建立空白銀行實例（僅 in-memory 狀態，無外部依賴）。
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		clients:  registry.New[string, *Individual](),
		accounts: registry.New[int, Account](),
		logger:   log.New(io.Discard),
		validate: validator.New(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// IndividualInput 為建立個人客戶所需的輸入。
type IndividualInput struct {
	TaxID     string `validate:"required,numeric"`
	LegalName string `validate:"required"`
	BirthDate time.Time
	Address   string
}

// RegisterIndividual 驗證輸入後建立個人客戶。
// 稅號已存在時回傳 ErrClientExists；欄位不合法時回傳 ErrInvalidClient。
func (b *Bank) RegisterIndividual(in IndividualInput) (*Individual, error) {
	in.TaxID = NormalizeTaxID(in.TaxID)
	in.LegalName = strings.TrimSpace(in.LegalName)
	in.Address = strings.TrimSpace(in.Address)
	if err := b.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidClient, describeValidation(err))
	}

	c := NewIndividual(in.TaxID, in.LegalName, in.BirthDate, in.Address)
	if err := b.clients.Insert(c.TaxID, c); err != nil {
		if errors.Is(err, registry.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrClientExists, c.TaxID)
		}
		return nil, err
	}
	b.logger.Info("client registered", "tax_id", c.TaxID, "name", c.LegalName)
	return c, nil
}

// describeValidation 將 validator 的欄位錯誤整理成 "Field(tag)" 清單。
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}

// Client 依稅號取得客戶；不存在回傳 ErrClientNotFound。
func (b *Bank) Client(taxID string) (*Individual, error) {
	c, err := b.clients.FindByKey(NormalizeTaxID(taxID))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, taxID)
	}
	return c, nil
}

// Clients 依建立順序回傳所有客戶。
func (b *Bank) Clients() []*Individual {
	return b.clients.Values()
}

// OpenCheckingAccount 為客戶開立支票帳戶，編號依序配發（1, 2, ...）。
func (b *Bank) OpenCheckingAccount(taxID string) (*CheckingAccount, error) {
	var opened *CheckingAccount
	err := b.open(taxID, func(owner Owner, number int) Account {
		opened = NewCheckingAccount(owner, number, b.accountOpts...)
		return opened
	})
	if err != nil {
		return nil, err
	}
	return opened, nil
}

// OpenBasicAccount 為客戶開立基本帳戶。
func (b *Bank) OpenBasicAccount(taxID string) (*BasicAccount, error) {
	var opened *BasicAccount
	err := b.open(taxID, func(owner Owner, number int) Account {
		opened = NewBasicAccount(owner, number, b.accountOpts...)
		return opened
	})
	if err != nil {
		return nil, err
	}
	return opened, nil
}

func (b *Bank) open(taxID string, build func(Owner, int) Account) error {
	c, err := b.Client(taxID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	number := b.nextNumber + 1
	a := build(c.Owner(), number)
	if err := b.accounts.Insert(number, a); err != nil {
		b.mu.Unlock()
		return err
	}
	b.nextNumber = number
	b.mu.Unlock()

	c.AddAccount(a)
	b.logger.Info("account opened", "number", number, "tax_id", c.TaxID, "kind", kindOf(a))
	return nil
}

// Account 依編號取得帳戶；不存在回傳 ErrAccountNotFound。
func (b *Bank) Account(number int) (Account, error) {
	a, err := b.accounts.FindByKey(number)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	return a, nil
}

// Accounts 依加入順序回傳客戶名下的帳戶。
func (b *Bank) Accounts(taxID string) ([]Account, error) {
	c, err := b.Client(taxID)
	if err != nil {
		return nil, err
	}
	var out []Account
	for _, n := range c.AccountNumbers() {
		a, err := b.Account(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// AccountCount 回傳已開立的帳戶數。
func (b *Bank) AccountCount() int {
	return b.accounts.Len()
}

// Deposit 依編號存款，規則由帳戶本身決定。
func (b *Bank) Deposit(number int, amount decimal.Decimal) error {
	a, err := b.Account(number)
	if err != nil {
		return err
	}
	if err := a.Deposit(amount); err != nil {
		b.logger.Warn("deposit rejected", "account", number, "amount", amount.StringFixed(2), "err", err)
		return err
	}
	b.logger.Debug("deposit accepted", "account", number, "amount", amount.StringFixed(2))
	return nil
}

// Withdraw 依編號提款，規則由帳戶種類決定。
func (b *Bank) Withdraw(number int, amount decimal.Decimal) error {
	a, err := b.Account(number)
	if err != nil {
		return err
	}
	if err := a.Withdraw(amount); err != nil {
		b.logger.Warn("withdraw rejected", "account", number, "amount", amount.StringFixed(2), "err", err)
		return err
	}
	b.logger.Debug("withdraw accepted", "account", number, "amount", amount.StringFixed(2))
	return nil
}

// Transact 經由 Client.PerformTransaction 套用交易（不經帳戶驗證）。
func (b *Bank) Transact(taxID string, number int, t Transaction) error {
	c, err := b.Client(taxID)
	if err != nil {
		return err
	}
	a, err := b.Account(number)
	if err != nil {
		return err
	}
	if err := c.PerformTransaction(a, t); err != nil {
		b.logger.Warn("transaction rejected", "account", number, "tax_id", c.TaxID, "err", err)
		return err
	}
	b.logger.Debug("transaction applied", "account", number, "kind", t.Kind().String())
	return nil
}

// Statement 為帳戶對帳單：報表行、目前餘額，支票帳戶另含透支額度與可動用總額。
type Statement struct {
	Number         int
	Kind           string
	Summary        string
	Holder         string
	TaxID          string
	Lines          []string
	Transactions   []Transaction
	Balance        decimal.Decimal
	Checking       bool
	OverdraftLimit decimal.Decimal
	Available      decimal.Decimal
	GeneratedAt    time.Time
}

// Statement 產生指定帳戶的對帳單。
func (b *Bank) Statement(number int) (Statement, error) {
	a, err := b.Account(number)
	if err != nil {
		return Statement{}, err
	}
	st := Statement{
		Number:       a.Number(),
		Kind:         kindOf(a),
		Summary:      a.String(),
		Holder:       a.Owner().Name,
		TaxID:        a.Owner().Key,
		Lines:        slices.Collect(a.History().Report()),
		Transactions: a.History().Transactions(),
		Balance:      a.Balance(),
		GeneratedAt:  time.Now(),
	}
	if c, ok := a.(*CheckingAccount); ok {
		st.Checking = true
		st.OverdraftLimit = c.OverdraftLimit()
		st.Available = c.Available()
	}
	return st, nil
}

func kindOf(a Account) string {
	switch a.(type) {
	case *CheckingAccount:
		return "checking"
	default:
		return "basic"
	}
}
