// internal/bank/bank_test.go
//
// 本檔為 Bank 協調層的測試：客戶註冊、依序開戶、依編號存提款、對帳單與併發安全。

package bank

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

var defaultBirth = time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

// register 為小工具：註冊客戶，失敗時立即讓測試失敗。
func register(t *testing.T, b *Bank, taxID, name string) *Individual {
	t.Helper()
	c, err := b.RegisterIndividual(IndividualInput{TaxID: taxID, LegalName: name, BirthDate: defaultBirth, Address: "Rua A, 1 - Centro"})
	if err != nil {
		t.Fatalf("RegisterIndividual(%s) err=%v", taxID, err)
	}
	return c
}

func TestRegisterIndividual(t *testing.T) {
	b := NewBank()
	c := register(t, b, "123.456.789-09", "Ana Souza")
	if c.TaxID != "12345678909" || c.LegalName != "Ana Souza" {
		t.Fatalf("got=%+v", c)
	}

	// 重複稅號（不同格式）也要被拒絕
	_, err := b.RegisterIndividual(IndividualInput{TaxID: "12345678909", LegalName: "Outra"})
	if !errors.Is(err, ErrClientExists) {
		t.Fatalf("want ErrClientExists, got %v", err)
	}

	// 欄位驗證
	cases := []IndividualInput{
		{TaxID: "", LegalName: "X"},
		{TaxID: "abc", LegalName: "X"},
		{TaxID: "11122233344", LegalName: "   "},
	}
	for _, in := range cases {
		if _, err := b.RegisterIndividual(in); !errors.Is(err, ErrInvalidClient) {
			t.Fatalf("in=%+v want ErrInvalidClient, got %v", in, err)
		}
	}
	if n := len(b.Clients()); n != 1 {
		t.Fatalf("clients=%d want=1", n)
	}

	if _, err := b.Client("000"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("want ErrClientNotFound, got %v", err)
	}
}

// 帳戶編號依序配發，並加入客戶名下。
func TestOpenAccountsSequential(t *testing.T) {
	b := NewBank()
	register(t, b, "11111111111", "Ana")
	register(t, b, "22222222222", "Bia")

	a1, err := b.OpenCheckingAccount("11111111111")
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := b.OpenCheckingAccount("22222222222")
	a3, _ := b.OpenBasicAccount("11111111111")
	if a1.Number() != 1 || a2.Number() != 2 || a3.Number() != 3 {
		t.Fatalf("numbers=%d,%d,%d want 1,2,3", a1.Number(), a2.Number(), a3.Number())
	}
	if a1.Owner().Name != "Ana" || a2.Owner().Key != "22222222222" {
		t.Fatalf("owners: %+v %+v", a1.Owner(), a2.Owner())
	}

	accts, err := b.Accounts("11111111111")
	if err != nil {
		t.Fatal(err)
	}
	if len(accts) != 2 || accts[0].Number() != 1 || accts[1].Number() != 3 {
		t.Fatalf("Accounts=%v", accts)
	}

	if _, err := b.OpenCheckingAccount("99999999999"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("want ErrClientNotFound, got %v", err)
	}
	if _, err := b.Account(42); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestBankDepositWithdraw(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	b := NewBank(WithLogger(logger), WithAccountOptions(WithOverdraftLimit(decimal.NewFromInt(100))))
	register(t, b, "11111111111", "Ana")
	a, _ := b.OpenCheckingAccount("11111111111")

	if err := b.Deposit(a.Number(), decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}
	if err := b.Withdraw(a.Number(), decimal.NewFromInt(150)); err != nil {
		t.Fatal(err)
	}
	if err := b.Withdraw(a.Number(), decimal.NewFromInt(1)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if err := b.Deposit(99, decimal.NewFromInt(1)); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
	if !a.Balance().Equal(decimal.NewFromInt(-100)) {
		t.Fatalf("balance=%s want=-100", a.Balance())
	}

	out := buf.String()
	for _, want := range []string{"account opened", "deposit accepted", "withdraw rejected"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %s", want, out)
		}
	}
}

func TestBankTransact(t *testing.T) {
	b := NewBank()
	register(t, b, "11111111111", "Ana")
	register(t, b, "22222222222", "Bia")
	a, _ := b.OpenBasicAccount("11111111111")
	other, _ := b.OpenBasicAccount("22222222222")

	if err := b.Transact("11111111111", a.Number(), NewDeposit(decimal.NewFromInt(5))); err != nil {
		t.Fatal(err)
	}
	if err := b.Transact("11111111111", other.Number(), NewDeposit(decimal.NewFromInt(5))); !errors.Is(err, ErrAccountNotOwned) {
		t.Fatalf("want ErrAccountNotOwned, got %v", err)
	}
	if !other.Balance().IsZero() || other.History().Len() != 0 {
		t.Fatalf("foreign account mutated")
	}
}

// 兩個 Bank 都從編號 1 開始；同編號的他人帳戶仍不屬於客戶。
func TestPerformTransactionAcrossBanks(t *testing.T) {
	b1, b2 := NewBank(), NewBank()
	ana := register(t, b1, "11111111111", "Ana")
	register(t, b2, "22222222222", "Bia")
	own, err := b1.OpenCheckingAccount("11111111111")
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := b2.OpenCheckingAccount("22222222222")
	if err != nil {
		t.Fatal(err)
	}
	if b1.AccountCount() != 1 || b2.AccountCount() != 1 {
		t.Fatalf("AccountCount=%d,%d", b1.AccountCount(), b2.AccountCount())
	}
	if own.Number() != foreign.Number() {
		t.Fatalf("numbers %d and %d should collide", own.Number(), foreign.Number())
	}

	err = ana.PerformTransaction(foreign, NewDeposit(decimal.NewFromInt(40)))
	if !errors.Is(err, ErrAccountNotOwned) {
		t.Fatalf("want ErrAccountNotOwned, got %v", err)
	}
	if !foreign.Balance().IsZero() || foreign.History().Len() != 0 {
		t.Fatalf("foreign account mutated: balance=%s", foreign.Balance())
	}

	if err := ana.PerformTransaction(own, NewDeposit(decimal.NewFromInt(40))); err != nil {
		t.Fatal(err)
	}
	if !own.Balance().Equal(decimal.NewFromInt(40)) {
		t.Fatalf("own balance=%s", own.Balance())
	}
	if err := ana.PerformTransaction(nil, NewDeposit(decimal.NewFromInt(1))); !errors.Is(err, ErrAccountNotOwned) {
		t.Fatalf("nil account: got %v", err)
	}
}

func TestStatement(t *testing.T) {
	b := NewBank()
	register(t, b, "11111111111", "Ana")
	c, _ := b.OpenCheckingAccount("11111111111")
	basic, _ := b.OpenBasicAccount("11111111111")

	_ = b.Deposit(c.Number(), decimal.NewFromInt(100))
	_ = b.Withdraw(c.Number(), decimal.NewFromInt(300))

	st, err := b.Statement(c.Number())
	if err != nil {
		t.Fatal(err)
	}
	if !st.Checking || st.Kind != "checking" || st.Holder != "Ana" {
		t.Fatalf("statement=%+v", st)
	}
	if !st.Balance.Equal(decimal.NewFromInt(-200)) || !st.Available.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("balance=%s available=%s", st.Balance, st.Available)
	}
	if len(st.Lines) != 3 || len(st.Transactions) != 2 {
		t.Fatalf("lines=%q txs=%d", st.Lines, len(st.Transactions))
	}

	bst, _ := b.Statement(basic.Number())
	if bst.Checking || len(bst.Lines) != 1 || bst.Lines[0] != "No transactions recorded." {
		t.Fatalf("basic statement=%+v", bst)
	}
	if _, err := b.Statement(77); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

// TestConcurrentDepositsRaceSafety 驗證多執行緒同時存款仍具資料一致性。
func TestConcurrentDepositsRaceSafety(t *testing.T) {
	b := NewBank()
	register(t, b, "11111111111", "Ana")
	a, _ := b.OpenBasicAccount("11111111111")

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := b.Deposit(a.Number(), decimal.NewFromInt(1)); err != nil {
				t.Errorf("deposit err: %v", err)
			}
		}()
	}
	wg.Wait()

	if !a.Balance().Equal(decimal.NewFromInt(workers)) || a.History().Len() != workers {
		t.Fatalf("balance=%s history=%d want=%d", a.Balance(), a.History().Len(), workers)
	}
}

// 併發提款下，支票帳戶的成功次數仍不超過上限。
func TestConcurrentWithdrawalsRespectCeiling(t *testing.T) {
	c := NewCheckingAccount(ana, 1)
	_ = c.Deposit(decimal.NewFromInt(1000))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Withdraw(decimal.NewFromInt(1)); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if ok != 3 || c.WithdrawalsMade() != 3 {
		t.Fatalf("successful=%d counter=%d want=3", ok, c.WithdrawalsMade())
	}
}
