// internal/bank/transaction.go
//
// 交易 (Transaction) 是一筆不可變的金流紀錄：存款或提款。
// 交易本身不做驗證，驗證一律由 Account 在建立交易之前完成。

package bank

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind 為交易種類；只有 Deposit 與 Withdrawal 兩種。
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// Transaction represents an accepted balance movement.
type Transaction struct {
	id     uuid.UUID
	kind   Kind
	amount decimal.Decimal
	at     time.Time
}

// NewDeposit 建立存款交易；金額正負由呼叫端負責檢查。
func NewDeposit(amount decimal.Decimal) Transaction {
	return newTransaction(KindDeposit, amount)
}

// NewWithdrawal 建立提款交易；餘額是否足夠由呼叫端負責檢查。
func NewWithdrawal(amount decimal.Decimal) Transaction {
	return newTransaction(KindWithdrawal, amount)
}

func newTransaction(k Kind, amount decimal.Decimal) Transaction {
	return Transaction{id: uuid.New(), kind: k, amount: amount, at: time.Now()}
}

func (t Transaction) ID() uuid.UUID { return t.id }
func (t Transaction) Kind() Kind { return t.kind }
func (t Transaction) Amount() decimal.Decimal { return t.amount }
func (t Transaction) Time() time.Time { return t.at }

// Signed 回傳帶符號金額：存款為正、提款為負。
func (t Transaction) Signed() decimal.Decimal {
	if t.kind == KindWithdrawal {
		return t.amount.Neg()
	}
	return t.amount
}

// Apply 將交易套用到帳戶：更新餘額並寫入該帳戶的 History。
// 兩個動作在帳戶鎖內一次完成，沒有失敗路徑。
func (t Transaction) Apply(a Account) {
	s := a.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(t)
}

// String 產生報表用的單行描述，例如 "[+] Deposit:    R$ 100.00"。
func (t Transaction) String() string {
	switch t.kind {
	case KindDeposit:
		return fmt.Sprintf("[+] Deposit:    %s", FormatMoney(t.amount))
	case KindWithdrawal:
		return fmt.Sprintf("[-] Withdrawal: %s", FormatMoney(t.amount))
	default:
		return fmt.Sprintf("[?] %s", FormatMoney(t.amount))
	}
}
