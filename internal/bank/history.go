// internal/bank/history.go
//
// History 為單一帳戶的交易紀錄：只能追加，插入順序即時間順序。

package bank

import (
	"iter"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	reportHeader = "--- Transaction statement ---"
	reportEmpty  = "No transactions recorded."
)

// History is the append-only transaction log of one account.
type History struct {
	mu  sync.RWMutex
	txs []Transaction
}

// Record 追加一筆交易。
func (h *History) Record(t Transaction) {
	h.mu.Lock()
	h.txs = append(h.txs, t)
	h.mu.Unlock()
}

// Len 回傳目前的交易筆數。
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.txs)
}

// Transactions 回傳交易紀錄的拷貝，外部無法改寫內部切片。
func (h *History) Transactions() []Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Transaction, len(h.txs))
	copy(out, h.txs)
	return out
}

// Balance 回傳所有交易帶符號金額的總和。
// 對任何帳戶而言，此值必須等於帳戶餘額。
func (h *History) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range h.Transactions() {
		sum = sum.Add(t.Signed())
	}
	return sum
}

// Report 產生報表行：先一行標題，再每筆交易一行。
// 沒有交易時只產生一行 "No transactions recorded."。
// 每次 range 都重新取快照，因此可重複走訪且沒有副作用。
func (h *History) Report() iter.Seq[string] {
	return func(yield func(string) bool) {
		txs := h.Transactions()
		if len(txs) == 0 {
			yield(reportEmpty)
			return
		}
		if !yield(reportHeader) {
			return
		}
		for _, t := range txs {
			if !yield(t.String()) {
				return
			}
		}
	}
}
