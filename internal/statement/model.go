// internal/statement/model.go
//
// 定義「對帳單匯出」的文件結構。
// 文件是某一時刻帳戶狀態的報表副本，只供閱讀與歸檔，不會再載入回帳本。

package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/bank"
)

// Meta 為匯出文件的中繼資料：格式、結構版本與產生時間。
type Meta struct {
	Format      string    `json:"format" yaml:"format"`
	Version     int       `json:"version" yaml:"version"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// AccountInfo 為帳戶摘要；透支欄位只有支票帳戶才會出現。
type AccountInfo struct {
	Number         int              `json:"number" yaml:"number"`
	Kind           string           `json:"kind" yaml:"kind"`
	Summary        string           `json:"summary" yaml:"summary"`
	Holder         string           `json:"holder" yaml:"holder"`
	TaxID          string           `json:"tax_id" yaml:"tax_id"`
	Balance        decimal.Decimal  `json:"balance" yaml:"balance"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty" yaml:"overdraft_limit,omitempty"`
	Available      *decimal.Decimal `json:"available,omitempty" yaml:"available,omitempty"`
}

// Entry 為一筆交易的序列化格式。
type Entry struct {
	ID     string          `json:"id" yaml:"id"`
	Kind   string          `json:"kind" yaml:"kind"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Time   time.Time       `json:"time" yaml:"time"`
}

// Document 為完整的對帳單文件。
type Document struct {
	Meta    Meta        `json:"_meta" yaml:"_meta"`
	Account AccountInfo `json:"account" yaml:"account"`
	Entries []Entry     `json:"entries" yaml:"entries"`
	Lines   []string    `json:"lines" yaml:"lines"`
}

// Version 為目前的文件結構版本。
const Version = 1

// FromStatement 將 bank.Statement 轉成可序列化的文件。
func FromStatement(st bank.Statement) Document {
	doc := Document{
		Meta: Meta{Version: Version, GeneratedAt: st.GeneratedAt},
		Account: AccountInfo{
			Number:  st.Number,
			Kind:    st.Kind,
			Summary: st.Summary,
			Holder:  st.Holder,
			TaxID:   st.TaxID,
			Balance: st.Balance,
		},
		Lines: st.Lines,
	}
	if st.Checking {
		limit, avail := st.OverdraftLimit, st.Available
		doc.Account.OverdraftLimit = &limit
		doc.Account.Available = &avail
	}
	for _, t := range st.Transactions {
		doc.Entries = append(doc.Entries, Entry{
			ID:     t.ID().String(),
			Kind:   t.Kind().String(),
			Amount: t.Amount(),
			Time:   t.Time(),
		})
	}
	return doc
}
