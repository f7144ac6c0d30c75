// internal/bank/money.go

package bank

import "github.com/shopspring/decimal"

// currencySymbol 為帳本唯一使用的幣別符號（不支援多幣別）。
const currencySymbol = "R$"

// FormatMoney 以固定兩位小數輸出金額，例如 "R$ 1500.00"。
// 報表、帳戶摘要與選單顯示共用此格式。
func FormatMoney(d decimal.Decimal) string {
	return currencySymbol + " " + d.StringFixed(2)
}

// positive 回報金額是否嚴格大於零。
func positive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}
