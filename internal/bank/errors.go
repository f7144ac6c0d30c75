// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 全部都是可恢復的錯誤：被拒絕的操作不會留下任何部分變更，
// 由呼叫端（選單、測試）決定如何呈現。可能以 %w 包裝附帶細節，請用 errors.Is 比對。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表存款或提款金額不是正數。
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表提款金額超過可動用金額
	// （基本帳戶為餘額；支票帳戶為餘額 + 透支額度）。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWithdrawalLimitReached 代表支票帳戶提款次數已達上限。
	ErrWithdrawalLimitReached = errors.New("withdrawal limit reached")

	// ErrAccountNotOwned 代表客戶對不屬於自己的帳戶發起交易。
	ErrAccountNotOwned = errors.New("account not owned by client")

	// ErrClientNotFound 代表找不到指定稅號的客戶。
	ErrClientNotFound = errors.New("client not found")

	// ErrAccountNotFound 代表找不到指定編號的帳戶。
	ErrAccountNotFound = errors.New("account not found")

	// ErrClientExists 代表已有相同稅號的客戶。
	ErrClientExists = errors.New("client with this tax id already exists")

	// ErrInvalidClient 代表客戶資料未通過欄位驗證。
	ErrInvalidClient = errors.New("invalid client data")
)
