// internal/bank/client.go

package bank

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Client 為銀行客戶的共用部分：地址與其擁有的帳戶。
// 帳戶本身的生命週期由 Bank 的帳戶登錄表負責，Client 只保留參照。
type Client struct {
	Address string

	mu       sync.Mutex
	accounts []Account
}

// NewClient 建立沒有任何帳戶的客戶。
func NewClient(address string) *Client {
	return &Client{Address: address}
}

// AddAccount 將帳戶加入客戶名下；不檢查重複。
func (c *Client) AddAccount(a Account) {
	c.mu.Lock()
	c.accounts = append(c.accounts, a)
	c.mu.Unlock()
}

// AccountNumbers 依加入順序回傳客戶名下的帳戶編號。
func (c *Client) AccountNumbers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.accounts))
	for i, a := range c.accounts {
		out[i] = a.Number()
	}
	return out
}

// Owns 回報 a 是否為客戶名下的同一個帳戶實例。
// 不同 Bank 的帳戶編號可能相同，所以比對實例而非編號。
func (c *Client) Owns(a Account) bool {
	if a == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.accounts, a)
}

// PerformTransaction 直接把交易套用到客戶名下的帳戶。
// 這是次要入口：只檢查帳戶歸屬，不經過 Account.Deposit / Withdraw 的金額與餘額驗證。
func (c *Client) PerformTransaction(a Account, t Transaction) error {
	if a == nil {
		return ErrAccountNotOwned
	}
	if !c.Owns(a) {
		return fmt.Errorf("%w: account %d", ErrAccountNotOwned, a.Number())
	}
	t.Apply(a)
	return nil
}

// DisplayName 回傳報表用的客戶名稱。
func (c *Client) DisplayName() string {
	return "Client"
}

// Individual represents a natural person client identified by tax id.
type Individual struct {
	*Client
	TaxID     string
	LegalName string
	BirthDate time.Time
}

// NewIndividual 建立個人客戶。稅號唯一性由呼叫端（Bank）負責檢查。
func NewIndividual(taxID, legalName string, birthDate time.Time, address string) *Individual {
	return &Individual{
		Client:    NewClient(address),
		TaxID:     NormalizeTaxID(taxID),
		LegalName: legalName,
		BirthDate: birthDate,
	}
}

func (i *Individual) DisplayName() string {
	return i.LegalName
}

// Owner 回傳開戶時寫入帳戶的持有人參照。
func (i *Individual) Owner() Owner {
	return Owner{Key: i.TaxID, Name: i.LegalName}
}

// SameTaxID 比對稅號（忽略標點與空白）。
func (i *Individual) SameTaxID(taxID string) bool {
	return i.TaxID == NormalizeTaxID(taxID)
}

func (i *Individual) String() string {
	return fmt.Sprintf("Client: %s (Tax ID: %s)", i.LegalName, i.TaxID)
}

// NormalizeTaxID 只保留稅號中的數字，例如 "123.456.789-09" → "12345678909"。
func NormalizeTaxID(taxID string) string {
	var b strings.Builder
	for _, r := range taxID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
