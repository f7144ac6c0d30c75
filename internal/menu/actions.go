// internal/menu/actions.go

package menu

import (
	"errors"
	"fmt"

	"ledger/internal/bank"
	"ledger/internal/i18n"
	"ledger/internal/statement"
)

// newClient 建立個人客戶；稅號重複時在詢問其他欄位前就拒絕。
func (m *Menu) newClient() {
	m.println(i18n.T("client.header"))
	taxID, ok := m.readLine(i18n.T("prompt.tax_id"))
	if !ok {
		return
	}
	if _, err := m.bank.Client(taxID); err == nil {
		m.println(i18n.T("error.client_exists"))
		return
	}

	name, _ := m.readLine(i18n.T("prompt.legal_name"))
	rawBirth, _ := m.readLine(i18n.T("prompt.birth_date"))
	birth, valid := parseBirthDate(rawBirth)
	if !valid {
		m.println(i18n.T("client.bad_birth_date"))
	}
	address, _ := m.readLine(i18n.T("prompt.address"))

	c, err := m.bank.RegisterIndividual(bank.IndividualInput{
		TaxID:     taxID,
		LegalName: name,
		BirthDate: birth,
		Address:   address,
	})
	if err != nil {
		m.fail(err, nil)
		return
	}
	m.println(i18n.T("client.created", c.LegalName))
}

func (m *Menu) newAccount() {
	m.println(i18n.T("account.header"))
	c, ok := m.lookupClient("error.client_not_found_create")
	if !ok {
		return
	}
	a, err := m.bank.OpenCheckingAccount(c.TaxID)
	if err != nil {
		m.fail(err, nil)
		return
	}
	m.println(i18n.T("account.created", a.Number(), c.LegalName))
}

func (m *Menu) listAccounts() {
	c, ok := m.lookupClient("error.client_not_found")
	if !ok {
		return
	}
	accts, err := m.bank.Accounts(c.TaxID)
	if err != nil {
		m.fail(err, nil)
		return
	}
	if len(accts) == 0 {
		m.println(i18n.T("account.none", c.LegalName))
		return
	}
	m.println(i18n.T("account.list_header", c.LegalName))
	for _, a := range accts {
		m.println(fmt.Sprintf("  > %s", a))
	}
}

func (m *Menu) deposit() {
	c, ok := m.lookupClient("error.client_not_found")
	if !ok {
		return
	}
	a, ok := m.selectAccount(c)
	if !ok {
		return
	}
	raw, _ := m.readLine(i18n.T("prompt.deposit_amount"))
	amount, err := parseAmount(raw)
	if err != nil {
		m.println(i18n.T("error.invalid_value"))
		return
	}
	if err := m.bank.Deposit(a.Number(), amount); err != nil {
		m.fail(err, a)
		return
	}
	m.println(i18n.T("deposit.ok"))
}

func (m *Menu) withdraw() {
	c, ok := m.lookupClient("error.client_not_found")
	if !ok {
		return
	}
	a, ok := m.selectAccount(c)
	if !ok {
		return
	}
	raw, _ := m.readLine(i18n.T("prompt.withdraw_amount"))
	amount, err := parseAmount(raw)
	if err != nil {
		m.println(i18n.T("error.invalid_value"))
		return
	}
	if err := m.bank.Withdraw(a.Number(), amount); err != nil {
		m.fail(err, a)
		return
	}
	m.println(i18n.T("withdraw.ok"))
}

// showStatement 輸出報表行與餘額；支票帳戶另外輸出透支額度與可動用總額。
func (m *Menu) showStatement() {
	c, ok := m.lookupClient("error.client_not_found")
	if !ok {
		return
	}
	a, ok := m.selectAccount(c)
	if !ok {
		return
	}
	st, err := m.bank.Statement(a.Number())
	if err != nil {
		m.fail(err, a)
		return
	}

	m.println("")
	m.println(i18n.T("statement.header", st.Number))
	m.println(i18n.T("statement.holder", c.LegalName))
	for _, line := range st.Lines {
		m.println(line)
	}
	m.println("---------------------------------")
	m.println(i18n.T("statement.balance", bank.FormatMoney(st.Balance)))
	if st.Checking {
		m.println(i18n.T("statement.overdraft", bank.FormatMoney(st.OverdraftLimit)))
		m.println(i18n.T("statement.available", bank.FormatMoney(st.Available)))
	}
}

func (m *Menu) exportStatement() {
	c, ok := m.lookupClient("error.client_not_found")
	if !ok {
		return
	}
	a, ok := m.selectAccount(c)
	if !ok {
		return
	}
	path, ok := m.readLine(i18n.T("prompt.export_path"))
	if !ok || path == "" {
		m.println(i18n.T("error.invalid_value"))
		return
	}
	st, err := m.bank.Statement(a.Number())
	if err != nil {
		m.fail(err, a)
		return
	}
	if err := statement.Save(path, statement.FromStatement(st)); err != nil {
		m.logger.Error("statement export failed", "path", path, "err", err)
		m.println(i18n.T("error.export", err))
		return
	}
	m.logger.Info("statement exported", "account", st.Number, "path", path)
	m.println(i18n.T("export.ok", path))
}

// fail 將領域錯誤對應到訊息；a 可為 nil。
func (m *Menu) fail(err error, a bank.Account) {
	m.logger.Debug("operation failed", "err", err)
	checking, _ := a.(*bank.CheckingAccount)

	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		m.println(i18n.T("error.invalid_amount"))
	case errors.Is(err, bank.ErrWithdrawalLimitReached) && checking != nil:
		m.println(i18n.T("error.withdrawal_limit", checking.MaxWithdrawals()))
	case errors.Is(err, bank.ErrInsufficientFunds) && checking != nil:
		m.println(i18n.T("error.insufficient_overdraft", bank.FormatMoney(checking.Available())))
	case errors.Is(err, bank.ErrInsufficientFunds):
		m.println(i18n.T("error.insufficient_funds"))
	case errors.Is(err, bank.ErrClientExists):
		m.println(i18n.T("error.client_exists"))
	case errors.Is(err, bank.ErrInvalidClient):
		m.println(i18n.T("error.invalid_client", err))
	case errors.Is(err, bank.ErrClientNotFound):
		m.println(i18n.T("error.client_not_found"))
	case errors.Is(err, bank.ErrAccountNotFound):
		m.println(i18n.T("error.account_not_found"))
	case errors.Is(err, bank.ErrAccountNotOwned):
		m.println(i18n.T("error.not_owned"))
	default:
		m.println(i18n.T("error.generic", err))
	}
}
