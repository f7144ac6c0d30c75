// internal/menu/menu.go
//
// Package menu 為帳本的互動式文字選單，作為 bank 模組的外部驅動層。
// 每個選項只負責：
//  1. 讀取並解析使用者輸入
//  2. 呼叫 bank 層執行商業邏輯
//  3. 將結果或領域錯誤轉成使用者看得懂的訊息
//
// 所有商業規則都留在 bank；選單不直接修改任何帳戶狀態。
package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"ledger/internal/bank"
	"ledger/internal/i18n"
)

// birthDateLayout 為生日輸入格式 DD-MM-YYYY。
const birthDateLayout = "02-01-2006"

// defaultBirthDate 為生日格式錯誤時使用的日期。
var defaultBirthDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Menu 將一個輸入串流上的選單對話連結到 Bank。
type Menu struct {
	bank    *bank.Bank
	in      *bufio.Scanner
	out     io.Writer
	prompts bool
	logger  *log.Logger
}

// Option 調整 Menu 的行為。
type Option func(*Menu)

// WithPrompts 決定是否輸出輸入提示；非互動輸入（管線、腳本）時可關閉。
func WithPrompts(on bool) Option {
	return func(m *Menu) { m.prompts = on }
}

// WithLogger 指定選單使用的 logger。
func WithLogger(l *log.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}

// New 建立選單。
func New(b *bank.Bank, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		bank:    b,
		in:      bufio.NewScanner(in),
		out:     out,
		prompts: true,
		logger:  log.New(io.Discard),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Run 執行選單直到使用者選擇 0 或輸入結束。
func (m *Menu) Run() error {
	for {
		m.showMenu()
		choice, ok := m.readLine(i18n.T("menu.prompt.choice"))
		if !ok {
			return m.in.Err()
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.newClient()
		case "2":
			m.newAccount()
		case "3":
			m.listAccounts()
		case "4":
			m.deposit()
		case "5":
			m.withdraw()
		case "6":
			m.showStatement()
		case "7":
			m.exportStatement()
		case "0":
			m.println(i18n.T("menu.goodbye"))
			return nil
		default:
			m.println(i18n.T("menu.invalid_option"))
		}
	}
}

func (m *Menu) showMenu() {
	m.println("")
	for _, id := range []string{
		"menu.title",
		"menu.option.new_client",
		"menu.option.new_account",
		"menu.option.list_accounts",
		"menu.option.deposit",
		"menu.option.withdraw",
		"menu.option.statement",
		"menu.option.export",
		"menu.option.quit",
	} {
		m.println(i18n.T(id))
	}
}

// readLine 顯示提示並讀取一行；輸入結束時回傳 false。
func (m *Menu) readLine(prompt string) (string, bool) {
	if m.prompts {
		fmt.Fprint(m.out, prompt)
	}
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

// parseAmount 接受 "10.50" 與 "10,50" 兩種小數寫法。
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

// parseBirthDate 解析 DD-MM-YYYY；失敗時回傳預設日期與 false。
func parseBirthDate(s string) (time.Time, bool) {
	d, err := time.Parse(birthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return defaultBirthDate, false
	}
	return d, true
}

// lookupClient 讀取稅號並找出客戶；找不到時輸出 notFoundID 對應的訊息。
func (m *Menu) lookupClient(notFoundID string) (*bank.Individual, bool) {
	taxID, ok := m.readLine(i18n.T("prompt.holder_tax_id"))
	if !ok {
		return nil, false
	}
	c, err := m.bank.Client(taxID)
	if err != nil {
		m.println(i18n.T(notFoundID))
		return nil, false
	}
	return c, true
}

// selectAccount 只有一個帳戶時直接使用，多個帳戶時讓使用者選擇。
func (m *Menu) selectAccount(c *bank.Individual) (bank.Account, bool) {
	accts, err := m.bank.Accounts(c.TaxID)
	if err != nil {
		m.fail(err, nil)
		return nil, false
	}
	if len(accts) == 0 {
		m.println(i18n.T("error.no_accounts"))
		return nil, false
	}
	if len(accts) == 1 {
		return accts[0], true
	}

	m.println(i18n.T("account.select"))
	for i, a := range accts {
		m.println(fmt.Sprintf("%d. %s", i+1, a))
	}
	pick, ok := m.readLine(i18n.T("prompt.account_pick"))
	if !ok {
		return nil, false
	}
	idx, err := strconv.Atoi(pick)
	if err != nil {
		m.println(i18n.T("error.invalid_value"))
		return nil, false
	}
	if idx < 1 || idx > len(accts) {
		m.println(i18n.T("account.invalid_selection"))
		return nil, false
	}
	return accts[idx-1], true
}
