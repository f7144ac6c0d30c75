// cmd/bank/main_test.go

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledger/internal/bank"
	"ledger/internal/config"
	"ledger/internal/statement"
)

// isolate 讓設定檔搜尋只看到暫存目錄。
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	return tmp
}

// execute 以新的根命令執行 args，回傳 stdout 與 stderr。
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"menu": false, "inspect": false, "version": false, "config": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
	for _, f := range []string{"config", "language", "log.level", "log.format"} {
		if root.PersistentFlags().Lookup(f) == nil {
			t.Fatalf("flag --%s missing", f)
		}
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("version output=%q", out)
	}
}

func TestMenu_QuitsAndLocalizes(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "0\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Thank you for using the system!") {
		t.Fatalf("output=%s", out)
	}
	if strings.Contains(out, "Choose an option: ") {
		t.Fatalf("prompts should be off for non-terminal input")
	}

	out, _, err = execute(t, "0\n", "menu", "--language", "pt-BR")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Obrigado por usar o sistema!") {
		t.Fatalf("output=%s", out)
	}
}

func TestMenu_AppliesBankConfig(t *testing.T) {
	tmp := isolate(t)
	path := filepath.Join(tmp, "custom.yaml")
	c := config.Config{Language: "en"}
	c.Log.Level = "debug"
	c.Bank.Agency = "0042"
	c.Bank.OverdraftLimit = "0"
	c.Bank.MaxWithdrawals = 1
	if _, err := config.WriteConfigFile(&c, path); err != nil {
		t.Fatal(err)
	}

	script := strings.Join([]string{
		"1", "11111111111", "Ana", "01-01-1990", "Rua A",
		"2", "11111111111",
		"3", "11111111111",
		"4", "11111111111", "100",
		"5", "11111111111", "150",
		"5", "11111111111", "10",
		"5", "11111111111", "10",
		"0",
	}, "\n") + "\n"

	out, logs, err := execute(t, script, "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Agency: 0042 | Account: 1 | Holder: Ana",
		"Available: R$ 100.00",
		"Withdrawal completed successfully.",
		"Error: limit of 1 withdrawals reached.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(logs, "account opened") {
		t.Fatalf("debug logs not written to stderr:\n%s", logs)
	}
	if !strings.Contains(logs, "menu session ended: 1 clients, 1 accounts") {
		t.Fatalf("session summary missing:\n%s", logs)
	}
}

func TestMenu_MissingConfigFile(t *testing.T) {
	tmp := isolate(t)
	if _, _, err := execute(t, "0\n", "--config", filepath.Join(tmp, "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

// 各根命令的 --config 互不影響。
func TestRootCmd_ConfigFlagIsPerInstance(t *testing.T) {
	tmp := isolate(t)

	first, second := NewRootCmd(), NewRootCmd()
	var out bytes.Buffer
	first.SetIn(strings.NewReader("0\n"))
	first.SetOut(&out)
	first.SetErr(&out)
	first.SetArgs([]string{"--config", filepath.Join(tmp, "nope.yaml")})
	if err := first.Execute(); err == nil {
		t.Fatalf("first root: expected error for missing config file")
	}

	out.Reset()
	second.SetIn(strings.NewReader("0\n"))
	second.SetOut(&out)
	second.SetErr(&out)
	second.SetArgs([]string{})
	if err := second.Execute(); err != nil {
		t.Fatalf("second root picked up the first root's --config: %v", err)
	}
}

func writeStatement(t *testing.T, path string, version int) {
	t.Helper()
	b := bank.NewBank()
	if _, err := b.RegisterIndividual(bank.IndividualInput{TaxID: "11111111111", LegalName: "Ana"}); err != nil {
		t.Fatal(err)
	}
	a, err := b.OpenCheckingAccount("11111111111")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Deposit(a.Number(), decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	st, err := b.Statement(a.Number())
	if err != nil {
		t.Fatal(err)
	}
	doc := statement.FromStatement(st)
	doc.Meta.Version = version
	if err := statement.Save(path, doc); err != nil {
		t.Fatal(err)
	}
}

func TestInspect_WarnsOnVersionMismatch(t *testing.T) {
	tmp := isolate(t)
	path := filepath.Join(tmp, "old.json")
	writeStatement(t, path, statement.Version+1)

	out, logs, err := execute(t, "", "inspect", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Holder: Ana") {
		t.Fatalf("output=%s", out)
	}
	if !strings.Contains(logs, "expected 1") {
		t.Fatalf("version warning missing:\n%s", logs)
	}

	current := filepath.Join(tmp, "current.json")
	writeStatement(t, current, statement.Version)
	if _, logs, err := execute(t, "", "inspect", current); err != nil || strings.Contains(logs, "expected") {
		t.Fatalf("unexpected warning for current version: err=%v logs=%s", err, logs)
	}
}

func TestInspect(t *testing.T) {
	tmp := isolate(t)

	b := bank.NewBank()
	if _, err := b.RegisterIndividual(bank.IndividualInput{TaxID: "11111111111", LegalName: "Ana"}); err != nil {
		t.Fatal(err)
	}
	a, err := b.OpenCheckingAccount("11111111111")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Deposit(a.Number(), decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	st, err := b.Statement(a.Number())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmp, "st.json.zst")
	if err := statement.Save(path, statement.FromStatement(st)); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "inspect", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"--- Statement for account 1 ---",
		"Holder: Ana",
		"[+] Deposit:    R$ 100.00",
		"Current balance:  R$ 100.00",
		"Total available:  R$ 600.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, "", "inspect", filepath.Join(tmp, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfigWrite(t *testing.T) {
	tmp := isolate(t)
	path := filepath.Join(tmp, "out", "bank.yaml")

	out, _, err := execute(t, "", "config", "write", path, "--language", "pt-BR")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("output=%q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	c, err := config.LoadConfig[config.Config](nil, config.Defaults, &path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Language != "pt-BR" || c.Bank.MaxWithdrawals != 3 {
		t.Fatalf("written config=%+v", c)
	}
}
