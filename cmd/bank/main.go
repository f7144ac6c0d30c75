// cmd/bank/main.go

// 本程式是帳本的命令列入口：讀取設定、初始化 logging 與多語系，
// 建立 Bank 並以互動式選單在 stdin/stdout 上運作。
// 另外提供 inspect（檢視匯出的對帳單）、version 與 config write 子命令。

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ledger/internal/bank"
	"ledger/internal/config"
	"ledger/internal/i18n"
	"ledger/internal/logging"
	"ledger/internal/menu"
	"ledger/internal/statement"
)

var version = "dev" // 由 linker 設定

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

// NewRootCmd 建立根命令；測試時每次建立新的實例以互相隔離。
// --config 的值只由這個實例的命令共用。
func NewRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:           "bank",
		Short:         "In-memory account ledger with an interactive menu",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          menuRunner(&cfgFile),
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the user config dir bank/bank.yaml)")
	cmd.PersistentFlags().String("language", "en", `menu language ("en", "pt-BR")`)
	cmd.PersistentFlags().String("log.level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log.format", "text", "log format (text, json, logfmt)")

	cmd.AddCommand(newMenuCmd(&cfgFile))
	cmd.AddCommand(newInspectCmd(&cfgFile))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(&cfgFile))
	return cmd
}

func newMenuCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  menuRunner(cfgFile),
	}
}

func newInspectCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print an exported statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(cmd, cfgFile); err != nil {
				return err
			}
			doc, err := statement.Load(args[0])
			if err != nil {
				return fmt.Errorf("read statement %s: %w", args[0], err)
			}
			if doc.Meta.Version != statement.Version {
				logging.Warnf("statement %s has version %d, expected %d", args[0], doc.Meta.Version, statement.Version)
			}
			printDocument(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newConfigCmd(cfgFile *string) *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	cfg.AddCommand(&cobra.Command{
		Use:   "write [path]",
		Short: "Write the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadConfig[config.Config](cmd, config.Defaults, cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logging.Setup(cmd.ErrOrStderr(), c.Log)
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			written, err := config.WriteConfigFile(&c, path)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			logging.Infof("configuration written to %s", written)
			fmt.Fprintln(cmd.OutOrStdout(), written)
			return nil
		},
	})
	return cfg
}

// menuRunner 建立 Bank 並執行選單；輸入來自終端機時才顯示提示。
func menuRunner(cfgFile *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		b, err := setup(cmd, cfgFile)
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		m := menu.New(b, in, cmd.OutOrStdout(),
			menu.WithPrompts(isTerminal(in)),
			menu.WithLogger(logging.L),
		)
		logging.Debugf("menu started (language %s)", i18n.Lang())
		if err := m.Run(); err != nil {
			return err
		}
		logging.Infof("menu session ended: %d clients, %d accounts", len(b.Clients()), b.AccountCount())
		return nil
	}
}

// setup 讀取設定並初始化多語系、logging 與 Bank。
func setup(cmd *cobra.Command, cfgFile *string) (*bank.Bank, error) {
	c, err := config.LoadConfig[config.Config](cmd, config.Defaults, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(cmd.ErrOrStderr(), c.Log)
	if err := i18n.Init(c.Language); err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	overdraft, err := c.Bank.Overdraft()
	if err != nil {
		return nil, err
	}
	logging.Debugf("config loaded: agency=%s overdraft=%s max_withdrawals=%d",
		c.Bank.Agency, overdraft, c.Bank.MaxWithdrawals)

	return bank.NewBank(
		bank.WithLogger(logger),
		bank.WithAccountOptions(
			bank.WithAgency(c.Bank.Agency),
			bank.WithOverdraftLimit(overdraft),
			bank.WithMaxWithdrawals(c.Bank.MaxWithdrawals),
		),
	), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printDocument(w io.Writer, doc statement.Document) {
	fmt.Fprintln(w, i18n.T("statement.header", doc.Account.Number))
	fmt.Fprintln(w, i18n.T("statement.holder", doc.Account.Holder))
	for _, line := range doc.Lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, "---------------------------------")
	fmt.Fprintln(w, i18n.T("statement.balance", bank.FormatMoney(doc.Account.Balance)))
	if doc.Account.OverdraftLimit != nil {
		fmt.Fprintln(w, i18n.T("statement.overdraft", bank.FormatMoney(*doc.Account.OverdraftLimit)))
	}
	if doc.Account.Available != nil {
		fmt.Fprintln(w, i18n.T("statement.available", bank.FormatMoney(*doc.Account.Available)))
	}
}
