// internal/config/config.go

// Package config 以 Viper 讀取設定：預設值 → 設定檔 → 環境變數（BANK_ 前綴）→ 命令列旗標。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config 為應用程式設定。
type Config struct {
	Language string     `mapstructure:"language" yaml:"language"`
	Log      LogConfig  `mapstructure:"log" yaml:"log"`
	Bank     BankConfig `mapstructure:"bank" yaml:"bank"`
}

// LogConfig 控制日誌等級與輸出格式（text | json | logfmt）。
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Timestamps bool   `mapstructure:"timestamps" yaml:"timestamps"`
}

// BankConfig 為新開帳戶的參數。
type BankConfig struct {
	Agency         string `mapstructure:"agency" yaml:"agency"`
	OverdraftLimit string `mapstructure:"overdraft_limit" yaml:"overdraft_limit"`
	MaxWithdrawals int    `mapstructure:"max_withdrawals" yaml:"max_withdrawals"`
}

// Overdraft 解析透支額度；空字串視為 0。
func (b BankConfig) Overdraft() (decimal.Decimal, error) {
	s := strings.TrimSpace(b.OverdraftLimit)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid bank.overdraft_limit %q: %w", b.OverdraftLimit, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid bank.overdraft_limit %q: must not be negative", b.OverdraftLimit)
	}
	return d, nil
}

// Defaults 為所有設定鍵的預設值。
var Defaults = map[string]any{
	"language":             "en",
	"log.level":            "warn",
	"log.format":           "text",
	"log.timestamps":       false,
	"bank.agency":          "0001",
	"bank.overdraft_limit": "500",
	"bank.max_withdrawals": 3,
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Bank")
		default:
			configDir = "/etc/bank"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "bank")
	}
	return filepath.Join(configDir, "bank.yaml"), nil
}

// LoadConfig 依序套用預設值、設定檔、環境變數與 cmd 的旗標，再解析成 T。
// explicitPath 非 nil 時只讀取該檔案，且檔案不存在視為錯誤；
// 否則在使用者、系統與目前目錄尋找 bank.yaml，找不到則只用預設值。
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("bank")
	v.SetConfigType("yaml")
	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	} else {
		if p, err := GetConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		if p, err := GetConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.SetEnvPrefix("bank")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile 將設定寫成 YAML 到 path；path 為空時寫入使用者設定路徑。
func WriteConfigFile[T any](c *T, path string) (string, error) {
	if path == "" {
		p, err := GetConfigPath(false)
		if err != nil {
			return "", err
		}
		path = p
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
