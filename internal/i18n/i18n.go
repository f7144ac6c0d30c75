// internal/i18n/i18n.go

// Package i18n 載入內嵌的翻譯檔（locales/*.yaml），提供選單文字的多語系支援。
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	lang      string
	localizer *i18n.Localizer
)

// Init 建立翻譯 bundle 並切換到 lang；未知語言退回英文。
// 內嵌翻譯檔無法讀取或解析時回傳錯誤，且不變更目前語言。
func Init(l string) error {
	bundle, err := loadBundle(localeFS, "locales")
	if err != nil {
		return err
	}

	mu.Lock()
	lang = l
	localizer = i18n.NewLocalizer(bundle, l, language.English.String())
	mu.Unlock()
	return nil
}

// loadBundle 解析 dir 下所有翻譯檔。
func loadBundle(fsys fs.FS, dir string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
	}
	return bundle, nil
}

// Lang 回傳目前語言。
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T 翻譯 messageID；若帶有參數，翻譯結果會當作 fmt 格式字串。
// 找不到訊息時回傳 messageID 本身。
func T(messageID string, args ...any) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		if err := Init("en"); err != nil {
			return messageID
		}
		mu.RLock()
		loc = localizer
		mu.RUnlock()
	}

	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
