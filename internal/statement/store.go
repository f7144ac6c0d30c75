// internal/statement/store.go
//
// 對帳單文件的寫入與讀取。
// 格式由副檔名決定：.json、.yaml / .yml；再加上 .zst 時以 zstd 壓縮。
// 寫入採「原子寫入」：先寫 .tmp 暫存檔，完成後以 rename() 取代正式檔案。

package statement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat 代表副檔名無法對應到任何支援的格式。
var ErrUnknownFormat = errors.New("unknown statement format")

const zstdExt = ".zst"

// formatOf 回傳路徑對應的格式（"json" / "yaml"）以及是否需要壓縮。
func formatOf(path string) (string, bool, error) {
	compressed := strings.HasSuffix(path, zstdExt)
	base := strings.TrimSuffix(path, zstdExt)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return "json", compressed, nil
	case ".yaml", ".yml":
		return "yaml", compressed, nil
	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Save 將文件寫入 path。
func Save(path string, doc Document) error {
	format, compressed, err := formatOf(path)
	if err != nil {
		return err
	}
	doc.Meta.Format = format
	if doc.Meta.GeneratedAt.IsZero() {
		doc.Meta.GeneratedAt = time.Now()
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := write(f, format, compressed, doc); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write statement: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, path)
}

func write(w io.Writer, format string, compressed bool, doc Document) error {
	if compressed {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := encode(zw, format, doc); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return encode(w, format, doc)
}

func encode(w io.Writer, format string, doc Document) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	// 使用縮排格式輸出，方便人類閱讀
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Load 讀取 path 的對帳單文件。
func Load(path string) (Document, error) {
	var doc Document
	format, compressed, err := formatOf(path)
	if err != nil {
		return doc, err
	}
	f, err := os.Open(path)
	if err != nil {
		return doc, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return doc, err
		}
		defer zr.Close()
		r = zr
	}

	if format == "yaml" {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return doc, fmt.Errorf("read statement %s: %w", path, err)
	}
	return doc, nil
}
