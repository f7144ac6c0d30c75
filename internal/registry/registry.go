// internal/registry/registry.go

// Package registry 提供以鍵值查找的登錄表，取代程式內的全域清單。
// 登錄表由呼叫端建立並注入，沒有任何套件層級的單例。
package registry

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound 代表鍵值不存在。
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey 代表鍵值已被使用。
	ErrDuplicateKey = errors.New("duplicate key")
)

// Registry 為執行緒安全的鍵值表，並保留插入順序。
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// New 建立空白登錄表。
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{items: make(map[K]V)}
}

// Insert 以 key 加入 v；key 已存在時回傳 ErrDuplicateKey 且不覆寫。
func (r *Registry[K, V]) Insert(key K, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	r.items[key] = v
	r.order = append(r.order, key)
	return nil
}

// FindByKey 依 key 取得值；不存在時回傳 ErrNotFound。
func (r *Registry[K, V]) FindByKey(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return v, nil
}

// Exists 回報 key 是否已登錄。
func (r *Registry[K, V]) Exists(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[key]
	return ok
}

func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Values 依插入順序回傳所有值。
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]V, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.items[k])
	}
	return out
}
