// Пакет testsupport — in-memory фейки для юнит-тестов.
package testsupport

import (
	"context"
	"errors"
	"sync"
)

var ErrCacheDown = errors.New("cache down")

// FakeCache — map-реализация domain.Cache с журналом вызовов
// и переключателями отказов (эмуляция недоступного Redis).
type FakeCache struct {
	mu   sync.Mutex
	Data map[string][]byte

	Gets []string
	Sets []string
	Dels []string

	FailGet bool
	FailSet bool
	FailDel bool
}

func NewFakeCache() *FakeCache {
	return &FakeCache{Data: make(map[string][]byte)}
}

func (c *FakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets = append(c.Gets, key)
	if c.FailGet {
		return nil, ErrCacheDown
	}
	b, ok := c.Data[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (c *FakeCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets = append(c.Sets, key)
	if c.FailSet {
		return ErrCacheDown
	}
	c.Data[key] = val
	return nil
}

func (c *FakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Dels = append(c.Dels, keys...)
	if c.FailDel {
		return ErrCacheDown
	}
	for _, k := range keys {
		delete(c.Data, k)
	}
	return nil
}

func (c *FakeCache) SetNX(_ context.Context, key string, val []byte, _ int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Data[key]; ok {
		return false, nil
	}
	c.Data[key] = val
	return true, nil
}

func (c *FakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Data[key]
	return ok, nil
}

func (c *FakeCache) Ping(context.Context) error { return nil }
func (c *FakeCache) Close()                     {}

// Has — есть ли ключ в кэше (для ассертов).
func (c *FakeCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Data[key]
	return ok
}
