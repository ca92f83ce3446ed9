// Package kv is the string key/value persistence port shared by every module.
// Values are JSON documents; the shapes are owned by the module adapters.
package kv

import (
	"context"
	"fmt"
	"strings"
)

// Store is a synchronous string key/value store.
// Get reports ok=false when the key has never been written or was removed.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Namespaced prefixes every key so several profiles can share one backend.
type Namespaced struct {
	prefix string
	inner  Store
}

func NewNamespaced(namespace string, inner Store) Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return inner
	}
	return Namespaced{prefix: namespace + ":", inner: inner}
}

func (n Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("kv key is required")
	}
	return nil
}
