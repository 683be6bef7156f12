// Package store is the persistence port for workpaper documents. Documents
// are JSON, keyed "<namespace>-<taxYear>", with additive-only schema
// evolution: loaders tolerate unknown fields and default missing ones. The
// engine never touches storage directly; callers inject a Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document namespaces.
const (
	NamespacePool    = "lvp"
	NamespaceRecords = "records"
	NamespaceClaims  = "claims"
)

// ErrNotFound reports that no document exists under a key.
var ErrNotFound = errors.New("document not found")

// Store persists serialized workpaper documents.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// LoadJSON loads and decodes the document under key.
func LoadJSON[T any](ctx context.Context, s Store, key string, out *T) error {
	doc, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("decoding document %s: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and saves it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", key, err)
	}
	return s.Save(ctx, key, doc)
}
