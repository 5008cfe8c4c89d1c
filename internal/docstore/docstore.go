// Package docstore persists keyed JSON-like documents in a remote store and
// streams whole-collection snapshots back to the caller.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Document is anything stored under its own business id.
type Document interface {
	DocumentID() string
}

// Collection is one named collection of documents.
//
// Writes never touch any local cache. Callers observe the effect of a write
// only through the next snapshot delivered to Watch.
type Collection[T Document] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Set creates or overwrites the document stored under doc.DocumentID().
	Set(ctx context.Context, doc T) error
	// Merge overwrites only the named top-level fields of an existing document.
	Merge(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// SetAll replaces the whole collection with docs.
	SetAll(ctx context.Context, docs []T) error
	// Watch delivers the full ordered list on start and after every change
	// until ctx is done. Listener failures go to onError; Watch then returns.
	Watch(ctx context.Context, onChange func([]T), onError func(error)) error
}
