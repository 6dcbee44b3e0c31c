package store

import (
	"context"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// Collection is a typed view over one collection of a Store
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](s Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T) error {
	return c.store.Insert(ctx, c.name, id, doc)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	raw, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(raw)
}

func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	return c.store.Replace(ctx, c.name, id, doc)
}

func (c *Collection[T]) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, doc *T) error {
	return c.store.CompareAndSwap(ctx, c.name, id, expectedVersion, doc)
}

func (c *Collection[T]) Upsert(ctx context.Context, id string, doc *T) error {
	return c.store.Upsert(ctx, c.name, id, doc)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) Find(ctx context.Context, filter Filter, opts *FindOptions) ([]*T, error) {
	raws, err := c.store.Find(ctx, c.name, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// FindOne returns the first match or ErrNotFound
func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	docs, err := c.Find(ctx, filter, &FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ierr.NewError("document not found").
			WithHint("The requested record was not found").
			WithReportableDetails(map[string]any{"collection": c.name}).
			Mark(ierr.ErrNotFound)
	}
	return docs[0], nil
}

func (c *Collection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	return c.store.Count(ctx, c.name, filter)
}

func (c *Collection[T]) decode(raw bson.Raw) (*T, error) {
	var doc T
	if err := Unmarshal(raw, &doc); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to decode document").
			WithReportableDetails(map[string]any{"collection": c.name}).
			Mark(ierr.ErrDatabase)
	}
	return &doc, nil
}
