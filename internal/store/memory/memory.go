// Package memory is an in-process Store. Documents are kept BSON encoded so
// field matching and decoding behave as they do against MongoDB.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type collection struct {
	docs  map[string]bson.Raw
	order []string
}

var _ store.Store = (*Store)(nil)

// Store is a concurrency safe in-memory Store
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

// Clear removes every document
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*collection)
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]bson.Raw)}
		s.collections[name] = c
	}
	return c
}

func encode(doc any) (bson.Raw, error) {
	raw, err := store.Marshal(doc)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to encode document").
			Mark(ierr.ErrDatabase)
	}
	return raw, nil
}

func (s *Store) Insert(_ context.Context, name, id string, doc any) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	if _, exists := c.docs[id]; exists {
		return store.AlreadyExists(name, id)
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	return nil
}

func (s *Store) Get(_ context.Context, name, id string) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.coll(name).docs[id]
	if !ok {
		return nil, store.NotFound(name, id)
	}
	return copyRaw(raw), nil
}

func (s *Store) Replace(_ context.Context, name, id string, doc any) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	if _, ok := c.docs[id]; !ok {
		return store.NotFound(name, id)
	}
	c.docs[id] = raw
	return nil
}

func (s *Store) CompareAndSwap(_ context.Context, name, id string, expectedVersion int64, doc any) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	current, ok := c.docs[id]
	if !ok {
		return store.NotFound(name, id)
	}
	version, ok := current.Lookup(store.VersionField).AsInt64OK()
	if !ok || version != expectedVersion {
		return store.VersionConflict(name, id, expectedVersion)
	}
	c.docs[id] = raw
	return nil
}

func (s *Store) Upsert(_ context.Context, name, id string, doc any) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = raw
	return nil
}

func (s *Store) Delete(_ context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	if _, ok := c.docs[id]; !ok {
		return store.NotFound(name, id)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Find(_ context.Context, name string, filter store.Filter, opts *store.FindOptions) ([]bson.Raw, error) {
	conditions, err := compile(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	c := s.coll(name)
	matched := make([]bson.Raw, 0)
	for _, id := range c.order {
		raw := c.docs[id]
		if matches(raw, conditions) {
			matched = append(matched, copyRaw(raw))
		}
	}
	s.mu.RUnlock()

	if opts == nil {
		return matched, nil
	}
	if opts.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i].Lookup(opts.SortBy), matched[j].Lookup(opts.SortBy))
			if opts.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (s *Store) Count(ctx context.Context, name string, filter store.Filter) (int64, error) {
	docs, err := s.Find(ctx, name, filter, nil)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

// condition is one compiled filter field
type condition struct {
	key    string
	values []bson.RawValue
	null   bool
}

func compile(filter store.Filter) ([]condition, error) {
	conditions := make([]condition, 0, len(filter))
	for key, value := range filter {
		cond := condition{key: key}
		var members []any
		switch v := value.(type) {
		case nil:
			cond.null = true
		case store.Set:
			members = v.Values
		default:
			members = []any{v}
		}
		for _, m := range members {
			t, data, err := bson.MarshalValueWithRegistry(store.Registry, m)
			if err != nil {
				return nil, ierr.WithError(err).
					WithMessage("failed to encode filter value").
					WithReportableDetails(map[string]any{"field": key}).
					Mark(ierr.ErrValidation)
			}
			cond.values = append(cond.values, bson.RawValue{Type: t, Value: data})
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func matches(raw bson.Raw, conditions []condition) bool {
	for _, cond := range conditions {
		field := raw.Lookup(cond.key)
		if cond.null {
			if field.Type != 0 && field.Type != bsontype.Null {
				return false
			}
			continue
		}
		found := false
		for _, v := range cond.values {
			if equalValues(field, v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// equalValues treats the integer and double encodings of the same number as equal
func equalValues(a, b bson.RawValue) bool {
	if a.Type == b.Type {
		return a.Equal(b)
	}
	af, aok := number(a)
	bf, bok := number(b)
	return aok && bok && af == bf
}

func number(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Double:
		return v.Double(), true
	}
	return 0, false
}

// compareValues orders missing fields first, then numbers, strings, booleans and dates
func compareValues(a, b bson.RawValue) int {
	if an, ok := number(a); ok {
		if bn, ok := number(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			return 0
		}
	}
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	switch a.Type {
	case bsontype.String:
		return compareStrings(a.StringValue(), b.StringValue())
	case bsontype.DateTime:
		return compareInts(a.DateTime(), b.DateTime())
	case bsontype.Boolean:
		ab, bb := a.Boolean(), b.Boolean()
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Value, b.Value)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func copyRaw(raw bson.Raw) bson.Raw {
	out := make(bson.Raw, len(raw))
	copy(out, raw)
	return out
}
