package docstore

import (
	"cmp"
	"context"
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"meetroom/internal/pkg/errs"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. SetReachable(false) makes
// every call fail with ErrUnavailable, which is how tests and local runs
// simulate losing the remote store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
	unreachable atomic.Bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryStore) SetReachable(ok bool) {
	s.unreachable.Store(!ok)
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return s.check(ctx)
}

func (s *MemoryStore) Get(ctx context.Context, collection string, q *Query) (Snapshot, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := s.collections[collection]
	snap := make(Snapshot, 0, len(docs))
	for _, key := range slices.Sorted(maps.Keys(docs)) {
		snap = append(snap, Document{Key: key, Value: slices.Clone(docs[key])})
	}
	s.mu.RUnlock()

	if q == nil || q.OrderBy == "" {
		return snap, nil
	}

	var want any
	if q.EqualTo != nil {
		normalized, err := normalize(q.EqualTo)
		if err != nil {
			return nil, err
		}
		want = normalized
	}

	type entry struct {
		doc   Document
		field any
	}
	entries := make([]entry, 0, len(snap))
	for _, d := range snap {
		field := childField(d.Value, q.OrderBy)
		if q.EqualTo != nil && !reflect.DeepEqual(field, want) {
			continue
		}
		entries = append(entries, entry{doc: d, field: field})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return compareValues(a.field, b.field)
	})

	out := make(Snapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.doc)
	}
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, docPath string, value any) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "failed to encode document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, key, raw)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, docPath string, fields map[string]any) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[collection][key]
	if !ok {
		return errs.Wrapf(ErrNotFound, "%s", docPath)
	}
	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return errs.Wrap(err, "failed to decode stored document")
	}
	maps.Copy(doc, fields)
	raw, err := json.Marshal(doc)
	if err != nil {
		return errs.Wrap(err, "failed to encode document")
	}
	s.put(collection, key, raw)
	return nil
}

func (s *MemoryStore) Push(ctx context.Context, collection string, value any) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	if err := validCollection(collection); err != nil {
		return "", err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", errs.Wrap(err, "failed to encode document")
	}
	key := uuid.Must(uuid.NewV7()).String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, key, raw)
	return key, nil
}

func (s *MemoryStore) Remove(ctx context.Context, docPath string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], key)
	return nil
}

func (s *MemoryStore) put(collection, key string, raw json.RawMessage) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	docs[key] = raw
}

func (s *MemoryStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.unreachable.Load() {
		return ErrUnavailable
	}
	return nil
}

func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode query value")
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Wrap(err, "failed to decode query value")
	}
	return out, nil
}

func childField(raw json.RawMessage, field string) any {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc[field]
}

// compareValues orders missing < booleans < numbers < strings < everything else.
func compareValues(a, b any) int {
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	switch av := a.(type) {
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64:
		return cmp.Compare(av, b.(float64))
	case string:
		return cmp.Compare(av, b.(string))
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}
