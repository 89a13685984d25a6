// Package offlinequeue persists pending writes in the scratchpad, one list
// per kind, and replays them in global enqueue order.
package offlinequeue

import (
	"cmp"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/infra/scratchpad"
	"meetroom/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	seqKey        = "offlineQueueSeq"
	deadLetterKey = "offlineDeadLetters"
)

// Queue is safe for concurrent use within one process. Two processes sharing
// one scratchpad can still interleave read-modify-write cycles.
type Queue struct {
	kv     scratchpad.KV
	mu     sync.Mutex
	logger *slog.Logger
}

func New(kv scratchpad.KV, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{kv: kv, logger: logger}
}

// Enqueue assigns the next sequence number to w and appends it to its kind's list.
func (q *Queue) Enqueue(ctx context.Context, w *pendingwrite.Write) error {
	if !w.Kind.IsValid() {
		return pendingwrite.ErrUnknownKind
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	seq, err := q.nextSeq(ctx)
	if err != nil {
		return err
	}
	w.Seq = seq

	list, err := q.load(ctx, w.Kind.StorageKey())
	if err != nil {
		return err
	}
	if err := q.save(ctx, w.Kind.StorageKey(), append(list, w)); err != nil {
		return err
	}

	q.logger.Info("Queued write for later replay",
		slog.String("id", w.ID.String()),
		slog.String("kind", w.Kind.String()),
		slog.Int64("seq", seq))
	return nil
}

// Pending returns every queued write across kinds, oldest first.
func (q *Queue) Pending(ctx context.Context) ([]*pendingwrite.Write, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var all []*pendingwrite.Write
	for _, kind := range pendingwrite.Kinds() {
		list, err := q.load(ctx, kind.StorageKey())
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	slices.SortStableFunc(all, func(a, b *pendingwrite.Write) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return all, nil
}

// Remove drops the given writes. Lists that become empty are deleted.
func (q *Queue) Remove(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, kind := range pendingwrite.Kinds() {
		key := kind.StorageKey()
		list, err := q.load(ctx, key)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(slices.Clone(list), func(w *pendingwrite.Write) bool {
			return slices.Contains(ids, w.ID)
		})
		if len(kept) == len(list) {
			continue
		}
		if err := q.save(ctx, key, kept); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) DeadLetter(ctx context.Context, writes []*pendingwrite.Write) error {
	if len(writes) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	list, err := q.load(ctx, deadLetterKey)
	if err != nil {
		return err
	}
	return q.save(ctx, deadLetterKey, append(list, writes...))
}

func (q *Queue) DeadLetters(ctx context.Context) ([]*pendingwrite.Write, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx, deadLetterKey)
}

// RequeueDeadLetters moves every dead letter back to the tail of the queue.
func (q *Queue) RequeueDeadLetters(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	dead, err := q.load(ctx, deadLetterKey)
	if err != nil || len(dead) == 0 {
		return 0, err
	}

	for _, w := range dead {
		seq, err := q.nextSeq(ctx)
		if err != nil {
			return 0, err
		}
		w.Seq = seq
		list, err := q.load(ctx, w.Kind.StorageKey())
		if err != nil {
			return 0, err
		}
		if err := q.save(ctx, w.Kind.StorageKey(), append(list, w)); err != nil {
			return 0, err
		}
	}
	if err := q.kv.Delete(ctx, deadLetterKey); err != nil {
		return 0, errs.Wrap(err, "failed to clear dead letters")
	}
	return len(dead), nil
}

func (q *Queue) nextSeq(ctx context.Context) (int64, error) {
	var current int64
	raw, err := q.kv.Get(ctx, seqKey)
	switch {
	case errs.Is(err, scratchpad.ErrNotFound):
	case err != nil:
		return 0, errs.Wrap(err, "failed to read queue sequence")
	default:
		current, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errs.Wrapf(err, "corrupt queue sequence %q", raw)
		}
	}

	next := current + 1
	if err := q.kv.Set(ctx, seqKey, strconv.FormatInt(next, 10)); err != nil {
		return 0, errs.Wrap(err, "failed to write queue sequence")
	}
	return next, nil
}

func (q *Queue) load(ctx context.Context, key string) ([]*pendingwrite.Write, error) {
	raw, err := q.kv.Get(ctx, key)
	if errs.Is(err, scratchpad.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read %s", key)
	}

	var list []*pendingwrite.Write
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, errs.Wrapf(err, "corrupt queue list %s", key)
	}
	return list, nil
}

func (q *Queue) save(ctx context.Context, key string, list []*pendingwrite.Write) error {
	if len(list) == 0 {
		if err := q.kv.Delete(ctx, key); err != nil {
			return errs.Wrapf(err, "failed to clear %s", key)
		}
		return nil
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return errs.Wrapf(err, "failed to encode %s", key)
	}
	if err := q.kv.Set(ctx, key, string(raw)); err != nil {
		return errs.Wrapf(err, "failed to write %s", key)
	}
	return nil
}
