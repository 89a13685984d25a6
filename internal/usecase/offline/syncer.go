// Package offline replays writes that were queued while the remote store was
// unreachable.
package offline

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"sync"
	"time"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Applier interface {
	Apply(ctx context.Context, w *pendingwrite.Write) error
}

type Failure struct {
	ID    uuid.UUID
	Kind  pendingwrite.Kind
	Error string
}

type DrainResult struct {
	Attempted    int
	Applied      int
	Dropped      int
	DeadLettered int
	Failures     []Failure
}

type SyncService interface {
	Drain(ctx context.Context) (*DrainResult, error)
	Pending(ctx context.Context) ([]*pendingwrite.Write, error)
	DeadLetters(ctx context.Context) ([]*pendingwrite.Write, error)
	RequeueDeadLetters(ctx context.Context) (int, error)
}

var ErrSyncerClosed = errs.New("syncer is shut down")

// Syncer drains the offline queue. Concurrent Drain calls share one pass.
// A pass runs on the syncer's own context: a caller that gives up stops
// waiting for it but does not interrupt it. Only Shutdown cancels a pass.
type Syncer struct {
	queue     shared.PendingQueue
	applier   Applier
	policy    pendingwrite.FailurePolicy
	retryBase time.Duration
	logger    *slog.Logger
	group     singleflight.Group

	base   context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	passes sync.WaitGroup
}

func NewSyncer(queue shared.PendingQueue, applier Applier, cfg config.Config, logger *slog.Logger) (*Syncer, error) {
	policy, err := pendingwrite.ParseFailurePolicy(cfg.Queue.OnDrainFailure)
	if err != nil {
		return nil, err
	}
	base, cancel := context.WithCancel(context.Background())
	return &Syncer{
		queue:     queue,
		applier:   applier,
		policy:    policy,
		retryBase: cfg.Queue.RetryBaseDelay,
		logger:    logger,
		base:      base,
		cancel:    cancel,
	}, nil
}

func (s *Syncer) Drain(ctx context.Context) (*DrainResult, error) {
	ch := s.group.DoChan("drain", s.runPass)
	select {
	case r := <-ch:
		if r.Shared {
			s.logger.Debug("Joined in-flight drain")
		}
		res, _ := r.Val.(*DrainResult)
		return res, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown interrupts a running pass and waits for its bookkeeping to land.
// Writes the pass had not finished stay queued.
func (s *Syncer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.passes.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Syncer) runPass() (any, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSyncerClosed
	}
	s.passes.Add(1)
	s.mu.Unlock()
	defer s.passes.Done()

	return s.drain(s.base)
}

func (s *Syncer) Pending(ctx context.Context) ([]*pendingwrite.Write, error) {
	return s.queue.Pending(ctx)
}

func (s *Syncer) DeadLetters(ctx context.Context) ([]*pendingwrite.Write, error) {
	return s.queue.DeadLetters(ctx)
}

func (s *Syncer) RequeueDeadLetters(ctx context.Context) (int, error) {
	return s.queue.RequeueDeadLetters(ctx)
}

// drain replays the writes present when it starts. Writes enqueued while it
// runs stay for the next pass.
func (s *Syncer) drain(ctx context.Context) (*DrainResult, error) {
	writes, err := s.queue.Pending(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load pending writes")
	}
	res := &DrainResult{}
	if len(writes) == 0 {
		return res, nil
	}

	s.logger.Info("Replaying queued writes",
		slog.Int("count", len(writes)),
		slog.String("on_failure", s.policy.String()))

	var (
		done []uuid.UUID
		dead []*pendingwrite.Write
	)
	for _, w := range writes {
		if ctx.Err() != nil {
			break
		}
		err := s.apply(ctx, w)
		if err != nil && interrupted(ctx, err) {
			// The write never got a verdict from the store, so it stays queued.
			s.logger.Warn("Replay interrupted, keeping write queued",
				slog.String("id", w.ID.String()),
				slog.String("kind", w.Kind.String()))
			break
		}
		res.Attempted++
		done = append(done, w.ID)
		if err == nil {
			res.Applied++
			continue
		}

		s.logger.Warn("Failed to replay queued write",
			slog.String("id", w.ID.String()),
			slog.String("kind", w.Kind.String()),
			slog.Int("attempts", w.Attempts),
			slog.String("error", err.Error()))
		res.Failures = append(res.Failures, Failure{ID: w.ID, Kind: w.Kind, Error: err.Error()})

		if s.policy.Mode == pendingwrite.FailureRetain {
			dead = append(dead, w)
			res.DeadLettered++
		} else {
			res.Dropped++
		}
	}

	// Bookkeeping must land even if the pass was cancelled midway.
	bookkeeping := context.WithoutCancel(ctx)
	if err := s.queue.DeadLetter(bookkeeping, dead); err != nil {
		return res, errs.Wrap(err, "failed to store dead letters")
	}
	if err := s.queue.Remove(bookkeeping, done); err != nil {
		return res, errs.Wrap(err, "failed to remove replayed writes")
	}

	s.logger.Info("Replay finished",
		slog.Int("applied", res.Applied),
		slog.Int("dropped", res.Dropped),
		slog.Int("dead_lettered", res.DeadLettered))
	return res, ctx.Err()
}

// apply runs one write, retrying remote failures when the policy allows it.
func (s *Syncer) apply(ctx context.Context, w *pendingwrite.Write) error {
	retries := 0
	if s.policy.Mode == pendingwrite.FailureRetry {
		retries = s.policy.MaxRetries
	}

	for attempt := 0; ; attempt++ {
		err := s.applier.Apply(ctx, w)
		if err == nil {
			return nil
		}
		w.RecordFailure(err)
		if attempt >= retries || !errs.Is(err, errs.ErrRemoteFailure) {
			return err
		}

		wait := calculateBackoff(attempt, s.retryBase)
		s.logger.Warn("Retrying queued write",
			slog.String("id", w.ID.String()),
			slog.Int("attempt", attempt+1),
			slog.Int64("wait_ms", wait.Milliseconds()),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errs.Is(err, context.Canceled)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to 63 bits above
	return int64(uval) % n
}
