// Package scratchpad is the local durable key-value area that survives
// restarts and remote-store outages.
package scratchpad

import (
	"context"

	"meetroom/internal/pkg/errs"
)

var ErrNotFound = errs.New("scratchpad key not found")

type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
