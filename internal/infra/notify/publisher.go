// Package notify announces room occupancy changes to other systems.
package notify

import (
	"context"

	"meetroom/internal/domain/room"
)

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOccupancy(context.Context, *room.Room) error { return nil }
