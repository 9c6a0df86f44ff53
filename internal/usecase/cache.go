package usecase

import (
	"context"
	"strconv"
	"time"

	"jobboard/internal/domain/event"
)

// Cache stores read models. A nil or unreachable cache behaves as a miss.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher fans domain events out to connected clients. Publish must
// not block the caller.
type EventPublisher interface {
	Publish(ev event.Event)
}

const openJobsCacheKey = "jobs:open"

func jobCacheKey(id int64) string {
	return "jobs:item:" + strconv.FormatInt(id, 10)
}
