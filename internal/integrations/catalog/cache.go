package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Cached кэширует ответы источника в LRU с TTL. Отсутствующие услуги не кэшируются
type Cached struct {
	source Source
	cache  *expirable.LRU[int64, domain.Service]
	log    Logger
}

// NewCached оборачивает источник кэшем
func NewCached(source Source, size int, ttl time.Duration, log Logger) *Cached {
	return &Cached{
		source: source,
		cache:  expirable.NewLRU[int64, domain.Service](size, nil, ttl),
		log:    log,
	}
}

// GetService возвращает услугу из кэша или источника
func (c *Cached) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	if service, ok := c.cache.Get(id); ok {
		c.log.Debug("Catalog cache hit: service id=%d", id)
		return &service, nil
	}

	service, err := c.source.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.Add(id, *service)
	return service, nil
}

// Invalidate удаляет услугу из кэша
func (c *Cached) Invalidate(id int64) {
	c.cache.Remove(id)
}
