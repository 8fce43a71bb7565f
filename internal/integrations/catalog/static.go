package catalog

import (
	"context"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Static каталог, заданный в конфигурации
type Static struct {
	services map[int64]domain.Service
}

// NewStatic создает каталог из списка услуг
func NewStatic(services []domain.Service) *Static {
	m := make(map[int64]domain.Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return &Static{services: m}
}

// GetService возвращает копию услуги
func (s *Static) GetService(_ context.Context, id int64) (*domain.Service, error) {
	service, ok := s.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &service, nil
}
