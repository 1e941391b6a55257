package repository

import (
	"github.com/reshetovitsme/bump-notifier/internal/modules/cache/domain"
)

// Repository defines the interface for novelty cache persistence
type Repository interface {
	Load() (*domain.Cache, error)
	Save(cache *domain.Cache) error
}
