package repository

import (
	"github.com/reshetovitsme/bump-notifier/internal/modules/history/domain"
)

// Repository defines the interface for announcement history persistence
type Repository interface {
	SaveAnnouncement(announcement *domain.Announcement) error
	GetAnnouncements(limit int) ([]*domain.Announcement, error)
}
