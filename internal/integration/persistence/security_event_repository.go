// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
	"github.com/dbooster/trustd/internal/integration/persistence/model"
)

// securityEventRepository implements the adapter.SecurityEventRepository
// interface.
type securityEventRepository struct {
	db *gorm.DB
}

// NewSecurityEventRepository creates a new security event repository instance.
func NewSecurityEventRepository(db *gorm.DB) adapter.SecurityEventRepository {
	return &securityEventRepository{
		db: db,
	}
}

// Save persists a security event.
func (r *securityEventRepository) Save(ctx context.Context, event *entity.SecurityEvent) error {
	eventModel := model.FromEntity(event)
	result := r.db.WithContext(ctx).Create(eventModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindRecent retrieves events recorded at or after the given time, newest
// first, capped at limit.
func (r *securityEventRepository) FindRecent(ctx context.Context, since time.Time, limit int) ([]entity.SecurityEvent, error) {
	var eventModels []model.SecurityEventModel
	result := r.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&eventModels)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]entity.SecurityEvent, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, *eventModels[i].ToEntity())
	}
	return events, nil
}
