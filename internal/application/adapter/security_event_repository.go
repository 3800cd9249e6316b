package adapter

import (
	"context"
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// SecurityEventRepository persists security audit events.
type SecurityEventRepository interface {
	Save(ctx context.Context, event *entity.SecurityEvent) error
	FindRecent(ctx context.Context, since time.Time, limit int) ([]entity.SecurityEvent, error)
}
