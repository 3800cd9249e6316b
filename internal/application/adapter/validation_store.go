package adapter

import (
	"context"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// ValidationStore persists at most one ClientValidationRecord per active
// session under a well-known key. Load returns (nil, nil) when no record
// exists for the session.
type ValidationStore interface {
	Save(ctx context.Context, record *entity.ClientValidationRecord) error
	Load(ctx context.Context, sessionID string) (*entity.ClientValidationRecord, error)
	Delete(ctx context.Context, sessionID string) error
}
