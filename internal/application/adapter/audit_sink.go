package adapter

import (
	"context"
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// AuditSink receives security audit events. Emission is fire-and-forget:
// a sink failure must never affect the calling operation's result.
type AuditSink interface {
	Emit(ctx context.Context, event entity.SecurityEvent)
}

// AuditReader queries persisted audit events, newest first.
type AuditReader interface {
	Recent(ctx context.Context, since time.Time, limit int) ([]entity.SecurityEvent, error)
}
