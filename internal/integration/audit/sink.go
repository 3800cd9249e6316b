package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// alertTimeout bounds the alert delivery attempt so a slow email provider
// cannot stall event emission.
const alertTimeout = 10 * time.Second

// Sink implements adapter.AuditSink and adapter.AuditReader. Every event is
// logged, persisted, and, at critical severity, forwarded to the alert
// sender. None of those steps may fail the caller: errors are logged and
// swallowed.
type Sink struct {
	repo   adapter.SecurityEventRepository
	alerts AlertSender
}

// NewSink creates an audit sink. alerts may be nil to disable alerting.
func NewSink(repo adapter.SecurityEventRepository, alerts AlertSender) *Sink {
	return &Sink{
		repo:   repo,
		alerts: alerts,
	}
}

// Emit records the event. It never returns an error and never panics the
// calling operation.
func (s *Sink) Emit(ctx context.Context, event entity.SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.log(event)

	if err := s.repo.Save(ctx, &event); err != nil {
		slog.Error("failed to persist security event",
			"event_type", event.EventType,
			"error", err,
		)
	}

	if event.Severity == entity.SeverityCritical && s.alerts != nil {
		alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
		defer cancel()
		if err := s.alerts.SendAlert(alertCtx, event); err != nil {
			slog.Error("failed to deliver security alert",
				"event_type", event.EventType,
				"error", err,
			)
		}
	}
}

// Recent returns persisted events recorded at or after since, newest first.
func (s *Sink) Recent(ctx context.Context, since time.Time, limit int) ([]entity.SecurityEvent, error) {
	return s.repo.FindRecent(ctx, since, limit)
}

func (s *Sink) log(event entity.SecurityEvent) {
	attrs := []any{
		"event_type", event.EventType,
		"severity", event.Severity,
		"identifier", event.PartialIdentifier,
	}
	for k, v := range event.Metadata {
		attrs = append(attrs, k, v)
	}

	switch event.Severity {
	case entity.SeverityHigh, entity.SeverityCritical:
		slog.Error("security event", attrs...)
	case entity.SeverityWarning:
		slog.Warn("security event", attrs...)
	default:
		slog.Info("security event", attrs...)
	}
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.AuditSink   = (*Sink)(nil)
	_ adapter.AuditReader = (*Sink)(nil)
)
