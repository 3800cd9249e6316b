// Package audit records security events and raises alerts for critical ones.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// AlertSender delivers a notification for a critical security event.
type AlertSender interface {
	SendAlert(ctx context.Context, event entity.SecurityEvent) error
}

// ResendAlertSender implements AlertSender using Resend.
type ResendAlertSender struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendAlertSender creates an alert sender that emails via Resend.
func NewResendAlertSender(apiKey, from, to string) *ResendAlertSender {
	return &ResendAlertSender{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// SendAlert emails a plain text summary of the event.
func (s *ResendAlertSender) SendAlert(ctx context.Context, event entity.SecurityEvent) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: fmt.Sprintf("[trustd] critical security event: %s", event.EventType),
		Text:    formatAlertBody(event),
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}

func formatAlertBody(event entity.SecurityEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event:      %s\n", event.EventType)
	fmt.Fprintf(&b, "Severity:   %s\n", event.Severity)
	fmt.Fprintf(&b, "Identifier: %s\n", event.PartialIdentifier)
	fmt.Fprintf(&b, "Time:       %s\n", event.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))

	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\nDetails:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, event.Metadata[k])
		}
	}

	return b.String()
}
