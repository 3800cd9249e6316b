// Package adapter defines the interfaces the application layer depends on.
package adapter

import (
	"context"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// BreachOracle checks a candidate secret against a breach corpus using the
// k-anonymity range protocol. Implementations never return an error: any
// failure degrades to BreachStatusUnavailable, which callers must not treat
// as a clean verdict.
type BreachOracle interface {
	Check(ctx context.Context, secret string) entity.BreachStatus
}
