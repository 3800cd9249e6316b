package adapter

import "github.com/dbooster/trustd/internal/domain/entity"

// SignalSource supplies default environment signals for callers that do not
// provide their own (demo sessions, health probes). Implementations fill in
// what they can observe; missing signals keep their zero value and are
// replaced with sentinels during fingerprinting.
type SignalSource interface {
	Signals() entity.DeviceSignals
}
