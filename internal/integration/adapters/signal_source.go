package adapters

import (
	"runtime"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// hostSignalSource derives default device signals from the host process.
// It backs flows where the caller supplies no signals of its own, such as
// demo sessions started from the CLI.
type hostSignalSource struct {
	userAgent string
}

// NewHostSignalSource creates a signal source describing the host process.
func NewHostSignalSource(userAgent string) adapter.SignalSource {
	return &hostSignalSource{userAgent: userAgent}
}

func (s *hostSignalSource) Signals() entity.DeviceSignals {
	return entity.DeviceSignals{
		UserAgent: s.userAgent,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		CPUCount:  runtime.NumCPU(),
		HasCrypto: true,
	}
}
