package password

import (
	"sync"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// PolicyStore holds the process-wide password policy. It is read by every
// evaluation and updated only through an explicit administrative call, so it
// is guarded by a read-write mutex.
type PolicyStore struct {
	mu     sync.RWMutex
	policy entity.PasswordPolicy
}

// NewPolicyStore creates a policy store seeded with the given policy.
func NewPolicyStore(policy entity.PasswordPolicy) *PolicyStore {
	return &PolicyStore{policy: policy}
}

// Get returns a copy of the current policy.
func (s *PolicyStore) Get() entity.PasswordPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Update replaces the current policy.
func (s *PolicyStore) Update(policy entity.PasswordPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}
