package auth

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/logging"
)

// Revoker is the revocation store consulted by Service.Authorize. Keys are
// token identities as built by Service, not raw token strings.
type Revoker interface {
	Revoke(key string, expiresAt time.Time)
	IsRevoked(key string) bool
}

// Registry is an in-process Revoker. Entries are lost on restart and are not
// shared between server instances.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]time.Time)}
}

// Revoke marks key as revoked until expiresAt. Revoking a key again keeps
// the later of the two expiries.
func (r *Registry) Revoke(key string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.entries[key]; ok && prev.After(expiresAt) {
		return
	}
	r.entries[key] = expiresAt
}

func (r *Registry) IsRevoked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]
	return ok
}

// Prune drops entries whose token expired at or before now. Such tokens
// already fail verification, so forgetting them is safe. It returns the
// number of removed entries.
func (r *Registry) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, exp := range r.entries {
		if !exp.After(now) {
			delete(r.entries, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of revoked tokens currently held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// RunPruner calls Prune every interval until ctx is done. A non-positive
// interval disables pruning.
func (r *Registry) RunPruner(ctx context.Context, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		logger.Error(ctx, "revocation pruner disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Prune(time.Now()); n > 0 {
				logger.Debug(ctx, "pruned revoked tokens", "removed", n, "remaining", r.Len())
			}
		case <-ctx.Done():
			return
		}
	}
}
