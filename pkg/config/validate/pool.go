package validate

import "fmt"

// PoolConfig represents the transaction pool limits for validation purposes.
type PoolConfig struct {
	MaxPoolSize     int
	MaxOrphanSize   int
	MaxProposalSize int
	MaxCacheSize    int
	MaxPendingSize  int
	Trace           int
}

// ValidatePool performs validation of the pool limits.
func ValidatePool(pc PoolConfig) []error {
	var errs []error

	limits := []struct {
		path  string
		value int
	}{
		{"pool.max_pool_size", pc.MaxPoolSize},
		{"pool.max_orphan_size", pc.MaxOrphanSize},
		{"pool.max_proposal_size", pc.MaxProposalSize},
		{"pool.max_cache_size", pc.MaxCacheSize},
		{"pool.max_pending_size", pc.MaxPendingSize},
	}
	for _, l := range limits {
		if l.value <= 0 {
			errs = append(errs, ValidationError{
				Path:    l.path,
				Message: fmt.Sprintf("must be > 0; got %d", l.value),
			})
		}
	}

	if pc.Trace < 0 {
		errs = append(errs, ValidationError{
			Path:    "pool.trace",
			Message: fmt.Sprintf("must be >= 0; got %d", pc.Trace),
			Hint:    "0 disables transaction tracing",
		})
	}

	return errs
}
