package validate

import (
	"fmt"
	"slices"
	"strings"
)

// SealerTypes lists the accepted sealer_type values.
var SealerTypes = []string{"Normal", "Noop"}

// MinerConfig represents the block producer configuration for validation purposes.
type MinerConfig struct {
	MaxTx      int
	SealerType string
}

// ValidateMiner performs validation of the block producer configuration.
func ValidateMiner(mc MinerConfig) []error {
	var errs []error

	if mc.MaxTx <= 0 {
		errs = append(errs, ValidationError{
			Path:    "max_tx",
			Message: fmt.Sprintf("must be > 0; got %d", mc.MaxTx),
		})
	}

	if !slices.Contains(SealerTypes, mc.SealerType) {
		errs = append(errs, ValidationError{
			Path:    "sealer_type",
			Message: fmt.Sprintf("invalid value %q", mc.SealerType),
			Hint:    "allowed values: " + strings.Join(SealerTypes, ", "),
		})
	}

	return errs
}
