package validate

import (
	"fmt"
	"slices"
	"strings"
)

// VerificationLevels lists the accepted sync.verification_level values.
var VerificationLevels = []string{"Full", "Header", "NoVerification"}

// SyncConfig represents the sync configuration for validation purposes.
type SyncConfig struct {
	VerificationLevel string
	OrphanBlockLimit  int
}

// ValidateSync performs validation of the sync configuration.
func ValidateSync(sc SyncConfig) []error {
	var errs []error

	if !slices.Contains(VerificationLevels, sc.VerificationLevel) {
		errs = append(errs, ValidationError{
			Path:    "sync.verification_level",
			Message: fmt.Sprintf("invalid value %q", sc.VerificationLevel),
			Hint:    "allowed values: " + strings.Join(VerificationLevels, ", "),
		})
	}

	if sc.OrphanBlockLimit <= 0 {
		errs = append(errs, ValidationError{
			Path:    "sync.orphan_block_limit",
			Message: fmt.Sprintf("must be > 0; got %d", sc.OrphanBlockLimit),
		})
	}

	return errs
}
