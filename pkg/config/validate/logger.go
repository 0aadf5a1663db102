package validate

import (
	"fmt"
	"path/filepath"

	"github.com/Osub/ckb/pkg/logging"
)

// LoggerConfig represents the logger configuration for validation purposes.
type LoggerConfig struct {
	File   string
	Filter string
}

// ValidateLogger performs validation of the logger configuration.
func ValidateLogger(lc LoggerConfig) []error {
	var errs []error

	if _, err := logging.ParseFilter(lc.Filter); err != nil {
		errs = append(errs, ValidationError{
			Path:    "logger.filter",
			Message: err.Error(),
			Hint:    "expected <level>[,<target>=<level>...], e.g. info,chain=debug",
		})
	}

	// Relative files are placed under data_dir, which is created at start-up.
	if lc.File != "" && filepath.IsAbs(lc.File) {
		dir := filepath.Dir(lc.File)
		if err := ValidateDirWritable(dir); err != nil {
			errs = append(errs, ValidationError{
				Path:    "logger.file",
				Message: fmt.Sprintf("parent directory not writable: %v", err),
			})
		}
	}

	return errs
}
