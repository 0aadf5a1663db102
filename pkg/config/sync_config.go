package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Osub/ckb/pkg/config/validate"
)

// VerificationLevel selects how much of each synced block is verified.
type VerificationLevel string

const (
	VerificationFull   VerificationLevel = "Full"
	VerificationHeader VerificationLevel = "Header"
	VerificationNone   VerificationLevel = "NoVerification"
)

// Valid reports whether v is a known level.
func (v VerificationLevel) Valid() bool {
	return slices.Contains(validate.VerificationLevels, string(v))
}

// UnmarshalText rejects unknown levels.
func (v *VerificationLevel) UnmarshalText(text []byte) error {
	lvl := VerificationLevel(text)
	if !lvl.Valid() {
		return fmt.Errorf("unknown verification level %q (allowed: %s)", text, strings.Join(validate.VerificationLevels, ", "))
	}
	*v = lvl
	return nil
}

// SyncConfig contains block synchronisation configuration
type SyncConfig struct {
	VerificationLevel VerificationLevel `json:"verification_level" yaml:"verification_level"`
	OrphanBlockLimit  int               `json:"orphan_block_limit" yaml:"orphan_block_limit"` // Blocks with unknown parents held at once
}
