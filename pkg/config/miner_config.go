package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Osub/ckb/pkg/config/validate"
)

// SealerType selects how assembled blocks are sealed.
type SealerType string

const (
	SealerNormal SealerType = "Normal"
	SealerNoop   SealerType = "Noop" // Skips proof of work; development chains only
)

// Valid reports whether s is a known sealer.
func (s SealerType) Valid() bool {
	return slices.Contains(validate.SealerTypes, string(s))
}

// UnmarshalText rejects unknown sealer types.
func (s *SealerType) UnmarshalText(text []byte) error {
	v := SealerType(text)
	if !v.Valid() {
		return fmt.Errorf("unknown sealer type %q (allowed: %s)", text, strings.Join(validate.SealerTypes, ", "))
	}
	*s = v
	return nil
}

// MinerConfig is the block producer document (nodes_template/miner.json).
type MinerConfig struct {
	MaxTx      int        `json:"max_tx" yaml:"max_tx"` // Max transactions assembled in a block
	SealerType SealerType `json:"sealer_type" yaml:"sealer_type"`
}

// DefaultMinerConfig returns the configuration shipped in nodes_template/miner.json.
func DefaultMinerConfig() *MinerConfig {
	return &MinerConfig{
		MaxTx:      1024,
		SealerType: SealerNormal,
	}
}

// Validate checks the miner document and returns every problem found.
func (m *MinerConfig) Validate() []error {
	return validate.ValidateMiner(validate.MinerConfig{
		MaxTx:      m.MaxTx,
		SealerType: string(m.SealerType),
	})
}
