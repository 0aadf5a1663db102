package config

import "github.com/ethereum/go-ethereum/common"

// ChainConfig points at the chain specification the node runs.
type ChainConfig struct {
	Spec string `json:"spec" yaml:"spec"` // Chain specification file; relative to the config file
}

// BlockAssemblerConfig identifies who is paid for blocks this node assembles.
type BlockAssemblerConfig struct {
	TypeHash common.Hash `json:"type_hash" yaml:"type_hash"` // Script hash receiving block rewards
}
