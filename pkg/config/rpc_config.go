package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Osub/ckb/pkg/config/validate"
)

// RPCModule names a group of RPC endpoints that can be enabled.
type RPCModule string

const (
	RPCModuleNet   RPCModule = "Net"
	RPCModulePool  RPCModule = "Pool"
	RPCModuleMiner RPCModule = "Miner"
	RPCModuleChain RPCModule = "Chain"
	RPCModuleTrace RPCModule = "Trace"
)

// Valid reports whether m is a known module.
func (m RPCModule) Valid() bool {
	return slices.Contains(validate.RPCModules, string(m))
}

// UnmarshalText rejects unknown module names.
func (m *RPCModule) UnmarshalText(text []byte) error {
	v := RPCModule(text)
	if !v.Valid() {
		return fmt.Errorf("unknown rpc module %q (allowed: %s)", text, strings.Join(validate.RPCModules, ", "))
	}
	*m = v
	return nil
}

// RPCConfig contains RPC server configuration
type RPCConfig struct {
	ListenAddress      string      `json:"listen_address" yaml:"listen_address"` // host:port
	Modules            []RPCModule `json:"modules" yaml:"modules"`
	MaxRequestBodySize int         `json:"max_request_body_size" yaml:"max_request_body_size"` // In bytes
}

// HasModule reports whether module m is enabled.
func (r RPCConfig) HasModule(m RPCModule) bool {
	return slices.Contains(r.Modules, m)
}

func (r RPCConfig) moduleNames() []string {
	names := make([]string, len(r.Modules))
	for i, m := range r.Modules {
		names[i] = string(m)
	}
	return names
}
