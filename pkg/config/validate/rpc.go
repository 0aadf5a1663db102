package validate

import (
	"fmt"
	"slices"
	"strings"
)

// RPCModules lists the RPC module names a node can expose.
var RPCModules = []string{"Net", "Pool", "Miner", "Chain", "Trace"}

// RPCConfig represents the RPC configuration for validation purposes.
type RPCConfig struct {
	ListenAddress      string
	Modules            []string
	MaxRequestBodySize int
}

// ValidateRPC performs validation of the RPC configuration.
func ValidateRPC(rc RPCConfig) []error {
	var errs []error

	if rc.ListenAddress == "" {
		errs = append(errs, ValidationError{
			Path:    "rpc.listen_address",
			Message: "must not be empty",
		})
	} else if err := ValidateHostPort(rc.ListenAddress); err != nil {
		errs = append(errs, ValidationError{
			Path:    "rpc.listen_address",
			Message: err.Error(),
			Hint:    "expected format: host:port, e.g. 127.0.0.1:8114",
		})
	}

	if len(rc.Modules) == 0 {
		errs = append(errs, ValidationError{
			Path:    "rpc.modules",
			Message: "must not be empty",
			Hint:    "allowed values: Net, Pool, Miner, Chain, Trace",
		})
	}
	seen := make(map[string]bool)
	for i, m := range rc.Modules {
		if !slices.Contains(RPCModules, m) {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("rpc.modules[%d]", i),
				Message: fmt.Sprintf("unknown module %q", m),
				Hint:    "allowed values: " + strings.Join(RPCModules, ", "),
			})
			continue
		}
		if seen[m] {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("rpc.modules[%d]", i),
				Message: fmt.Sprintf("duplicate module %q", m),
			})
		}
		seen[m] = true
	}

	if rc.MaxRequestBodySize <= 0 {
		errs = append(errs, ValidationError{
			Path:    "rpc.max_request_body_size",
			Message: fmt.Sprintf("must be > 0; got %d", rc.MaxRequestBodySize),
			Hint:    "recommended: 10485760 (10 MiB)",
		})
	}

	return errs
}
