package validate

import "fmt"

// NetworkConfig represents the network configuration for validation purposes.
type NetworkConfig struct {
	ListenAddresses   []string
	Bootnodes         []string
	ReservedNodes     []string
	OnlyReservedPeers bool
	MinPeers          int
	MaxPeers          int
	SecretFile        string
	NodesFile         string
}

// ValidateNetwork performs validation of the network configuration.
func ValidateNetwork(nc NetworkConfig) []error {
	var errs []error

	if len(nc.ListenAddresses) == 0 {
		errs = append(errs, ValidationError{
			Path:    "network.listen_addresses",
			Message: "must not be empty",
		})
	}

	seen := make(map[string]bool)
	for i, addr := range nc.ListenAddresses {
		path := fmt.Sprintf("network.listen_addresses[%d]", i)

		if hint, err := ValidateListenMultiaddr(addr); err != nil {
			errs = append(errs, ValidationError{Path: path, Message: err.Error(), Hint: hint})
			continue
		}

		if seen[addr] {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "duplicate listen address",
			})
		}
		seen[addr] = true
	}

	errs = append(errs, validatePeerList("network.bootnodes", nc.Bootnodes)...)
	errs = append(errs, validatePeerList("network.reserved_nodes", nc.ReservedNodes)...)

	if nc.OnlyReservedPeers && len(nc.ReservedNodes) == 0 {
		errs = append(errs, ValidationError{
			Path:    "network.only_reserved_peers",
			Message: "requires at least one entry in network.reserved_nodes",
			Hint:    "the node would never connect to anyone",
		})
	}

	if nc.MinPeers < 0 {
		errs = append(errs, ValidationError{
			Path:    "network.min_peers",
			Message: fmt.Sprintf("must be >= 0; got %d", nc.MinPeers),
		})
	}
	if nc.MaxPeers < 1 {
		errs = append(errs, ValidationError{
			Path:    "network.max_peers",
			Message: fmt.Sprintf("must be >= 1; got %d", nc.MaxPeers),
		})
	}
	if nc.MinPeers > nc.MaxPeers {
		errs = append(errs, ValidationError{
			Path:    "network.min_peers",
			Message: fmt.Sprintf("must not exceed network.max_peers (%d); got %d", nc.MaxPeers, nc.MinPeers),
		})
	}

	if nc.SecretFile == "" {
		errs = append(errs, ValidationError{
			Path:    "network.secret_file",
			Message: "must not be empty",
		})
	}
	if nc.NodesFile == "" {
		errs = append(errs, ValidationError{
			Path:    "network.nodes_file",
			Message: "must not be empty",
		})
	}

	return errs
}

func validatePeerList(field string, peers []string) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, addr := range peers {
		path := fmt.Sprintf("%s[%d]", field, i)

		if hint, err := ValidatePeerMultiaddr(addr); err != nil {
			errs = append(errs, ValidationError{Path: path, Message: err.Error(), Hint: hint})
			continue
		}

		if seen[addr] {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "duplicate peer",
			})
		}
		seen[addr] = true
	}
	return errs
}
