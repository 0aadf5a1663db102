package config

import "github.com/Osub/ckb/pkg/config/validate"

// ValidationError represents a single validation error with context.
type ValidationError = validate.ValidationError

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, validate.ValidateChain(validate.ChainConfig{
		DataDir:  c.DataDir,
		Spec:     c.Chain.Spec,
		TypeHash: c.BlockAssembler.TypeHash.Hex(),
	})...)

	errs = append(errs, validate.ValidateLogger(validate.LoggerConfig{
		File:   c.Logger.File,
		Filter: c.Logger.Filter,
	})...)

	errs = append(errs, validate.ValidateNetwork(validate.NetworkConfig{
		ListenAddresses:   c.Network.ListenAddresses,
		Bootnodes:         c.Network.Bootnodes,
		ReservedNodes:     c.Network.ReservedNodes,
		OnlyReservedPeers: c.Network.OnlyReservedPeers,
		MinPeers:          c.Network.MinPeers,
		MaxPeers:          c.Network.MaxPeers,
		SecretFile:        c.Network.SecretFile,
		NodesFile:         c.Network.NodesFile,
	})...)

	errs = append(errs, validate.ValidateRPC(validate.RPCConfig{
		ListenAddress:      c.RPC.ListenAddress,
		Modules:            c.RPC.moduleNames(),
		MaxRequestBodySize: c.RPC.MaxRequestBodySize,
	})...)

	errs = append(errs, validate.ValidateSync(validate.SyncConfig{
		VerificationLevel: string(c.Sync.VerificationLevel),
		OrphanBlockLimit:  c.Sync.OrphanBlockLimit,
	})...)

	errs = append(errs, validate.ValidatePool(validate.PoolConfig{
		MaxPoolSize:     c.Pool.MaxPoolSize,
		MaxOrphanSize:   c.Pool.MaxOrphanSize,
		MaxProposalSize: c.Pool.MaxProposalSize,
		MaxCacheSize:    c.Pool.MaxCacheSize,
		MaxPendingSize:  c.Pool.MaxPendingSize,
		Trace:           c.Pool.Trace,
	})...)

	return errs
}
