package config

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/multiformats/go-multiaddr"
)

// Config is the node configuration document read once at start-up.
type Config struct {
	// Comments carries the template's "__comments__" block. It is documentation only.
	Comments       []string             `json:"__comments__,omitempty" yaml:"__comments__,omitempty"`
	DataDir        string               `json:"data_dir" yaml:"data_dir"`
	Chain          ChainConfig          `json:"chain" yaml:"chain"`
	Logger         LoggerConfig         `json:"logger" yaml:"logger"`
	Network        NetworkConfig        `json:"network" yaml:"network"`
	RPC            RPCConfig            `json:"rpc" yaml:"rpc"`
	Sync           SyncConfig           `json:"sync" yaml:"sync"`
	Pool           PoolConfig           `json:"pool" yaml:"pool"`
	BlockAssembler BlockAssemblerConfig `json:"block_assembler" yaml:"block_assembler"`
}

// DataDirSentinel selects the platform default data directory.
const DataDirSentinel = "default"

// Default values of the node template.
const (
	DefaultListenAddress      = "/ip4/0.0.0.0/tcp/8115"
	DefaultRPCListenAddress   = "0.0.0.0:8114"
	DefaultMaxRequestBodySize = 10 * 1024 * 1024 // 10 MiB
	DefaultTypeHash           = "0x0da2fe99fe549e082d4ed483c2e968a89ea8d11aabf5d79e5cbf06522de6e674"
)

var templateComments = []string{
	"Default configuration for a ckb node.",
	"Relative paths under network and logger resolve against data_dir; chain.spec resolves against this file's directory.",
	"Every key may be overridden by a CKB_<SECTION>_<FIELD> environment variable, e.g. CKB_RPC_LISTEN_ADDRESS.",
}

// DefaultConfig returns the configuration shipped in nodes_template/default.json.
func DefaultConfig() *Config {
	return &Config{
		Comments: append([]string(nil), templateComments...),
		DataDir:  DataDirSentinel,
		Chain: ChainConfig{
			Spec: "spec/dev.json",
		},
		Logger: LoggerConfig{
			File:   "ckb.log",
			Filter: "info",
			Color:  true,
		},
		Network: NetworkConfig{
			ListenAddresses:   []string{DefaultListenAddress},
			Bootnodes:         []string{},
			ReservedNodes:     []string{},
			OnlyReservedPeers: false,
			MinPeers:          4,
			MaxPeers:          8,
			SecretFile:        "secret_key",
			NodesFile:         "nodes.json",
		},
		RPC: RPCConfig{
			ListenAddress:      DefaultRPCListenAddress,
			Modules:            []RPCModule{RPCModuleNet, RPCModulePool, RPCModuleMiner, RPCModuleChain, RPCModuleTrace},
			MaxRequestBodySize: DefaultMaxRequestBodySize,
		},
		Sync: SyncConfig{
			VerificationLevel: VerificationFull,
			OrphanBlockLimit:  1024,
		},
		Pool: PoolConfig{
			MaxPoolSize:     10000,
			MaxOrphanSize:   10000,
			MaxProposalSize: 10000,
			MaxCacheSize:    1000,
			MaxPendingSize:  10000,
			Trace:           100,
		},
		BlockAssembler: BlockAssemblerConfig{
			TypeHash: common.HexToHash(DefaultTypeHash),
		},
	}
}

// ParseMultiaddrs converts the network listen addresses to multiaddr objects
func (c *Config) ParseMultiaddrs() ([]multiaddr.Multiaddr, error) {
	return parseMultiaddrs(c.Network.ListenAddresses)
}

func parseMultiaddrs(addrs []string) ([]multiaddr.Multiaddr, error) {
	out := make([]multiaddr.Multiaddr, 0, len(addrs))
	for _, addr := range addrs {
		ma, err := multiaddr.NewMultiaddr(addr)
		if err != nil {
			return nil, err
		}
		out = append(out, ma)
	}
	return out, nil
}
