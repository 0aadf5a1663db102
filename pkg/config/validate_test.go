package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const validPeer = "/ip4/127.0.0.1/tcp/8115/p2p/12D3KooWHbcFcrGPXKUrHcxvd8MXEeUzRYyvY8fQcpEBxncSUwhj"

// validConfigForNode returns a valid config
func validConfigForNode() *Config {
	cfg := DefaultConfig()
	cfg.Network.Bootnodes = []string{validPeer}
	return cfg
}

func TestDefaultConfigIsValid(t *testing.T) {
	if errs := DefaultConfig().Validate(); len(errs) > 0 {
		t.Fatalf("default config should be valid, got: %v", errs)
	}
}

func TestValidateListenAddresses(t *testing.T) {
	tests := []struct {
		name        string
		addresses   []string
		shouldError bool
	}{
		{"valid single", []string{"/ip4/0.0.0.0/tcp/8115"}, false},
		{"valid ipv6", []string{"/ip6/::/tcp/8115"}, false},
		{"valid two", []string{"/ip4/0.0.0.0/tcp/8115", "/ip6/::/tcp/8115"}, false},
		{"invalid port", []string{"/ip4/0.0.0.0/tcp/99999"}, true},
		{"invalid port zero", []string{"/ip4/0.0.0.0/tcp/0"}, true},
		{"invalid multiaddr", []string{"invalid"}, true},
		{"udp only", []string{"/ip4/0.0.0.0/udp/8115"}, true},
		{"empty", []string{}, true},
		{"duplicate", []string{"/ip4/0.0.0.0/tcp/8115", "/ip4/0.0.0.0/tcp/8115"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			cfg.Network.ListenAddresses = tt.addresses
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidatePeerAddresses(t *testing.T) {
	tests := []struct {
		name        string
		peers       []string
		shouldError bool
	}{
		{"with peer", []string{validPeer}, false},
		{"without peers", []string{}, false},
		{"invalid multiaddr", []string{"invalid"}, true},
		{"missing p2p", []string{"/ip4/127.0.0.1/tcp/8115"}, true},
		{"missing tcp", []string{"/ip4/127.0.0.1/p2p/12D3KooWHbcFcrGPXKUrHcxvd8MXEeUzRYyvY8fQcpEBxncSUwhj"}, true},
		{"duplicate peer", []string{validPeer, validPeer}, true},
		{"invalid port", []string{"/ip4/127.0.0.1/tcp/99999/p2p/12D3KooWHbcFcrGPXKUrHcxvd8MXEeUzRYyvY8fQcpEBxncSUwhj"}, true},
	}

	for _, tt := range tests {
		t.Run("bootnodes/"+tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			cfg.Network.Bootnodes = tt.peers
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
		t.Run("reserved_nodes/"+tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			cfg.Network.ReservedNodes = tt.peers
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidatePeerBounds(t *testing.T) {
	tests := []struct {
		name        string
		min, max    int
		shouldError bool
	}{
		{"defaults", 4, 8, false},
		{"equal", 8, 8, false},
		{"zero min", 0, 1, false},
		{"negative min", -1, 8, true},
		{"zero max", 0, 0, true},
		{"min above max", 9, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			cfg.Network.MinPeers = tt.min
			cfg.Network.MaxPeers = tt.max
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidateOnlyReservedPeers(t *testing.T) {
	cfg := validConfigForNode()
	cfg.Network.OnlyReservedPeers = true
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "network.only_reserved_peers") {
		t.Fatalf("expected a single only_reserved_peers error, got %v", errs)
	}

	cfg.Network.ReservedNodes = []string{validPeer}
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateRPC(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*RPCConfig)
		shouldError bool
	}{
		{"defaults", func(*RPCConfig) {}, false},
		{"localhost", func(r *RPCConfig) { r.ListenAddress = "127.0.0.1:8114" }, false},
		{"ipv6", func(r *RPCConfig) { r.ListenAddress = "[::1]:8114" }, false},
		{"missing port", func(r *RPCConfig) { r.ListenAddress = "127.0.0.1" }, true},
		{"port too high", func(r *RPCConfig) { r.ListenAddress = "127.0.0.1:70000" }, true},
		{"empty host", func(r *RPCConfig) { r.ListenAddress = ":8114" }, true},
		{"no modules", func(r *RPCConfig) { r.Modules = nil }, true},
		{"duplicate module", func(r *RPCConfig) { r.Modules = []RPCModule{RPCModuleNet, RPCModuleNet} }, true},
		{"unknown module", func(r *RPCConfig) { r.Modules = []RPCModule{"Wallet"} }, true},
		{"zero body size", func(r *RPCConfig) { r.MaxRequestBodySize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			tt.mutate(&cfg.RPC)
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidateSyncAndPool(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		shouldError bool
	}{
		{"header verification", func(c *Config) { c.Sync.VerificationLevel = VerificationHeader }, false},
		{"unknown verification", func(c *Config) { c.Sync.VerificationLevel = "Partial" }, true},
		{"zero orphan limit", func(c *Config) { c.Sync.OrphanBlockLimit = 0 }, true},
		{"zero pool size", func(c *Config) { c.Pool.MaxPoolSize = 0 }, true},
		{"negative cache size", func(c *Config) { c.Pool.MaxCacheSize = -1 }, true},
		{"trace disabled", func(c *Config) { c.Pool.Trace = 0 }, false},
		{"negative trace", func(c *Config) { c.Pool.Trace = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidateChainAndLogger(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		shouldError bool
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"custom data dir", func(c *Config) { c.DataDir = "data" }, false},
		{"empty chain spec", func(c *Config) { c.Chain.Spec = "" }, true},
		{"zero type hash", func(c *Config) { c.BlockAssembler.TypeHash = common.Hash{} }, true},
		{"filter with targets", func(c *Config) { c.Logger.Filter = "info,chain=debug" }, false},
		{"bad filter", func(c *Config) { c.Logger.Filter = "info,chain=chatty" }, true},
		{"log file in missing dir", func(c *Config) {
			c.Logger.File = filepath.Join(t.TempDir(), "missing", "ckb.log")
		}, true},
		{"log file in writable dir", func(c *Config) {
			c.Logger.File = filepath.Join(t.TempDir(), "ckb.log")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForNode()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.shouldError && len(errs) == 0 {
				t.Errorf("expected error, got none")
			}
			if !tt.shouldError && len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := validConfigForNode()
	cfg.Network.MaxPeers = 0
	cfg.RPC.MaxRequestBodySize = -1
	cfg.Pool.MaxOrphanSize = 0

	errs := cfg.Validate()
	paths := map[string]bool{}
	for _, err := range errs {
		ve, ok := err.(ValidationError)
		if !ok {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		paths[ve.Path] = true
	}
	for _, want := range []string{"network.max_peers", "rpc.max_request_body_size", "pool.max_orphan_size"} {
		if !paths[want] {
			t.Errorf("missing error for %s in %v", want, errs)
		}
	}
}

func TestMinerConfigValidate(t *testing.T) {
	if errs := DefaultMinerConfig().Validate(); len(errs) > 0 {
		t.Fatalf("default miner config should be valid: %v", errs)
	}

	m := &MinerConfig{MaxTx: 0, SealerType: "Fast"}
	if errs := m.Validate(); len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}
