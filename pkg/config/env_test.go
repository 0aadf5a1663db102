package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Osub/ckb/pkg/errors"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"CKB_DATA_DIR":                  "/srv/ckb",
		"CKB_LOGGER_FILTER":             "warn,chain=debug",
		"CKB_LOGGER_COLOR":              "false",
		"CKB_NETWORK_BOOTNODES":         validPeer + " , ",
		"CKB_NETWORK_MAX_PEERS":         "32",
		"CKB_RPC_LISTEN_ADDRESS":        "127.0.0.1:18114",
		"CKB_RPC_MODULES":               "Net,Chain",
		"CKB_RPC_MAX_REQUEST_BODY_SIZE": "16MB",
		"CKB_SYNC_VERIFICATION_LEVEL":   "Header",
		"CKB_POOL_TRACE":                "0",
		"CKB_BLOCK_ASSEMBLER_TYPE_HASH": "0x1111111111111111111111111111111111111111111111111111111111111111",
	}

	cfg := DefaultConfig()
	if errs := ApplyEnvOverrides(cfg, mapLookup(env)); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if cfg.DataDir != "/srv/ckb" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.Logger.Filter != "warn,chain=debug" || cfg.Logger.Color {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if diff := cmp.Diff([]string{validPeer}, cfg.Network.Bootnodes); diff != "" {
		t.Errorf("bootnodes (-want +got):\n%s", diff)
	}
	if cfg.Network.MaxPeers != 32 {
		t.Errorf("max_peers = %d", cfg.Network.MaxPeers)
	}
	if cfg.RPC.ListenAddress != "127.0.0.1:18114" {
		t.Errorf("rpc.listen_address = %q", cfg.RPC.ListenAddress)
	}
	if diff := cmp.Diff([]RPCModule{RPCModuleNet, RPCModuleChain}, cfg.RPC.Modules); diff != "" {
		t.Errorf("rpc.modules (-want +got):\n%s", diff)
	}
	if cfg.RPC.MaxRequestBodySize != 16*1024*1024 {
		t.Errorf("rpc.max_request_body_size = %d", cfg.RPC.MaxRequestBodySize)
	}
	if cfg.Sync.VerificationLevel != VerificationHeader {
		t.Errorf("sync.verification_level = %q", cfg.Sync.VerificationLevel)
	}
	if cfg.Pool.Trace != 0 {
		t.Errorf("pool.trace = %d", cfg.Pool.Trace)
	}
	if !strings.HasPrefix(cfg.BlockAssembler.TypeHash.Hex(), "0x1111") {
		t.Errorf("type_hash = %s", cfg.BlockAssembler.TypeHash.Hex())
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("overridden config should validate: %v", errs)
	}
}

func TestApplyEnvOverridesByteSizes(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"1048576", 1 << 20},
		{"16MB", 16 << 20},
		{"16mb", 16 << 20},
		{"16MiB", 16 << 20},
		{"16mib", 16 << 20},
		{"512KiB", 512 << 10},
		{"1GiB", 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			errs := ApplyEnvOverrides(cfg, mapLookup(map[string]string{"CKB_RPC_MAX_REQUEST_BODY_SIZE": tt.value}))
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if cfg.RPC.MaxRequestBodySize != tt.want {
				t.Errorf("rpc.max_request_body_size = %d, want %d", cfg.RPC.MaxRequestBodySize, tt.want)
			}
		})
	}
}

func TestApplyEnvOverridesRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CKB_NETWORK_MIN_PEERS", "four"},
		{"CKB_NETWORK_ONLY_RESERVED_PEERS", "maybe"},
		{"CKB_RPC_MODULES", "Net,Wallet"},
		{"CKB_RPC_MAX_REQUEST_BODY_SIZE", "lots"},
		{"CKB_RPC_MAX_REQUEST_BODY_SIZE", "16XiB"},
		{"CKB_SYNC_VERIFICATION_LEVEL", "Partial"},
		{"CKB_BLOCK_ASSEMBLER_TYPE_HASH", "0x12"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			errs := ApplyEnvOverrides(cfg, mapLookup(map[string]string{tt.key: tt.value}))
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if !errors.IsValidation(errs[0]) {
				t.Errorf("expected validation error, got %T", errs[0])
			}
			if !strings.Contains(errs[0].Error(), tt.key) {
				t.Errorf("error should name %s: %v", tt.key, errs[0])
			}
			if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
				t.Errorf("config changed on bad value (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyEnvOverridesProcessEnvironment(t *testing.T) {
	t.Setenv("CKB_NETWORK_RESERVED_NODES", "")
	t.Setenv("CKB_CHAIN_SPEC", "spec/testnet.json")

	cfg := DefaultConfig()
	cfg.Network.ReservedNodes = []string{validPeer}
	if errs := ApplyEnvOverrides(cfg, nil); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Chain.Spec != "spec/testnet.json" {
		t.Errorf("chain.spec = %q", cfg.Chain.Spec)
	}
	if cfg.Network.ReservedNodes == nil || len(cfg.Network.ReservedNodes) != 0 {
		t.Errorf("empty variable should clear reserved_nodes, got %#v", cfg.Network.ReservedNodes)
	}
}
