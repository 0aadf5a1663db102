package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/Osub/ckb/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. CKB_RPC_LISTEN_ADDRESS.
const EnvPrefix = "CKB_"

// LookupFunc looks up an environment variable; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnvOverrides overrides cfg fields from CKB_* environment variables.
// A nil lookup reads the process environment. Lists are comma separated.
// Malformed values are returned as errors and leave the field unchanged.
func ApplyEnvOverrides(cfg *Config, lookup LookupFunc) []error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	e := &envApplier{lookup: lookup}

	e.str("DATA_DIR", &cfg.DataDir)
	e.str("CHAIN_SPEC", &cfg.Chain.Spec)

	e.str("LOGGER_FILE", &cfg.Logger.File)
	e.str("LOGGER_FILTER", &cfg.Logger.Filter)
	e.boolean("LOGGER_COLOR", &cfg.Logger.Color)

	e.list("NETWORK_LISTEN_ADDRESSES", &cfg.Network.ListenAddresses)
	e.list("NETWORK_BOOTNODES", &cfg.Network.Bootnodes)
	e.list("NETWORK_RESERVED_NODES", &cfg.Network.ReservedNodes)
	e.boolean("NETWORK_ONLY_RESERVED_PEERS", &cfg.Network.OnlyReservedPeers)
	e.integer("NETWORK_MIN_PEERS", &cfg.Network.MinPeers)
	e.integer("NETWORK_MAX_PEERS", &cfg.Network.MaxPeers)
	e.str("NETWORK_SECRET_FILE", &cfg.Network.SecretFile)
	e.str("NETWORK_NODES_FILE", &cfg.Network.NodesFile)

	e.str("RPC_LISTEN_ADDRESS", &cfg.RPC.ListenAddress)
	e.modules("RPC_MODULES", &cfg.RPC.Modules)
	e.byteSize("RPC_MAX_REQUEST_BODY_SIZE", &cfg.RPC.MaxRequestBodySize)

	e.text("SYNC_VERIFICATION_LEVEL", &cfg.Sync.VerificationLevel)
	e.integer("SYNC_ORPHAN_BLOCK_LIMIT", &cfg.Sync.OrphanBlockLimit)

	e.integer("POOL_MAX_POOL_SIZE", &cfg.Pool.MaxPoolSize)
	e.integer("POOL_MAX_ORPHAN_SIZE", &cfg.Pool.MaxOrphanSize)
	e.integer("POOL_MAX_PROPOSAL_SIZE", &cfg.Pool.MaxProposalSize)
	e.integer("POOL_MAX_CACHE_SIZE", &cfg.Pool.MaxCacheSize)
	e.integer("POOL_MAX_PENDING_SIZE", &cfg.Pool.MaxPendingSize)
	e.integer("POOL_TRACE", &cfg.Pool.Trace)

	e.text("BLOCK_ASSEMBLER_TYPE_HASH", &cfg.BlockAssembler.TypeHash)

	return e.errs
}

type envApplier struct {
	lookup LookupFunc
	errs   []error
}

func (e *envApplier) get(key string) (string, string, bool) {
	name := EnvPrefix + key
	v, ok := e.lookup(name)
	return name, strings.TrimSpace(v), ok
}

func (e *envApplier) fail(name, value string, err error) {
	e.errs = append(e.errs, errors.NewValidationError(name, err.Error(), value))
}

func (e *envApplier) str(key string, dst *string) {
	if _, v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envApplier) boolean(key string, dst *bool) {
	name, v, ok := e.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(name, v, fmt.Errorf("expected a boolean"))
		return
	}
	*dst = b
}

func (e *envApplier) integer(key string, dst *int) {
	name, v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, v, fmt.Errorf("expected an integer"))
		return
	}
	*dst = n
}

// byteSize accepts a plain byte count or a size such as "16MB" or "16MiB". Both
// spellings are binary: 1 MB = 1 MiB = 1024 KB.
func (e *envApplier) byteSize(key string, dst *int) {
	name, v, ok := e.get(key)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
		return
	}
	text := v
	if len(text) > 2 && strings.EqualFold(text[len(text)-2:], "iB") {
		text = text[:len(text)-2] + "B"
	}
	size, err := datasize.ParseString(text)
	if err != nil {
		e.fail(name, v, fmt.Errorf("expected a byte count or size such as 16MB"))
		return
	}
	*dst = int(size.Bytes())
}

func (e *envApplier) list(key string, dst *[]string) {
	if _, v, ok := e.get(key); ok {
		*dst = splitList(v)
	}
}

func (e *envApplier) modules(key string, dst *[]RPCModule) {
	name, v, ok := e.get(key)
	if !ok {
		return
	}
	var modules []RPCModule
	for _, s := range splitList(v) {
		var m RPCModule
		if err := m.UnmarshalText([]byte(s)); err != nil {
			e.fail(name, v, err)
			return
		}
		modules = append(modules, m)
	}
	*dst = modules
}

type textUnmarshaler interface {
	UnmarshalText([]byte) error
}

func (e *envApplier) text(key string, dst textUnmarshaler) {
	name, v, ok := e.get(key)
	if !ok {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		e.fail(name, v, err)
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
