package node

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Osub/ckb/pkg/config"
	"github.com/Osub/ckb/pkg/errors"
	"github.com/Osub/ckb/pkg/identity"
	"github.com/Osub/ckb/pkg/logging"
	"github.com/Osub/ckb/pkg/peerstore"
)

// KnownPeersPerSlot bounds the saved peer table relative to max_peers.
const KnownPeersPerSlot = 16

// Node holds everything a node derives from its configuration at start-up.
// It does not run the network, RPC or pool services.
type Node struct {
	Config   *config.Config
	Paths    config.Paths
	Logger   *logging.ColoredLogger
	Identity *identity.Info
	Peers    *peerstore.Store
}

// PrepareOptions tunes Prepare.
type PrepareOptions struct {
	Stdout io.Writer // Console log sink; defaults to os.Stdout
}

// LoggerOptions maps the logger section onto logging options. logFile is the resolved
// logger.file path, empty to disable the file sink.
func LoggerOptions(cfg config.LoggerConfig, logFile string, stdout io.Writer) logging.Options {
	return logging.Options{
		File:   logFile,
		Filter: cfg.Filter,
		Color:  cfg.Color,
		Stdout: stdout,
	}
}

// Prepare resolves the document's paths against configDir, creates the data
// directory, builds the logger, loads or creates the node identity and opens the
// peer store seeded with the configured bootnodes and reserved nodes.
// cfg is expected to have passed Validate.
func Prepare(cfg *config.Config, configDir string, opts PrepareOptions) (*Node, error) {
	paths, err := cfg.ResolvePaths(configDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve paths")
	}

	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory %s", paths.DataDir)
	}

	logger, err := logging.New(LoggerOptions(cfg.Logger, paths.LogFile, opts.Stdout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	n := &Node{
		Config: cfg,
		Paths:  paths,
		Logger: logger,
	}

	info, created, err := identity.LoadOrCreate(paths.SecretFile)
	if err != nil {
		logger.Close()
		return nil, errors.Wrapf(err, "failed to load identity from %s", paths.SecretFile)
	}
	n.Identity = info
	if created {
		logger.ComponentInfo(logging.ComponentNetwork, "Generated new node identity",
			zap.String("peer_id", info.PeerID.String()),
			zap.String("secret_file", paths.SecretFile))
	} else {
		logger.ComponentDebug(logging.ComponentNetwork, "Loaded node identity",
			zap.String("peer_id", info.PeerID.String()))
	}

	peers, err := peerstore.Open(paths.NodesFile)
	if err != nil {
		logger.Close()
		return nil, errors.Wrapf(err, "failed to open peer store %s", paths.NodesFile)
	}
	if err := peers.Seed(cfg.Network.Bootnodes, cfg.Network.ReservedNodes); err != nil {
		logger.Close()
		return nil, errors.Wrap(err, "failed to seed peer store")
	}
	n.Peers = peers

	logger.ComponentInfo(logging.ComponentGeneral, "Node prepared", n.Summary()...)
	return n, nil
}

// Summary returns the effective start-up settings as log fields.
func (n *Node) Summary() []zap.Field {
	fields := []zap.Field{
		zap.String("data_dir", n.Paths.DataDir),
		zap.String("chain_spec", n.Paths.ChainSpec),
		zap.Strings("listen_addresses", n.Config.Network.ListenAddresses),
		zap.Int("min_peers", n.Config.Network.MinPeers),
		zap.Int("max_peers", n.Config.Network.MaxPeers),
		zap.Bool("only_reserved_peers", n.Config.Network.OnlyReservedPeers),
		zap.String("rpc", n.Config.RPC.ListenAddress),
		zap.String("verification_level", string(n.Config.Sync.VerificationLevel)),
		zap.String("type_hash", n.Config.BlockAssembler.TypeHash.Hex()),
	}
	if n.Logger != nil {
		fields = append(fields, zap.Stringer("log_filter", n.Logger.Filter()))
	}
	if n.Identity != nil {
		fields = append(fields, zap.String("peer_id", n.Identity.PeerID.String()))
	}
	if n.Peers != nil {
		fields = append(fields,
			zap.Int("known_peers", n.Peers.Len()),
			zap.Int("bootnodes", len(n.Peers.Bootnodes())))
	}
	return fields
}

// PeerAddrs returns the addresses other nodes use to reach this one.
func (n *Node) PeerAddrs() ([]string, error) {
	listen, err := n.Config.ParseMultiaddrs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse listen addresses")
	}
	return n.Identity.PeerAddrs(listen)
}

// Close trims the peer store to KnownPeersPerSlot entries per max_peers slot,
// persists it and closes the log file.
func (n *Node) Close() error {
	var firstErr error
	if n.Peers != nil {
		if removed := n.Peers.Prune(n.Config.Network.MaxPeers * KnownPeersPerSlot); len(removed) > 0 && n.Logger != nil {
			n.Logger.ComponentDebug(logging.ComponentNetwork, "Pruned peer store", zap.Int("removed", len(removed)))
		}
		if err := n.Peers.Save(); err != nil {
			firstErr = err
		}
	}
	if n.Logger != nil {
		if err := n.Logger.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
