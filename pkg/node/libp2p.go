package node

import (
	"time"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/control"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	pstore "github.com/libp2p/go-libp2p/core/peerstore"
	"github.com/libp2p/go-libp2p/p2p/host/peerstore/pstoremem"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"
	noise "github.com/libp2p/go-libp2p/p2p/security/noise"
	"github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"

	"github.com/Osub/ckb/pkg/errors"
	"github.com/Osub/ckb/pkg/logging"
	"github.com/Osub/ckb/pkg/peerstore"
)

// ConnGracePeriod is how long new connections are exempt from trimming.
const ConnGracePeriod = time.Minute

const reservedTag = "reserved"

// P2POptions builds the libp2p host options the network section describes: the node
// identity, listen addresses, a peerstore holding every known peer's addresses and a
// connection manager trimming between min_peers and max_peers. Reserved peers are
// protected from trimming and, with only_reserved_peers, are the only peers allowed
// to connect.
func (n *Node) P2POptions() ([]libp2p.Option, error) {
	listenAddrs, err := n.Config.ParseMultiaddrs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse listen addresses")
	}

	ps, err := n.knownPeers()
	if err != nil {
		return nil, err
	}

	cm, err := connmgr.NewConnManager(
		n.Config.Network.MinPeers,
		n.Config.Network.MaxPeers,
		connmgr.WithGracePeriod(ConnGracePeriod),
	)
	if err != nil {
		ps.Close()
		return nil, errors.Wrap(err, "failed to create connection manager")
	}

	reserved := make(map[peer.ID]bool)
	for _, e := range n.Peers.Reserved() {
		reserved[e.ID] = true
		cm.Protect(e.ID, reservedTag)
	}

	opts := []libp2p.Option{
		libp2p.Identity(n.Identity.PrivateKey),
		libp2p.ListenAddrs(listenAddrs...),
		libp2p.Peerstore(ps),
		libp2p.Security(noise.ID, noise.New),
		libp2p.DefaultMuxers,
		libp2p.ConnectionManager(cm),
	}

	if n.Config.Network.OnlyReservedPeers {
		n.Logger.ComponentInfo(logging.ComponentNetwork, "Only reserved peers may connect",
			zap.Int("reserved", len(reserved)))
		opts = append(opts, libp2p.ConnectionGater(&reservedGater{reserved: reserved}))
	}

	return opts, nil
}

// knownPeers loads the peer table into a libp2p peerstore. Configured peers keep
// their addresses for the host's lifetime; discovered ones expire.
func (n *Node) knownPeers() (pstore.Peerstore, error) {
	ps, err := pstoremem.NewPeerstore()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create peerstore")
	}
	for _, e := range n.Peers.Peers() {
		info, err := e.AddrInfo()
		if err != nil {
			n.Logger.ComponentWarn(logging.ComponentNetwork, "Skipping peer with bad address",
				zap.String("peer_id", e.ID.String()), zap.Error(err))
			continue
		}
		ttl := pstore.AddressTTL
		if e.Source != peerstore.SourceDiscovered {
			ttl = pstore.PermanentAddrTTL
		}
		ps.AddAddrs(info.ID, info.Addrs, ttl)
	}
	return ps, nil
}

// reservedGater admits only reserved peers.
type reservedGater struct {
	reserved map[peer.ID]bool
}

func (g *reservedGater) InterceptPeerDial(p peer.ID) bool {
	return g.reserved[p]
}

func (g *reservedGater) InterceptAddrDial(p peer.ID, _ multiaddr.Multiaddr) bool {
	return g.reserved[p]
}

// InterceptAccept allows the handshake; the remote peer is checked once it is known.
func (g *reservedGater) InterceptAccept(network.ConnMultiaddrs) bool {
	return true
}

func (g *reservedGater) InterceptSecured(_ network.Direction, p peer.ID, _ network.ConnMultiaddrs) bool {
	return g.reserved[p]
}

func (g *reservedGater) InterceptUpgraded(network.Conn) (bool, control.DisconnectReason) {
	return true, 0
}
