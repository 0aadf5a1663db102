// Package identity manages the node's network key pair stored in network.secret_file.
package identity

import (
	"crypto/rand"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/Osub/ckb/pkg/errors"
)

// Info is a node key pair together with the peer ID derived from it.
type Info struct {
	PrivateKey crypto.PrivKey
	PublicKey  crypto.PubKey
	PeerID     peer.ID
}

// Generate creates a fresh Ed25519 identity.
func Generate() (*Info, error) {
	priv, _, err := crypto.GenerateKeyPairWithReader(crypto.Ed25519, 2048, rand.Reader)
	if err != nil {
		return nil, errors.WrapCode(err, errors.CodeCryptoError, "failed to generate key pair")
	}
	return fromPrivateKey(priv)
}

// Save writes the private key to path with owner-only permissions.
func Save(info *Info, path string) error {
	data, err := crypto.MarshalPrivateKey(info.PrivateKey)
	if err != nil {
		return errors.WrapCode(err, errors.CodeCryptoError, "failed to marshal private key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.WrapCode(err, errors.CodeStorageError, "failed to create key directory")
	}

	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return errors.WrapCode(err, errors.CodeStorageError, "failed to write secret file")
	}
	return nil
}

// Load reads a private key written by Save.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("secret file", path)
		}
		return nil, errors.WrapCode(err, errors.CodeStorageError, "failed to read secret file")
	}

	priv, err := crypto.UnmarshalPrivateKey(data)
	if err != nil {
		return nil, errors.WrapCode(err, errors.CodeCryptoError, "secret file "+path+" does not hold a private key")
	}
	return fromPrivateKey(priv)
}

// LoadOrCreate loads the identity at path, generating and saving a new one when the
// file does not exist yet. created reports whether a key was generated.
func LoadOrCreate(path string) (info *Info, created bool, err error) {
	info, err = Load(path)
	if err == nil {
		return info, false, nil
	}
	if !errors.IsNotFound(err) {
		return nil, false, err
	}

	if info, err = Generate(); err != nil {
		return nil, false, err
	}
	if err := Save(info, path); err != nil {
		return nil, false, err
	}
	return info, true, nil
}

// PeerAddrs appends /p2p/<peerID> to each listen address, producing the addresses
// other nodes put in their bootnodes or reserved_nodes lists.
func (i *Info) PeerAddrs(listen []multiaddr.Multiaddr) ([]string, error) {
	p2p, err := multiaddr.NewMultiaddr("/p2p/" + i.PeerID.String())
	if err != nil {
		return nil, errors.WrapCode(err, errors.CodeInternal, "failed to build p2p component")
	}
	out := make([]string, 0, len(listen))
	for _, addr := range listen {
		out = append(out, addr.Encapsulate(p2p).String())
	}
	return out, nil
}

func fromPrivateKey(priv crypto.PrivKey) (*Info, error) {
	pub := priv.GetPublic()
	peerID, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return nil, errors.WrapCode(err, errors.CodeCryptoError, "failed to derive peer id")
	}

	return &Info{
		PrivateKey: priv,
		PublicKey:  pub,
		PeerID:     peerID,
	}, nil
}
