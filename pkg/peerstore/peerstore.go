// Package peerstore persists the peers a node knows about in network.nodes_file.
package peerstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/Osub/ckb/pkg/errors"
)

// Source records how a peer became known. Higher sources win when a peer is added twice.
type Source string

const (
	SourceDiscovered Source = "discovered"
	SourceBootnode   Source = "bootnode"
	SourceReserved   Source = "reserved"
)

func (s Source) rank() int {
	switch s {
	case SourceReserved:
		return 2
	case SourceBootnode:
		return 1
	default:
		return 0
	}
}

// Status is the last known connection state of a peer.
type Status string

const (
	StatusUnknown      Status = "Unknown"
	StatusConnected    Status = "Connected"
	StatusDisconnected Status = "Disconnected"
)

// Behaviour is an observed peer event that adjusts its score.
type Behaviour int

const (
	Connect Behaviour = iota
	UnexpectedDisconnect
	Timeout
	BadProtocol
)

// Score bounds and the deltas applied by Report.
const (
	MinScore = -100
	MaxScore = 100
)

var behaviourScores = map[Behaviour]int{
	Connect:              10,
	UnexpectedDisconnect: -20,
	Timeout:              -20,
	BadProtocol:          -100,
}

func (b Behaviour) String() string {
	switch b {
	case Connect:
		return "Connect"
	case UnexpectedDisconnect:
		return "UnexpectedDisconnect"
	case Timeout:
		return "Timeout"
	case BadProtocol:
		return "BadProtocol"
	default:
		return fmt.Sprintf("Behaviour(%d)", int(b))
	}
}

// Entry is one known peer as stored in the nodes file.
type Entry struct {
	ID       peer.ID    `json:"peer_id"`
	Addrs    []string   `json:"addrs"`
	Source   Source     `json:"source"`
	Status   Status     `json:"status"`
	Score    int        `json:"score"`
	LastSeen *time.Time `json:"last_seen,omitempty"` // nil until the peer is first seen
}

// AddrInfo converts the entry to a dialable peer.AddrInfo.
func (e Entry) AddrInfo() (peer.AddrInfo, error) {
	info := peer.AddrInfo{ID: e.ID}
	for _, a := range e.Addrs {
		ma, err := multiaddr.NewMultiaddr(a)
		if err != nil {
			return info, fmt.Errorf("peer %s: invalid address %q: %w", e.ID, a, err)
		}
		info.Addrs = append(info.Addrs, ma)
	}
	return info, nil
}

// Store is a concurrent-safe peer table backed by a JSON file.
type Store struct {
	mu    sync.RWMutex
	path  string
	peers map[peer.ID]*Entry
	now   func() time.Time
}

// Open loads the nodes file at path. A missing file yields an empty store that is
// created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		peers: make(map[peer.ID]*Entry),
		now:   time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapCode(err, errors.CodeStorageError, "failed to read nodes file")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapCode(err, errors.CodeSerializationError, "failed to decode nodes file "+path)
	}
	for i := range entries {
		e := entries[i]
		if e.Status == "" {
			e.Status = StatusUnknown
		}
		s.peers[e.ID] = &e
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Seed adds the configured bootnodes and reserved nodes. Each address must end in /p2p/<peerID>.
func (s *Store) Seed(bootnodes, reserved []string) error {
	for _, list := range []struct {
		addrs  []string
		source Source
	}{
		{bootnodes, SourceBootnode},
		{reserved, SourceReserved},
	} {
		for _, addr := range list.addrs {
			info, err := peer.AddrInfoFromString(addr)
			if err != nil {
				return errors.NewValidationError(string(list.source), err.Error(), addr)
			}
			s.Add(*info, list.source)
		}
	}
	return nil
}

// Add records a peer and its addresses. Known peers gain any new addresses and keep the
// higher ranked source.
func (s *Store) Add(info peer.AddrInfo, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.peers[info.ID]
	if !ok {
		e = &Entry{ID: info.ID, Source: source, Status: StatusUnknown}
		s.peers[info.ID] = e
	} else if source.rank() > e.Source.rank() {
		e.Source = source
	}

	for _, ma := range info.Addrs {
		addr := ma.String()
		found := false
		for _, existing := range e.Addrs {
			if existing == addr {
				found = true
				break
			}
		}
		if !found {
			e.Addrs = append(e.Addrs, addr)
		}
	}
}

// Report applies the score delta for b to a known peer and returns the new score.
func (s *Store) Report(id peer.ID, b Behaviour) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.peers[id]
	if !ok {
		return 0, errors.NewNotFoundError("peer", id.String())
	}
	delta, ok := behaviourScores[b]
	if !ok {
		return e.Score, errors.NewValidationError("behaviour", "unknown behaviour", int(b))
	}

	e.Score = clamp(e.Score+delta, MinScore, MaxScore)
	s.touch(e)
	return e.Score, nil
}

// UpdateStatus sets the connection state of a known peer.
func (s *Store) UpdateStatus(id peer.ID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.peers[id]
	if !ok {
		return errors.NewNotFoundError("peer", id.String())
	}
	e.Status = status
	if status == StatusConnected {
		s.touch(e)
	}
	return nil
}

// Get returns a copy of the entry for id.
func (s *Store) Get(id peer.ID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.peers[id]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Peers returns every entry, best score first.
func (s *Store) Peers() []Entry {
	return s.filter(func(*Entry) bool { return true })
}

// Reserved returns the reserved peers.
func (s *Store) Reserved() []Entry {
	return s.filter(func(e *Entry) bool { return e.Source == SourceReserved })
}

// Bootnodes returns the bootnode peers.
func (s *Store) Bootnodes() []Entry {
	return s.filter(func(e *Entry) bool { return e.Source == SourceBootnode })
}

// Len returns the number of known peers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

// Prune drops the lowest scored peers until at most limit remain and returns the
// removed IDs. Reserved peers are never removed.
func (s *Store) Prune(limit int) []peer.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.peers) <= limit {
		return nil
	}

	candidates := make([]*Entry, 0, len(s.peers))
	for _, e := range s.peers {
		if e.Source != SourceReserved {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score < candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})

	var removed []peer.ID
	for _, e := range candidates {
		if len(s.peers) <= limit {
			break
		}
		delete(s.peers, e.ID)
		removed = append(removed, e.ID)
	}
	return removed
}

// Save atomically writes the store to its file, sorted by peer ID.
func (s *Store) Save() error {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.peers))
	for _, e := range s.peers {
		entries = append(entries, e.clone())
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return errors.WrapCode(err, errors.CodeSerializationError, "failed to encode nodes file")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.WrapCode(err, errors.CodeStorageError, "failed to create nodes file directory")
	}
	if err := renameio.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return errors.WrapCode(err, errors.CodeStorageError, "failed to write nodes file")
	}
	return nil
}

func (s *Store) filter(keep func(*Entry) bool) []Entry {
	s.mu.RLock()
	out := make([]Entry, 0, len(s.peers))
	for _, e := range s.peers {
		if keep(e) {
			out = append(out, e.clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) touch(e *Entry) {
	now := s.now().UTC()
	e.LastSeen = &now
}

func (e *Entry) clone() Entry {
	c := *e
	c.Addrs = append([]string(nil), e.Addrs...)
	if e.LastSeen != nil {
		t := *e.LastSeen
		c.LastSeen = &t
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
