package config

// NetworkConfig contains peer-to-peer configuration
type NetworkConfig struct {
	ListenAddresses   []string `json:"listen_addresses" yaml:"listen_addresses"`       // Multiaddrs to listen on
	Bootnodes         []string `json:"bootnodes" yaml:"bootnodes"`                     // Peers dialled on first start
	ReservedNodes     []string `json:"reserved_nodes" yaml:"reserved_nodes"`           // Peers always kept connected
	OnlyReservedPeers bool     `json:"only_reserved_peers" yaml:"only_reserved_peers"` // Refuse everyone else
	MinPeers          int      `json:"min_peers" yaml:"min_peers"`
	MaxPeers          int      `json:"max_peers" yaml:"max_peers"`
	SecretFile        string   `json:"secret_file" yaml:"secret_file"` // Node private key; relative to data_dir
	NodesFile         string   `json:"nodes_file" yaml:"nodes_file"`   // Known peers; relative to data_dir
}
