package config

// PoolConfig contains transaction pool admission and eviction limits
type PoolConfig struct {
	MaxPoolSize     int `json:"max_pool_size" yaml:"max_pool_size"`
	MaxOrphanSize   int `json:"max_orphan_size" yaml:"max_orphan_size"`
	MaxProposalSize int `json:"max_proposal_size" yaml:"max_proposal_size"`
	MaxCacheSize    int `json:"max_cache_size" yaml:"max_cache_size"`
	MaxPendingSize  int `json:"max_pending_size" yaml:"max_pending_size"`
	Trace           int `json:"trace" yaml:"trace"` // Traced transactions kept; 0 disables
}
