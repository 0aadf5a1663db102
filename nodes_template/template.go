// Package nodestemplate embeds the configuration documents a fresh node is seeded with.
package nodestemplate

import _ "embed"

// File names used when the templates are materialised into a directory.
const (
	DefaultFile = "default.json"
	MinerFile   = "miner.json"
)

// Default is the node configuration template.
//
//go:embed default.json
var Default []byte

// Miner is the block producer configuration template.
//
//go:embed miner.json
var Miner []byte
