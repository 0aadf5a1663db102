package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the path to the ckb config directory (~/.ckb).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".ckb"), nil
}

// EnsureConfigDir creates the config directory if it does not exist.
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return dir, nil
}

// DefaultPath returns the path to the named config file inside ~/.ckb.
// If name is already an absolute path, it returns it as-is.
func DefaultPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// DefaultDataDir is where data_dir = "default" points: ~/.ckb/data.
func DefaultDataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Paths holds the absolute locations the document's relative paths resolve to.
type Paths struct {
	DataDir    string
	ChainSpec  string
	LogFile    string // Empty when file logging is disabled
	SecretFile string
	NodesFile  string
}

// ResolvePaths turns the document's paths into absolute ones. configDir is the directory
// holding the config file: relative data_dir and chain.spec resolve against it, while
// logger.file, network.secret_file and network.nodes_file resolve against data_dir.
// Environment variables and a leading ~ are expanded.
func (c *Config) ResolvePaths(configDir string) (Paths, error) {
	var p Paths

	base, err := filepath.Abs(configDir)
	if err != nil {
		return p, fmt.Errorf("failed to resolve config directory: %w", err)
	}

	if c.DataDir == DataDirSentinel {
		if p.DataDir, err = DefaultDataDir(); err != nil {
			return p, err
		}
	} else if p.DataDir, err = resolveAgainst(base, c.DataDir); err != nil {
		return p, fmt.Errorf("data_dir: %w", err)
	}

	if p.ChainSpec, err = resolveAgainst(base, c.Chain.Spec); err != nil {
		return p, fmt.Errorf("chain.spec: %w", err)
	}
	if c.Logger.File != "" {
		if p.LogFile, err = resolveAgainst(p.DataDir, c.Logger.File); err != nil {
			return p, fmt.Errorf("logger.file: %w", err)
		}
	}
	if p.SecretFile, err = resolveAgainst(p.DataDir, c.Network.SecretFile); err != nil {
		return p, fmt.Errorf("network.secret_file: %w", err)
	}
	if p.NodesFile, err = resolveAgainst(p.DataDir, c.Network.NodesFile); err != nil {
		return p, fmt.Errorf("network.nodes_file: %w", err)
	}
	return p, nil
}

func resolveAgainst(base, path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

func expandPath(path string) (string, error) {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %v", err)
		}
		expanded = filepath.Join(home, expanded[1:])
	}
	return expanded, nil
}
