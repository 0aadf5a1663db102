package config

import (
	"bytes"
	"os"

	nodestemplate "github.com/Osub/ckb/nodes_template"
	"github.com/Osub/ckb/pkg/errors"
)

// Template decodes the embedded node template.
func Template() (*Config, error) {
	var cfg Config
	if err := DecodeStrict(bytes.NewReader(nodestemplate.Default), FormatJSON, &cfg); err != nil {
		return nil, errors.NewConfigError(nodestemplate.DefaultFile, string(FormatJSON), err)
	}
	return &cfg, nil
}

// MinerTemplate decodes the embedded miner template.
func MinerTemplate() (*MinerConfig, error) {
	var cfg MinerConfig
	if err := DecodeStrict(bytes.NewReader(nodestemplate.Miner), FormatJSON, &cfg); err != nil {
		return nil, errors.NewConfigError(nodestemplate.MinerFile, string(FormatJSON), err)
	}
	return &cfg, nil
}

// Load reads the node document at path over DefaultConfig, so keys missing from the
// file keep their default values. The format follows the file extension.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Comments = nil
	if err := decodeFile(path, "config file", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadMiner reads the miner document at path over DefaultMinerConfig.
func LoadMiner(path string) (*MinerConfig, error) {
	cfg := DefaultMinerConfig()
	if err := decodeFile(path, "miner config file", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path, resource string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError(resource, path)
		}
		return errors.WrapCode(err, errors.CodeStorageError, "failed to open "+resource)
	}
	defer f.Close()

	format := FormatFromPath(path)
	if err := DecodeStrict(f, format, out); err != nil {
		return errors.NewConfigError(path, string(format), err)
	}
	return nil
}
