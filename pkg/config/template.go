package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	nodestemplate "github.com/Osub/ckb/nodes_template"
	"github.com/Osub/ckb/pkg/errors"
)

// TemplateOptions controls WriteTemplate.
type TemplateOptions struct {
	Format Format // JSON copies the embedded template byte for byte; YAML re-encodes it
	Miner  bool   // Also write the miner document
	Force  bool   // Overwrite existing files
}

// WriteTemplate materialises the node template (and optionally the miner template)
// into dir and returns the written paths. Files are replaced atomically. Existing
// files are left untouched unless opts.Force is set.
func WriteTemplate(dir string, opts TemplateOptions) ([]string, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}

	type doc struct {
		name string
		raw  []byte
		load func() (interface{}, error)
	}
	docs := []doc{{
		name: "default",
		raw:  nodestemplate.Default,
		load: func() (interface{}, error) { return Template() },
	}}
	if opts.Miner {
		docs = append(docs, doc{
			name: "miner",
			raw:  nodestemplate.Miner,
			load: func() (interface{}, error) { return MinerTemplate() },
		})
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapCode(err, errors.CodeStorageError, "failed to create "+dir)
	}

	// Check every target first so a conflict never leaves a half written set.
	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = filepath.Join(dir, d.name+opts.Format.Ext())
		if _, err := os.Stat(paths[i]); err == nil && !opts.Force {
			return nil, errors.NewConflictError("config file", paths[i])
		}
	}

	for i, d := range docs {
		data := d.raw
		if opts.Format != FormatJSON {
			v, err := d.load()
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := Encode(&buf, opts.Format, v); err != nil {
				return nil, errors.WrapCode(err, errors.CodeSerializationError, "failed to encode "+d.name)
			}
			data = buf.Bytes()
		}
		if err := renameio.WriteFile(paths[i], data, 0644); err != nil {
			return nil, errors.WrapCode(err, errors.CodeStorageError, "failed to write "+paths[i])
		}
	}
	return paths, nil
}
