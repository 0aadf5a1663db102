package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for configuration documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (allowed: json, yaml)", s)
	}
}

// FormatFromPath picks the format from a file extension; anything but .yaml/.yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// DecodeStrict decodes a single document from a reader and rejects any unknown
// fields. Data after the first JSON value or YAML document is an error.
func DecodeStrict(r io.Reader, format Format, out interface{}) error {
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(out); err != nil {
			if err == io.EOF {
				return fmt.Errorf("empty document")
			}
			return err
		}
		var extra yaml.Node
		if err := decoder.Decode(&extra); err != io.EOF {
			return fmt.Errorf("unexpected content after the first YAML document")
		}
	default:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(out); err != nil {
			if err == io.EOF {
				return fmt.Errorf("empty document")
			}
			return err
		}
		var extra json.RawMessage
		if err := decoder.Decode(&extra); err != io.EOF {
			return fmt.Errorf("unexpected content after the JSON document")
		}
	}
	return nil
}

// Encode writes v in the given format: JSON indented by four spaces, YAML by two.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "    ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(v)
	}
}
