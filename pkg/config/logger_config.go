package config

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	File   string `json:"file" yaml:"file"`     // Log file; relative to data_dir, empty disables it
	Filter string `json:"filter" yaml:"filter"` // e.g. "info,chain=debug"
	Color  bool   `json:"color" yaml:"color"`   // Colored console output
}
