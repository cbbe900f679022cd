package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile holds cache geometry loadable from a YAML file. Zero-valued
// fields mean "not set in YAML" and do not override CLI flags. The
// policy is kept as a string here and parsed by the caller so that flag
// and file values merge before validation.
type ConfigFile struct {
	CacheSize     int    `yaml:"cache_size"`
	BlockSize     int    `yaml:"block_size"`
	Associativity int    `yaml:"associativity"`
	Policy        string `yaml:"policy"`
}

// LoadConfigFile reads and parses a YAML cache configuration file.
// Parsing is strict: unknown keys are errors, so typos surface instead
// of silently falling back to defaults.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache config: %w", err)
	}
	var file ConfigFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing cache config: %w", err)
	}
	return &file, nil
}
