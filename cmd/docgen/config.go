package main

import (
	"os"

	"github.com/fwojciec/docdex"
	"gopkg.in/yaml.v3"
)

// Config is the optional docgen.yaml build configuration. Command-line flags
// override any value set here.
type Config struct {
	Version   string   `yaml:"version"`
	Out       string   `yaml:"out"`
	Runtime   string   `yaml:"runtime"`
	Prototype string   `yaml:"prototype"`
	Aux       []string `yaml:"aux"`
}

// LoadConfig reads a YAML build configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "config file %s: %v", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "malformed config %s: %v", path, err)
	}
	return &cfg, nil
}

// resolve merges the command's flags over the loaded config. Flags win.
func (c *BuildCmd) resolve() (*Config, error) {
	cfg := &Config{}
	if c.Config != "" {
		loaded, err := LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.DocVersion != "" {
		cfg.Version = c.DocVersion
	}
	if c.Out != "" {
		cfg.Out = c.Out
	}
	if c.Runtime != "" {
		cfg.Runtime = c.Runtime
	}
	if c.Prototype != "" {
		cfg.Prototype = c.Prototype
	}
	if len(c.Aux) > 0 {
		cfg.Aux = c.Aux
	}

	if cfg.Version == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "a version label is required (--doc-version)")
	}
	if _, err := docdex.ParseVersion(cfg.Version); err != nil {
		return nil, err
	}
	if cfg.Out == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "an output directory is required (--out)")
	}
	if cfg.Runtime == "" && cfg.Prototype == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "at least one stage document is required (--runtime or --prototype)")
	}
	return cfg, nil
}
