package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape:
//
//	log:
//	  level: debug
//	  format: json
//	relay:
//	  buffer_size: 65536
type fileConfig struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Relay struct {
		BufferSize int `yaml:"buffer_size"`
	} `yaml:"relay"`
}

// LoadFile overlays the YAML file at path onto base. Empty values in the
// file leave base untouched.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, &UsageError{Msg: fmt.Sprintf("reading config %s", path), Err: err}
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, &UsageError{Msg: fmt.Sprintf("parsing config %s", path), Err: err}
	}

	if fc.Log.Level != "" {
		base.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		base.LogFormat = fc.Log.Format
	}
	if fc.Relay.BufferSize != 0 {
		base.BufferSize = fc.Relay.BufferSize
		base.badBufferSize = ""
	}
	return base, nil
}
