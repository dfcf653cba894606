package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	verrors "github.com/odvcencio/vista/pkg/errors"
)

// loadAndMerge reads path and overlays the keys it sets onto cfg.
// Keys absent from the file keep their current values.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return mergeYAML(cfg, data)
}

func mergeYAML(cfg *Config, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return verrors.Wrap(err, verrors.ErrCodeConfigParse, fmt.Sprintf("parsing YAML (%d bytes)", len(data)))
	}
	return nil
}
