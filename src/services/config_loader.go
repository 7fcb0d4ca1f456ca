package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

type configDocument struct {
	Configurations []optionmodels.OptionConfig `json:"configurations" yaml:"configurations"`
}

func unmarshalConfig(data []byte, ext string, v interface{}) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// LoadOptionConfigs reads option configurations from a JSON or YAML file.
// The document may be a single configuration, a list, or a wrapper with a
// top-level configurations key.
func LoadOptionConfigs(filePath string) ([]optionmodels.OptionConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("LoadOptionConfigs: failed to read %s: %w", filePath, err)
	}

	ext := filepath.Ext(filePath)

	var document configDocument
	if err := unmarshalConfig(data, ext, &document); err == nil && len(document.Configurations) > 0 {
		return document.Configurations, nil
	}

	var configs []optionmodels.OptionConfig
	if err := unmarshalConfig(data, ext, &configs); err == nil && len(configs) > 0 {
		return configs, nil
	}

	var config optionmodels.OptionConfig
	if err := unmarshalConfig(data, ext, &config); err != nil {
		return nil, fmt.Errorf("LoadOptionConfigs: failed to parse %s: %w", filePath, err)
	}

	return []optionmodels.OptionConfig{config}, nil
}
