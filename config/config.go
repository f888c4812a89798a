package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Inputs  InputsConfig  `json:"inputs"`
	Oracle  OracleConfig  `json:"oracle"`
	Geocode GeocodeConfig `json:"geocode"`
	Windows WindowsConfig `json:"windows"`
	Metrics MetricsConfig `json:"metrics"`
	MQTT    MQTTConfig    `json:"mqtt"`
	Report  ReportConfig  `json:"report"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fa_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Geocode.SetDefaults(cfg.Oracle)
	cfg.Metrics.SetDefaults()
	cfg.Report.SetDefaults()
	if err := cfg.Inputs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Oracle.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Windows.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Report.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
