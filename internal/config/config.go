package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Analysis defaults
	PreferredTargets []string `mapstructure:"preferred_targets" yaml:"preferred_targets"`
	TopK             int      `mapstructure:"top_k" yaml:"top_k"`
	OutputFormat     string   `mapstructure:"output_format" yaml:"output_format"`
	OutlierThreshold float64  `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	BatchConcurrency int      `mapstructure:"batch_concurrency" yaml:"batch_concurrency"`

	// Loader defaults
	Encoding           string `mapstructure:"encoding" yaml:"encoding"`
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`
	UnitNormalize      bool   `mapstructure:"unit_normalize" yaml:"unit_normalize"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.corrlens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".corrlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.corrlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is loaded first when present.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CORRLENS")
	v.AutomaticEnv()

	v.SetDefault("preferred_targets", []string{"체지방율", "bodyfat"})
	v.SetDefault("top_k", 5)
	v.SetDefault("output_format", "text")
	v.SetDefault("outlier_threshold", 3.5)
	v.SetDefault("batch_concurrency", 4)
	v.SetDefault("encoding", "auto")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("max_rows", 100000)
	v.SetDefault("unit_normalize", true)
	v.SetDefault("log_level", "warn")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a single key from its string form, validating the value.
func (c *Global) Set(key, val string) error {
	switch key {
	case "preferred_targets":
		c.PreferredTargets = splitList(val)
	case "top_k":
		i, err := atoiMin(val, 1)
		if err != nil {
			return fmt.Errorf("invalid int for top_k: %v", val)
		}
		c.TopK = i
	case "output_format":
		switch val {
		case "text", "markdown", "json", "yaml":
			c.OutputFormat = val
		default:
			return fmt.Errorf("invalid output_format: %s (use text|markdown|json|yaml)", val)
		}
	case "outlier_threshold":
		f, err := parsePositive(val)
		if err != nil {
			return fmt.Errorf("invalid float for outlier_threshold: %v", val)
		}
		c.OutlierThreshold = f
	case "batch_concurrency":
		i, err := atoiMin(val, 1)
		if err != nil {
			return fmt.Errorf("invalid int for batch_concurrency: %v", val)
		}
		c.BatchConcurrency = i
	case "encoding":
		c.Encoding = val
	case "delimiter":
		c.Delimiter = val
	case "decimal_separator":
		c.DecimalSeparator = val
	case "thousands_separator":
		c.ThousandsSeparator = val
	case "max_rows":
		i, err := atoiMin(val, 0)
		if err != nil {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "unit_normalize":
		b, err := parseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for unit_normalize: %v", val)
		}
		c.UnitNormalize = b
	case "log_level":
		switch val {
		case "debug", "info", "warn", "error":
			c.LogLevel = val
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
