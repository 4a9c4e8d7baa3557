package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for lexy.
type Config struct {
	Index    IndexConfig    `yaml:"index"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// IndexConfig holds indexing and ranking configuration.
type IndexConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	ChunkWords   int      `yaml:"chunk_words"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
	K1           float64  `yaml:"k1"`
	B            float64  `yaml:"b"`
	Delta        float64  `yaml:"delta"`
}

// RetrieveConfig holds query-time configuration.
type RetrieveConfig struct {
	TopK           int `yaml:"top_k"`
	FuzzyThreshold int `yaml:"fuzzy_threshold"`
	FallbackK      int `yaml:"fallback_k"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes:     []string{"**/*.md", "**/*.markdown", "**/*.txt", "**/*.yaml", "**/*.yml", "**/*.json", "**/*.csv"},
			Excludes:     []string{"**/.*", "**/.*/**"},
			ChunkWords:   500,
			ChunkOverlap: 50,
			K1:           1.5,
			B:            0.75,
			Delta:        0.5,
		},
		Retrieve: RetrieveConfig{
			TopK:           5,
			FuzzyThreshold: 65,
			FallbackK:      3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a data directory, looking for
// lexy.yaml then .lexy/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "lexy.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, CacheDirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CacheDirName is the hidden directory under the data dir that holds the
// serialized index and manifest.
const CacheDirName = ".lexy"

// IndexDBPath returns the path to the index database for a data dir.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, CacheDirName, "index.db")
}

// EnsureCacheDir ensures the cache directory exists.
func EnsureCacheDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, CacheDirName), 0755)
}
