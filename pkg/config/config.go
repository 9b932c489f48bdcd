/*
Package config manages TOML config for the nextword services.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/internal/utils"
	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Corpus CorpusConfig `toml:"corpus"`
	Server ServerConfig `toml:"server"`
}

// EngineConfig holds prediction engine options.
type EngineConfig struct {
	Scorer           string `toml:"scorer"`
	MaxCandidates    int    `toml:"max_candidates"`
	MatchSample      int    `toml:"match_sample"`
	SampleSize       int    `toml:"sample_size"`
	BackoffTimeoutMs int    `toml:"backoff_timeout_ms"`
	Seed             int64  `toml:"seed"`
}

// CorpusConfig holds corpus residency options.
type CorpusConfig struct {
	DataDir   string `toml:"data_dir"`
	Ephemeral bool   `toml:"ephemeral"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTextLen int    `toml:"max_text_len"`
	HTTPAddr   string `toml:"http_addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Scorer:           "single",
			MaxCandidates:    predict.DefaultMaxCandidates,
			MatchSample:      predict.DefaultMatchSample,
			SampleSize:       corpus.DefaultSampleSize,
			BackoffTimeoutMs: 0,
			Seed:             0,
		},
		Corpus: CorpusConfig{
			DataDir:   "data/",
			Ephemeral: false,
		},
		Server: ServerConfig{
			MaxTextLen: 256,
			HTTPAddr:   "",
		},
	}
}

// EngineOptions maps the config onto predict.Options.
func (c *Config) EngineOptions() predict.Options {
	mode := corpus.Resident
	if c.Corpus.Ephemeral {
		mode = corpus.Ephemeral
	}
	return predict.Options{
		DataDir:        c.Corpus.DataDir,
		Mode:           mode,
		SampleSize:     c.Engine.SampleSize,
		MatchSample:    c.Engine.MatchSample,
		MaxCandidates:  c.Engine.MaxCandidates,
		Scorer:         c.Engine.Scorer,
		Seed:           c.Engine.Seed,
		BackoffTimeout: time.Duration(c.Engine.BackoffTimeoutMs) * time.Millisecond,
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/nextword
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "nextword")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/nextword/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
