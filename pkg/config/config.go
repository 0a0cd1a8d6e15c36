// Package config provides a reusable loader for the AMM node's configuration
// file and environment variables, versioned so applications can depend on a
// stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"synnergy-network/amm/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for an AMM node: the fee schedule, the
// path-length bound, the seed admission set, the CLI data directory, the API
// listen address and logging settings.
type Config struct {
	Fee struct {
		Num uint64 `mapstructure:"num" json:"num"`
		Den uint64 `mapstructure:"den" json:"den"`
	} `mapstructure:"fee" json:"fee"`

	MaxHops int `mapstructure:"max_hops" json:"max_hops"`

	// SeedPairs lists "assetA:assetB" entries admitted for trading at
	// startup, mirroring the bootstrap_peers style list the source config
	// uses for network seeding.
	SeedPairs []string `mapstructure:"seed_pairs" json:"seed_pairs"`

	CLI struct {
		DataDir string `mapstructure:"data_dir" json:"data_dir"`
	} `mapstructure:"cli" json:"cli"`

	API struct {
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"api" json:"api"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

func defaults() Config {
	var c Config
	c.Fee.Num = 3
	c.Fee.Den = 1000
	c.MaxHops = 3
	c.CLI.DataDir = "."
	c.API.ListenAddr = ":8090"
	c.Logging.Level = "info"
	return c
}

// Load reads config/<env>.yaml (defaulting to config/default.yaml), merges
// a .env file if present, and applies AMM_* environment variable overrides.
// The resulting configuration is stored in AppConfig and returned.
func Load(env string) (*Config, error) {
	AppConfig = defaults()

	_ = godotenv.Load(".env")

	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, utils.Wrap(err, "load config")
		}
	}
	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
			}
		}
	}

	viper.SetEnvPrefix("AMM")
	viper.AutomaticEnv()
	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}

	AppConfig.Fee.Num = utils.EnvOrDefaultUint64("AMM_FEE_NUM", AppConfig.Fee.Num)
	AppConfig.Fee.Den = utils.EnvOrDefaultUint64("AMM_FEE_DEN", AppConfig.Fee.Den)
	AppConfig.MaxHops = utils.EnvOrDefaultInt("AMM_MAX_HOPS", AppConfig.MaxHops)
	AppConfig.CLI.DataDir = utils.EnvOrDefault("AMM_DATA_DIR", AppConfig.CLI.DataDir)
	AppConfig.API.ListenAddr = utils.EnvOrDefault("AMM_API_ADDR", AppConfig.API.ListenAddr)
	AppConfig.Logging.Level = utils.EnvOrDefault("AMM_LOG_LEVEL", AppConfig.Logging.Level)
	if raw := utils.EnvOrDefault("AMM_SEED_PAIRS", ""); raw != "" {
		AppConfig.SeedPairs = strings.Split(raw, ",")
	}

	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the AMM_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("AMM_ENV", ""))
}

// ParsePair splits an "assetA:assetB" seed entry into two asset ids.
func ParsePair(s string) (a, b uint64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid pair %q: want assetA:assetB", s)
	}
	a, err = strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair %q: %w", s, err)
	}
	b, err = strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair %q: %w", s, err)
	}
	return a, b, nil
}
