package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

const (
	envPrefix         = "SIMPLEPOOL"
	defaultConfigName = ".simplepool"
	defaultDataDir    = ".simplepool"
	defaultLogLevel   = "info"
)

// Flag names double as viper keys, config file keys and, upper-cased with
// underscores, SIMPLEPOOL_* environment variables.
const (
	keyNetwork        = "network"
	keyRPCURL         = "rpc-url"
	keyMirrorURL      = "mirror-url"
	keyMirrorAPIKey   = "mirror-api-key"
	keyArtifacts      = "artifacts"
	keyDataDir        = "data-dir"
	keyGasLimit       = "gas-limit"
	keyReceiptTimeout = "receipt-timeout"
	keyLogLevel       = "log-level"
	keyJSON           = "json"
	keyConfig         = "config"
)

var validate = validator.New()

type settings struct {
	Network        string        `mapstructure:"network" validate:"required"`
	RPCURL         string        `mapstructure:"rpc-url" validate:"omitempty,url"`
	MirrorURL      string        `mapstructure:"mirror-url" validate:"omitempty,url"`
	MirrorAPIKey   string        `mapstructure:"mirror-api-key"`
	Artifacts      string        `mapstructure:"artifacts"`
	DataDir        string        `mapstructure:"data-dir" validate:"required"`
	GasLimit       uint64        `mapstructure:"gas-limit" validate:"lte=9223372036854775807"`
	ReceiptTimeout time.Duration `mapstructure:"receipt-timeout"`
	LogLevel       string        `mapstructure:"log-level" validate:"oneof=trace debug info warn error"`
	JSON           bool          `mapstructure:"json"`
}

func registerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(keyNetwork, shared.NetworkLocalhost, "network name: localhost, hardhat, sepolia, hedera-testnet, hedera-mainnet")
	flags.String(keyRPCURL, "", "JSON-RPC endpoint overriding the network default")
	flags.String(keyMirrorURL, "", "mirror node base URL for Hedera networks")
	flags.String(keyMirrorAPIKey, "", "mirror node API key sent as a bearer token")
	flags.String(keyArtifacts, "", "directory of compiled Hardhat or Foundry artifacts")
	flags.String(keyDataDir, defaultDataDir, "directory holding the deployments database")
	flags.Uint64(keyGasLimit, 0, "gas limit per transaction (0 estimates)")
	flags.Duration(keyReceiptTimeout, 2*time.Minute, "how long to wait for each transaction receipt")
	flags.String(keyLogLevel, defaultLogLevel, "log level: trace, debug, info, warn, error")
	flags.Bool(keyJSON, false, "print machine-readable JSON and log as JSON")
	flags.String(keyConfig, "", "config file (default: ./.simplepool.yaml when present)")
}

// loadSettings resolves settings with flags over SIMPLEPOOL_* variables over
// the config file over defaults. NETWORK is accepted as a fallback for
// SIMPLEPOOL_NETWORK.
func loadSettings(v *viper.Viper, cmd *cobra.Command) (settings, error) {
	shared.LoadDotEnv()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyNetwork, envPrefix+"_NETWORK", "NETWORK"); err != nil {
		return settings{}, fmt.Errorf("bind network env: %w", err)
	}

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlags(flags); err != nil {
		return settings{}, fmt.Errorf("bind flags: %w", err)
	}

	if configFile := v.GetString(keyConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return settings{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var resolved settings
	if err := v.Unmarshal(&resolved); err != nil {
		return settings{}, fmt.Errorf("decode settings: %w", err)
	}
	resolved.LogLevel = strings.ToLower(strings.TrimSpace(resolved.LogLevel))
	if err := validate.Struct(resolved); err != nil {
		return settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	if resolved.ReceiptTimeout < 0 {
		return settings{}, fmt.Errorf("invalid settings: receipt-timeout must not be negative")
	}
	return resolved, nil
}

func (resolved settings) level() zerolog.Level {
	level, err := zerolog.ParseLevel(resolved.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
