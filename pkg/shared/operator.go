package shared

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/joho/godotenv"
)

type OperatorConfig struct {
	Network    string
	PrivateKey string
	AccountID  string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv resolves the signer configuration from the
// environment, loading a .env file first when one is present.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()
	return OperatorConfigForNetwork(firstNonEmptyEnv("SIMPLEPOOL_NETWORK", "NETWORK"))
}

// OperatorConfigForNetwork resolves the signer for an explicit network,
// ignoring SIMPLEPOOL_NETWORK and NETWORK.
func OperatorConfigForNetwork(name string) (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network, err := NormalizeNetwork(name)
	if err != nil {
		return OperatorConfig{}, err
	}

	privateKey := firstNonEmptyEnv("SIMPLEPOOL_PRIVATE_KEY", "DEPLOYER_PRIVATE_KEY", "PRIVATE_KEY")
	if scopedKey := firstNonEmptyEnv(networkEnvPrefix(network) + "_PRIVATE_KEY"); scopedKey != "" {
		privateKey = scopedKey
	}
	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("SIMPLEPOOL_PRIVATE_KEY is required")
	}

	config := OperatorConfig{
		Network:    network,
		PrivateKey: privateKey,
	}

	if knownNetworks[network].Kind == KindHedera {
		config.AccountID = firstNonEmptyEnv("HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID")
		if config.AccountID == "" {
			return OperatorConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required for network %s", network)
		}
	}

	return config, nil
}

// LoadDotEnv loads the nearest .env file without overriding variables that
// are already set. It is safe to call more than once.
func LoadDotEnv() {
	loadDotEnvIfPresent()
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		current := cwd
		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				_ = godotenv.Load(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func networkEnvPrefix(network string) string {
	return strings.ToUpper(strings.ReplaceAll(network, "-", "_"))
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParseECDSAPrivateKey parses a secp256k1 private key in hex, with or without
// the 0x prefix.
func ParseECDSAPrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}
	candidate = strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")

	key, err := crypto.HexToECDSA(candidate)
	if err != nil {
		return nil, fmt.Errorf("invalid ECDSA private key: %w", err)
	}
	return key, nil
}

// ParseHederaPrivateKey parses a Hedera operator key as ED25519, ECDSA, or
// any DER encoding the SDK understands.
func ParseHederaPrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}
