package shared

import (
	"fmt"
	"math/big"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkLocalhost     = "localhost"
	NetworkHardhat       = "hardhat"
	NetworkSepolia       = "sepolia"
	NetworkHederaTestnet = "hedera-testnet"
	NetworkHederaMainnet = "hedera-mainnet"

	HederaTestnet = "testnet"
	HederaMainnet = "mainnet"
)

// NetworkKind selects the execution backend for a network.
type NetworkKind string

const (
	KindEVM    NetworkKind = "evm"
	KindHedera NetworkKind = "hedera"
)

// Network describes a deployment target.
type Network struct {
	Name    string
	Kind    NetworkKind
	RPCURL  string
	ChainID *big.Int
}

// IsHedera reports whether the network is served by the Hedera backend.
func (network Network) IsHedera() bool {
	return network.Kind == KindHedera
}

// HederaName returns the hedera-sdk network name (testnet or mainnet).
func (network Network) HederaName() string {
	if network.Name == NetworkHederaMainnet {
		return HederaMainnet
	}
	return HederaTestnet
}

var knownNetworks = map[string]Network{
	NetworkLocalhost: {
		Name:    NetworkLocalhost,
		Kind:    KindEVM,
		RPCURL:  "http://127.0.0.1:8545",
		ChainID: big.NewInt(31337),
	},
	NetworkSepolia: {
		Name:    NetworkSepolia,
		Kind:    KindEVM,
		RPCURL:  "https://ethereum-sepolia-rpc.publicnode.com",
		ChainID: big.NewInt(11155111),
	},
	NetworkHederaTestnet: {
		Name:    NetworkHederaTestnet,
		Kind:    KindHedera,
		RPCURL:  "https://testnet.hashio.io/api",
		ChainID: big.NewInt(296),
	},
	NetworkHederaMainnet: {
		Name:    NetworkHederaMainnet,
		Kind:    KindHedera,
		RPCURL:  "https://mainnet.hashio.io/api",
		ChainID: big.NewInt(295),
	},
}

// NormalizeNetwork returns the canonical network name. An empty name selects
// the local development node.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" || normalized == NetworkHardhat {
		return NetworkLocalhost, nil
	}

	if _, ok := knownNetworks[normalized]; !ok {
		return "", fmt.Errorf("unsupported network %q", network)
	}
	return normalized, nil
}

// ResolveNetwork returns the network definition, with rpcOverride replacing
// the default RPC endpoint when set.
func ResolveNetwork(network string, rpcOverride string) (Network, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return Network{}, err
	}

	resolved := knownNetworks[normalized]
	resolved.ChainID = new(big.Int).Set(resolved.ChainID)
	if override := strings.TrimSpace(rpcOverride); override != "" {
		resolved.RPCURL = override
	}
	return resolved, nil
}

// NormalizeHederaNetwork maps Hedera network aliases to testnet or mainnet.
func NormalizeHederaNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	switch normalized {
	case "", HederaTestnet, NetworkHederaTestnet:
		return HederaTestnet, nil
	case HederaMainnet, NetworkHederaMainnet:
		return HederaMainnet, nil
	default:
		return "", fmt.Errorf("unsupported hedera network %q", network)
	}
}

// NewHederaClient creates a new hedera client for the given network.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeHederaNetwork(network)
	if err != nil {
		return nil, err
	}

	if normalized == HederaMainnet {
		return hedera.ClientForMainnet(), nil
	}

	return hedera.ClientForTestnet(), nil
}
