// Package backend picks the chain.Backend implementation for a network: the
// Hedera smart contract service for hedera-* networks and go-ethereum
// JSON-RPC for everything else.
package backend

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/evm"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/hedera"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

type Options struct {
	Network        shared.Network
	Operator       shared.OperatorConfig
	GasLimit       uint64
	ReceiptTimeout time.Duration
	MirrorBaseURL  string
	MirrorAPIKey   string
}

// Open connects to the network as the operator.
func Open(ctx context.Context, options Options) (chain.Backend, error) {
	if options.Network.IsHedera() {
		config, err := hederaConfig(options)
		if err != nil {
			return nil, err
		}
		return hedera.NewBackend(ctx, config)
	}

	return evm.NewBackend(ctx, evm.Config{
		RPCURL:         options.Network.RPCURL,
		PrivateKey:     options.Operator.PrivateKey,
		GasLimit:       options.GasLimit,
		ReceiptTimeout: options.ReceiptTimeout,
	})
}

func hederaConfig(options Options) (hedera.Config, error) {
	if options.GasLimit > math.MaxInt64 {
		return hedera.Config{}, fmt.Errorf("gas limit %d exceeds the Hedera maximum of %d", options.GasLimit, int64(math.MaxInt64))
	}
	return hedera.Config{
		Network:            options.Network.HederaName(),
		OperatorAccountID:  options.Operator.AccountID,
		OperatorPrivateKey: options.Operator.PrivateKey,
		MirrorBaseURL:      options.MirrorBaseURL,
		MirrorAPIKey:       options.MirrorAPIKey,
		Gas:                int64(options.GasLimit),
	}, nil
}

// FromEnv resolves the network and operator from the environment and opens
// the matching backend. rpcOverride replaces the network's default RPC URL.
// SIMPLEPOOL_MIRROR_URL and SIMPLEPOOL_MIRROR_API_KEY configure the mirror
// node on Hedera networks.
func FromEnv(ctx context.Context, rpcOverride string) (chain.Backend, error) {
	operator, err := shared.OperatorConfigFromEnv()
	if err != nil {
		return nil, err
	}
	network, err := shared.ResolveNetwork(operator.Network, rpcOverride)
	if err != nil {
		return nil, err
	}
	return Open(ctx, Options{
		Network:       network,
		Operator:      operator,
		MirrorBaseURL: strings.TrimSpace(os.Getenv("SIMPLEPOOL_MIRROR_URL")),
		MirrorAPIKey:  strings.TrimSpace(os.Getenv("SIMPLEPOOL_MIRROR_API_KEY")),
	})
}
