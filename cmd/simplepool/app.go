package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/backend"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/simplepool"
)

type backendFactory func(ctx context.Context, network shared.Network, settings settings) (chain.Backend, error)

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	viper    *viper.Viper
	settings settings
	network  shared.Network
	logger   zerolog.Logger

	newBackend backendFactory
}

func newApp(stdout io.Writer, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		viper:      viper.New(),
		logger:     newLogger(stderr, zerolog.ErrorLevel, false),
		newBackend: dialBackend,
	}
}

// dialBackend connects to the network with the operator from the environment.
func dialBackend(ctx context.Context, network shared.Network, settings settings) (chain.Backend, error) {
	operator, err := shared.OperatorConfigForNetwork(network.Name)
	if err != nil {
		return nil, err
	}

	return backend.Open(ctx, backend.Options{
		Network:        network,
		Operator:       operator,
		GasLimit:       settings.GasLimit,
		ReceiptTimeout: settings.ReceiptTimeout,
		MirrorBaseURL:  settings.MirrorURL,
		MirrorAPIKey:   settings.MirrorAPIKey,
	})
}

// openClient builds the backend and a pool client over it. The caller closes
// the returned backend.
func (application *app) openClient(ctx context.Context) (*simplepool.Client, chain.Backend, error) {
	artifacts, err := contracts.LoadSet(application.settings.Artifacts)
	if err != nil {
		return nil, nil, err
	}

	chainBackend, err := application.newBackend(ctx, application.network, application.settings)
	if err != nil {
		return nil, nil, err
	}

	if expected := application.network.ChainID; expected != nil && chainBackend.ChainID().Cmp(expected) != 0 {
		application.logger.Warn().
			Str("network", application.network.Name).
			Str("expected", expected.String()).
			Str("actual", chainBackend.ChainID().String()).
			Msg("connected chain ID differs from network default")
	}

	client, err := simplepool.NewClient(simplepool.ClientConfig{Backend: chainBackend, Artifacts: &artifacts})
	if err != nil {
		chainBackend.Close()
		return nil, nil, err
	}
	return client, chainBackend, nil
}

func (application *app) openStore(ctx context.Context) (*deployments.Store, error) {
	return deployments.Open(ctx, application.settings.DataDir)
}

func (application *app) printf(format string, args ...any) {
	fmt.Fprintf(application.stdout, format+"\n", args...)
}

func (application *app) printJSON(value any) error {
	encoder := json.NewEncoder(application.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
