package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
)

// runResolver fills addresses that were not passed as flags from the newest
// run that recorded a pool, so a pool is never paired with tokens from a
// different deployment.
type runResolver struct {
	application *app
	store       *deployments.Store
	run         *deployments.Run
}

func (application *app) newRunResolver(store *deployments.Store) *runResolver {
	return &runResolver{application: application, store: store}
}

// address returns the explicit flag value when it is set, otherwise the
// address recorded for role in the newest complete run.
func (resolver *runResolver) address(
	ctx context.Context,
	flagName string,
	explicit string,
	role string,
) (common.Address, error) {
	if value := strings.TrimSpace(explicit); value != "" {
		return parseAddress(flagName, value)
	}

	network := resolver.application.network.Name
	if resolver.run == nil {
		run, err := resolver.store.LatestRunWith(ctx, network, deployments.RolePool)
		if errors.Is(err, deployments.ErrNotFound) {
			return common.Address{}, fmt.Errorf(
				"no %s recorded for %s; run deploy first or pass --%s",
				role,
				network,
				flagName,
			)
		}
		if err != nil {
			return common.Address{}, err
		}
		resolver.run = &run
	}

	value, ok := resolver.run.Address(role)
	if !ok {
		return common.Address{}, fmt.Errorf(
			"run %s has no %s; pass --%s",
			resolver.run.ID,
			role,
			flagName,
		)
	}
	return parseAddress(role, value)
}

func parseAddress(name string, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s %q is not a valid address", name, value)
	}
	return common.HexToAddress(value), nil
}

func parseOptionalAddress(name string, value string) (common.Address, error) {
	if strings.TrimSpace(value) == "" {
		return common.Address{}, nil
	}
	return parseAddress(name, strings.TrimSpace(value))
}

// tokenRole maps the A/B shorthand to a deployment role.
func tokenRole(side string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(side)) {
	case "A":
		return deployments.RoleTokenA, nil
	case "B":
		return deployments.RoleTokenB, nil
	default:
		return "", fmt.Errorf("token-in must be A or B, got %q", side)
	}
}
