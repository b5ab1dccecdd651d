// Package shared provides common utilities used across the SimplePool SDK for
// Go. It includes the network registry, operator environment variable
// loading, private key parsing, Hedera client construction and token unit
// conversion helpers.
//
// This package is typically used internally by the backend and CLI packages
// but is also available for direct use when wiring a custom backend.
//
// # Environment Variables
//
// Operator credentials are loaded from environment variables or from the
// first .env file found walking up from the working directory:
//
//	SIMPLEPOOL_NETWORK   localhost | hardhat | sepolia | hedera-testnet | hedera-mainnet
//	SIMPLEPOOL_PRIVATE_KEY, DEPLOYER_PRIVATE_KEY, PRIVATE_KEY
//	<NETWORK>_PRIVATE_KEY (for example SEPOLIA_PRIVATE_KEY)
//	HEDERA_ACCOUNT_ID, OPERATOR_ID (Hedera networks only)
package shared
