// The SimplePool SDK for Go deploys and drives a minimal two-token liquidity
// pool: two fixed-supply SimpleToken contracts and a SimplePool that mints LP
// tokens and swaps between them. It runs against any Ethereum JSON-RPC
// endpoint through go-ethereum, and against Hedera through the Hedera smart
// contract service.
//
// # Packages
//
//   - pkg/simplepool: deploy tokens and pool, seed liquidity, swap, add liquidity
//   - pkg/contracts: embedded ABIs and Hardhat/Foundry artifact loading
//   - pkg/chain: the Backend interface every execution environment implements
//   - pkg/evm: go-ethereum JSON-RPC backend
//   - pkg/hedera: Hedera smart contract service backend
//   - pkg/backend: picks the backend for a network
//   - pkg/mirror: Hedera mirror node client
//   - pkg/deployments: local SQLite registry of deployed addresses
//   - pkg/shared: networks, operator environment, unit conversion
//
// # Command line
//
//	go install github.com/hashgraph-online/simplepool-sdk-go/cmd/simplepool@latest
//	simplepool deploy --network localhost --artifacts ./artifacts
//	simplepool swap --amount 10 --token-in A
//	simplepool add-liquidity --amount-a 5 --amount-b 5
//
// # Installation
//
//	go get github.com/hashgraph-online/simplepool-sdk-go@latest
package simplepool_sdk_go
