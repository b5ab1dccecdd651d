// Package evm implements chain.Backend over an Ethereum JSON-RPC endpoint
// using go-ethereum. Transactions are signed locally with a single ECDSA key
// and each call waits for its receipt before returning, so a sequence of
// calls executes strictly in order.
//
//	backend, err := evm.NewBackend(ctx, evm.Config{
//		RPCURL:     "http://127.0.0.1:8545",
//		PrivateKey: os.Getenv("PRIVATE_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	defer backend.Close()
package evm
