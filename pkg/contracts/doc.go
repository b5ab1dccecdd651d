// Package contracts holds the contract interface surface driven by the SDK:
// embedded ABIs for SimpleToken and SimplePool, and loaders for compiled
// Hardhat or Foundry artifacts that carry deployable bytecode.
//
// The embedded ABIs are enough to interact with contracts that are already
// deployed. Deploying requires artifacts produced by the contract build:
//
//	set, err := contracts.LoadSet("./artifacts")
//	if err != nil {
//		return err
//	}
//	if !set.Token.Deployable() {
//		return fmt.Errorf("token artifact has no bytecode")
//	}
package contracts
