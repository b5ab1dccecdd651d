// Package hedera implements chain.Backend on the Hedera smart contract
// service. Contracts are created with ContractCreateFlow, called with
// ContractExecuteTransaction and read with ContractCallQuery. The mirror
// node supplies the operator's EVM address and revert details.
package hedera
