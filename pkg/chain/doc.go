// Package chain defines the execution backend contract shared by the EVM and
// Hedera implementations: deploy a contract, send a state-changing call and
// wait for it to be confirmed, or perform a read-only call.
package chain
