// Package mirror provides a Hedera Mirror Node client used by the Hedera
// contract backend. It resolves account and contract EVM addresses and
// fetches contract execution results, including revert messages, from the
// mirror node REST API.
//
// The mirror node provides a read-only view of the Hedera public ledger,
// so lookups here never submit transactions or cost fees.
package mirror
