// Package simplepool drives the SimpleToken and SimplePool contracts through
// a chain.Backend. It deploys the two tokens and the pool, seeds initial
// liquidity, swaps and adds liquidity. Every transaction is confirmed before
// the next one is sent, and long flows report progress through an optional
// callback instead of logging.
package simplepool
