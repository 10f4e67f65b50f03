// Package models holds the data types shared across the wallet core:
// coins in micro-units, display coins, and the base account info required
// to order a transaction.
package models

// Coin is an amount of a single denomination. Amount is a non-negative
// base-10 integer string in micro-units (1e6 micro = 1 display unit).
// Amounts can exceed 2^53 so they are never parsed into floats.
type Coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// DisplayCoin is a coin formatted for presentation, e.g. {"1,234.567890", "Luna"}.
type DisplayCoin struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Base carries the account info a transaction body needs to be accepted by
// the chain. Sequence must reflect the latest chain state at the moment of
// use; a stale sequence is rejected at the node.
type Base struct {
	From          string `json:"from"`
	ChainID       string `json:"chain_id"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`
}
