// Package domain defines core data structures used throughout earnwatch.
package domain

import "fmt"

// Pair trading pair used to price an earn asset in the stablecoin.
type Pair struct {
	// From base currency symbol.
	From string
	// To quote currency symbol.
	To string
}

// NewPair builds the pair that prices asset in quote.
func NewPair(asset, quote string) Pair {
	return Pair{From: asset, To: quote}
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation, e.g. BTCUSDT.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
