package match3

import "fmt"

// Generator produces symbols for refilled cells.
type Generator interface {
	Next(g *Grid, row, col int) Symbol
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(g *Grid, row, col int) Symbol

// Next calls f.
func (f GeneratorFunc) Next(g *Grid, row, col int) Symbol { return f(g, row, col) }

// SafeGenerator refills with symbols that do not complete a run against
// the current neighbours.
type SafeGenerator struct {
	Symbols int
	Rand    Source
}

// Next picks uniformly among the symbols that would not match at (row, col).
func (s SafeGenerator) Next(g *Grid, row, col int) Symbol {
	allowed := make([]Symbol, 0, s.Symbols)
	for sym := Symbol(0); int(sym) < s.Symbols; sym++ {
		if !g.WouldMatch(row, col, sym) {
			allowed = append(allowed, sym)
		}
	}
	if len(allowed) == 0 {
		return Symbol(s.Rand.Intn(s.Symbols))
	}
	return allowed[s.Rand.Intn(len(allowed))]
}

// RandomGenerator refills with uniformly random symbols, so a refill may
// start a new cascade on its own.
type RandomGenerator struct {
	Symbols int
	Rand    Source
}

// Next returns a random symbol.
func (r RandomGenerator) Next(_ *Grid, _, _ int) Symbol {
	return Symbol(r.Rand.Intn(r.Symbols))
}

// Refill rule names accepted by NewGenerator.
const (
	RefillSafe   = "safe"
	RefillRandom = "random"
)

// NewGenerator returns the generator for a refill rule name.
func NewGenerator(rule string, symbols int, rng Source) (Generator, error) {
	switch rule {
	case RefillSafe, "":
		return SafeGenerator{Symbols: symbols, Rand: rng}, nil
	case RefillRandom:
		return RandomGenerator{Symbols: symbols, Rand: rng}, nil
	default:
		return nil, fmt.Errorf("match3: unknown refill rule %q", rule)
	}
}
