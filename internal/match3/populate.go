package match3

import "fmt"

// MinSymbols is the smallest palette that can always avoid an initial match.
const MinSymbols = 3

// Source is the slice of *rand.Rand the board needs.
type Source interface {
	Intn(n int) int
}

// Populate fills every cell of g and sets its mode.
//
// In endless mode each cell is drawn uniformly from the symbols that do
// not complete a run with the cells already placed. In clear mode every
// symbol gets a count that is a multiple of three (at least three each),
// so the board can in principle be cleared completely.
func (g *Grid) Populate(mode Mode, symbols int, rng Source) error {
	if symbols < MinSymbols {
		return fmt.Errorf("%w: have %d, need %d", ErrTooFewSymbols, symbols, MinSymbols)
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.mode = mode

	if mode == ModeClear {
		return g.populateClear(symbols, rng)
	}
	g.populateFill(symbols, rng)
	return nil
}

func (g *Grid) populateFill(symbols int, rng Source) {
	allowed := make([]Symbol, 0, symbols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			allowed = allowed[:0]
			for s := Symbol(0); int(s) < symbols; s++ {
				if !g.WouldMatch(r, c, s) {
					allowed = append(allowed, s)
				}
			}
			// At most two symbols can be forbidden, so allowed is never
			// empty with three or more symbols.
			g.cells[g.index(r, c)] = allowed[rng.Intn(len(allowed))]
		}
	}
}

// clearBudget returns per-symbol counts for a clear-mode board.
func clearBudget(total, symbols int, rng Source) ([]int, error) {
	if total%3 != 0 || total < 3*symbols {
		return nil, fmt.Errorf("%w: %d cells cannot hold %d symbols in groups of three", ErrBadDimensions, total, symbols)
	}
	counts := make([]int, symbols)
	for i := range counts {
		counts[i] = 3
	}
	for left := total - 3*symbols; left > 0; left -= 3 {
		counts[rng.Intn(symbols)] += 3
	}
	return counts, nil
}

func (g *Grid) populateClear(symbols int, rng Source) error {
	counts, err := clearBudget(g.rows*g.cols, symbols, rng)
	if err != nil {
		return err
	}

	candidates := make([]Symbol, 0, symbols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			candidates = candidates[:0]
			for s := Symbol(0); int(s) < symbols; s++ {
				if counts[s] > 0 && !g.WouldMatch(r, c, s) {
					candidates = append(candidates, s)
				}
			}

			var pick Symbol
			if len(candidates) > 0 {
				pick = candidates[rng.Intn(len(candidates))]
			} else {
				// Only symbols that would match have budget left. Take the
				// first one; the board may then start with a match.
				pick = firstWithBudget(counts)
			}
			counts[pick]--
			g.cells[g.index(r, c)] = pick
		}
	}
	return nil
}

func firstWithBudget(counts []int) Symbol {
	for i, n := range counts {
		if n > 0 {
			return Symbol(i)
		}
	}
	return Empty
}
