// Package match3 holds the board logic for orbfall: the grid of symbols,
// run/cluster match detection and cascade resolution.
//
// The package is pure: no rendering, no timing and no logging. A session
// owns a Grid and drives it through an Engine one step at a time.
package match3

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol identifies an orb type. Values index into the configured palette.
type Symbol int

// Empty marks a cell with no orb.
const Empty Symbol = -1

// Mode selects how the board behaves after cells are removed.
type Mode int

const (
	// ModeEndless refills emptied cells from a Generator.
	ModeEndless Mode = iota
	// ModeClear never refills; the board is won once every cell is empty.
	ModeClear
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEndless:
		return "endless"
	case ModeClear:
		return "clear"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("match3: coordinate out of bounds")
	// ErrBadDimensions is returned when a board cannot be populated at its size.
	ErrBadDimensions = errors.New("match3: bad board dimensions")
	// ErrTooFewSymbols is returned when fewer than three symbol types are configured.
	ErrTooFewSymbols = errors.New("match3: too few symbol types")
)

// Coord addresses a single cell.
type Coord struct {
	Row, Col int
}

// Less reports whether c comes before o in row-major order.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Grid is a rows x cols board stored row-major in a flat slice.
// Dimensions never change after construction.
type Grid struct {
	rows, cols int
	mode       Mode
	cells      []Symbol
}

// NewGrid creates an endless-mode grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Symbol, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g
}

// FromRows builds a grid from explicit rows. All rows must have the same length.
func FromRows(mode Mode, rows [][]Symbol) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrBadDimensions)
	}
	g := NewGrid(len(rows), len(rows[0]))
	g.mode = mode
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadDimensions, r, len(row), g.cols)
		}
		copy(g.cells[r*g.cols:], row)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Mode returns the board mode.
func (g *Grid) Mode() Mode { return g.mode }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

func (g *Grid) checkBounds(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return nil
}

// CellAt returns the symbol at (row, col).
func (g *Grid) CellAt(row, col int) (Symbol, error) {
	if err := g.checkBounds(row, col); err != nil {
		return Empty, err
	}
	return g.cells[g.index(row, col)], nil
}

// Get returns the symbol at (row, col), or Empty outside the grid.
func (g *Grid) Get(row, col int) Symbol {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[g.index(row, col)]
}

// Set writes a symbol. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, s Symbol) {
	if g.InBounds(row, col) {
		g.cells[g.index(row, col)] = s
	}
}

// IsEmpty reports whether (row, col) holds no orb. Out-of-bounds cells count as empty.
func (g *Grid) IsEmpty(row, col int) bool {
	return g.Get(row, col) == Empty
}

// Swap exchanges two cells. It does not check adjacency or whether the
// swap produces a match; callers decide the rules.
func (g *Grid) Swap(r1, c1, r2, c2 int) error {
	if err := g.checkBounds(r1, c1); err != nil {
		return err
	}
	if err := g.checkBounds(r2, c2); err != nil {
		return err
	}
	a, b := g.index(r1, c1), g.index(r2, c2)
	g.cells[a], g.cells[b] = g.cells[b], g.cells[a]
	return nil
}

// Remove empties every listed cell. Nothing is changed if any coordinate
// is out of bounds.
func (g *Grid) Remove(cells []Coord) error {
	for _, c := range cells {
		if err := g.checkBounds(c.Row, c.Col); err != nil {
			return err
		}
	}
	for _, c := range cells {
		g.cells[g.index(c.Row, c.Col)] = Empty
	}
	return nil
}

// Fall records one orb moving down during compaction.
type Fall struct {
	Col      int
	FromRow  int
	ToRow    int
	Distance int
}

// CompactColumn moves every orb in col to the bottom, keeping their
// relative order, and leaves the empties on top. Only cells that actually
// moved are reported.
func (g *Grid) CompactColumn(col int) []Fall {
	if col < 0 || col >= g.cols {
		return nil
	}
	var falls []Fall
	write := g.rows - 1
	for r := g.rows - 1; r >= 0; r-- {
		s := g.cells[g.index(r, col)]
		if s == Empty {
			continue
		}
		if r != write {
			g.cells[g.index(write, col)] = s
			g.cells[g.index(r, col)] = Empty
			falls = append(falls, Fall{Col: col, FromRow: r, ToRow: write, Distance: write - r})
		}
		write--
	}
	return falls
}

// Spawn records a new orb created by a refill.
type Spawn struct {
	Col    int
	Row    int
	Symbol Symbol
	// Drop is the number of empty cells the column had before refilling,
	// i.e. how far above the board the orb enters from.
	Drop int
}

// RefillColumn fills the empty cells at the top of col from gen, lowest
// cell first. It does nothing in clear mode or when gen is nil.
func (g *Grid) RefillColumn(col int, gen Generator) []Spawn {
	if g.mode == ModeClear || gen == nil || col < 0 || col >= g.cols {
		return nil
	}
	top := 0
	for top < g.rows && g.cells[g.index(top, col)] == Empty {
		top++
	}
	spawns := make([]Spawn, 0, top)
	for r := top - 1; r >= 0; r-- {
		s := gen.Next(g, r, col)
		g.cells[g.index(r, col)] = s
		spawns = append(spawns, Spawn{Col: col, Row: r, Symbol: s, Drop: top})
	}
	return spawns
}

// WouldMatch reports whether placing s at (row, col) would complete a
// horizontal or vertical run of three or more with the current neighbours.
func (g *Grid) WouldMatch(row, col int, s Symbol) bool {
	if s == Empty {
		return false
	}
	return g.runThrough(row, col, 0, 1, s) >= 3 || g.runThrough(row, col, 1, 0, s) >= 3
}

// runThrough counts the run of s through (row, col) along (dr, dc),
// treating (row, col) itself as holding s.
func (g *Grid) runThrough(row, col, dr, dc int, s Symbol) int {
	n := 1
	for r, c := row-dr, col-dc; g.Get(r, c) == s; r, c = r-dr, c-dc {
		n++
	}
	for r, c := row+dr, col+dc; g.Get(r, c) == s; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// Remaining returns the number of non-empty cells.
func (g *Grid) Remaining() int {
	n := 0
	for _, s := range g.cells {
		if s != Empty {
			n++
		}
	}
	return n
}

// IsClear reports whether every cell is empty.
func (g *Grid) IsClear() bool {
	return g.Remaining() == 0
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, mode: g.mode, cells: make([]Symbol, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids have the same dimensions, mode and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols || g.mode != o.mode {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, digits for symbols and '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			s := g.cells[g.index(r, c)]
			if s == Empty {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", int(s))
			}
		}
	}
	return sb.String()
}
