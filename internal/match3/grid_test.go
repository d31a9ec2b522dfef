package match3

import (
	"errors"
	"testing"
)

// gridFrom builds a grid from strings of digits, '.' marking empty cells.
func gridFrom(t *testing.T, mode Mode, rows ...string) *Grid {
	t.Helper()
	layout := make([][]Symbol, len(rows))
	for r, line := range rows {
		layout[r] = make([]Symbol, len(line))
		for c, ch := range line {
			if ch == '.' {
				layout[r][c] = Empty
			} else {
				layout[r][c] = Symbol(ch - '0')
			}
		}
	}
	g, err := FromRows(mode, layout)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return g
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(5, 6)
	if g.Rows() != 5 || g.Cols() != 6 {
		t.Fatalf("dimensions = %dx%d, expected 5x6", g.Rows(), g.Cols())
	}
	if !g.IsClear() {
		t.Errorf("new grid should be clear, has %d cells", g.Remaining())
	}
	if g.Mode() != ModeEndless {
		t.Errorf("Mode() = %v, expected endless", g.Mode())
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows(ModeClear, [][]Symbol{{0, 1}, {2}})
	if !errors.Is(err, ErrBadDimensions) {
		t.Errorf("FromRows(ragged) error = %v, expected ErrBadDimensions", err)
	}
}

func TestCellAtBounds(t *testing.T) {
	g := gridFrom(t, ModeClear, "012", "345")

	tests := []struct {
		name     string
		row, col int
		want     Symbol
		wantErr  bool
	}{
		{"top-left", 0, 0, 0, false},
		{"bottom-right", 1, 2, 5, false},
		{"negative row", -1, 0, Empty, true},
		{"row past end", 2, 0, Empty, true},
		{"col past end", 0, 3, Empty, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.CellAt(tc.row, tc.col)
			if tc.wantErr {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("CellAt(%d, %d) error = %v, expected ErrOutOfBounds", tc.row, tc.col, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CellAt(%d, %d) unexpected error: %v", tc.row, tc.col, err)
			}
			if got != tc.want {
				t.Errorf("CellAt(%d, %d) = %d, expected %d", tc.row, tc.col, got, tc.want)
			}
		})
	}
}

func TestSwap(t *testing.T) {
	g := gridFrom(t, ModeClear, "012", "345")

	if err := g.Swap(0, 0, 1, 2); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	if g.Get(0, 0) != 5 || g.Get(1, 2) != 0 {
		t.Errorf("after Swap grid =\n%s", g)
	}

	before := g.Clone()
	if err := g.Swap(0, 0, 0, 9); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Swap out of bounds error = %v, expected ErrOutOfBounds", err)
	}
	if !g.Equal(before) {
		t.Error("failed Swap should not change the grid")
	}
}

func TestRemove(t *testing.T) {
	g := gridFrom(t, ModeClear, "012", "345")

	if err := g.Remove([]Coord{{0, 1}, {1, 1}}); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if g.String() != "0.2\n3.5" {
		t.Errorf("after Remove grid =\n%s", g)
	}
	if g.Remaining() != 4 {
		t.Errorf("Remaining() = %d, expected 4", g.Remaining())
	}

	before := g.Clone()
	err := g.Remove([]Coord{{0, 0}, {5, 5}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Remove out of bounds error = %v, expected ErrOutOfBounds", err)
	}
	if !g.Equal(before) {
		t.Error("failed Remove should not change the grid")
	}
}

func TestCompactColumn(t *testing.T) {
	g := gridFrom(t, ModeClear, "0", ".", "1", ".")

	falls := g.CompactColumn(0)

	if g.String() != ".\n.\n0\n1" {
		t.Errorf("after CompactColumn grid =\n%s", g)
	}
	expected := []Fall{
		{Col: 0, FromRow: 2, ToRow: 3, Distance: 1},
		{Col: 0, FromRow: 0, ToRow: 2, Distance: 2},
	}
	if len(falls) != len(expected) {
		t.Fatalf("CompactColumn() returned %d falls, expected %d", len(falls), len(expected))
	}
	for i := range expected {
		if falls[i] != expected[i] {
			t.Errorf("fall[%d] = %+v, expected %+v", i, falls[i], expected[i])
		}
	}

	if again := g.CompactColumn(0); len(again) != 0 {
		t.Errorf("compacting a settled column moved %d cells", len(again))
	}
}

func TestRefillColumn(t *testing.T) {
	seven := GeneratorFunc(func(*Grid, int, int) Symbol { return 7 })

	t.Run("clear mode never refills", func(t *testing.T) {
		g := gridFrom(t, ModeClear, ".", "1")
		if spawns := g.RefillColumn(0, seven); spawns != nil {
			t.Errorf("RefillColumn() in clear mode = %v, expected nil", spawns)
		}
		if !g.IsEmpty(0, 0) {
			t.Error("clear mode cell was refilled")
		}
	})

	t.Run("endless mode fills lowest first", func(t *testing.T) {
		g := gridFrom(t, ModeEndless, ".", ".", "1")
		spawns := g.RefillColumn(0, seven)
		if len(spawns) != 2 {
			t.Fatalf("RefillColumn() spawned %d, expected 2", len(spawns))
		}
		if spawns[0].Row != 1 || spawns[1].Row != 0 {
			t.Errorf("spawn rows = %d,%d, expected 1,0", spawns[0].Row, spawns[1].Row)
		}
		for _, s := range spawns {
			if s.Drop != 2 || s.Symbol != 7 {
				t.Errorf("spawn = %+v, expected symbol 7 drop 2", s)
			}
		}
		if g.String() != "7\n7\n1" {
			t.Errorf("after RefillColumn grid =\n%s", g)
		}
	})
}

func TestWouldMatch(t *testing.T) {
	g := gridFrom(t, ModeEndless,
		"11.",
		"2..",
		"2.3",
	)

	tests := []struct {
		name     string
		row, col int
		sym      Symbol
		expected bool
	}{
		{"completes row", 0, 2, 1, true},
		{"different symbol in row", 0, 2, 2, false},
		{"completes column from below", 0, 0, 2, true},
		{"empty symbol never matches", 0, 2, Empty, false},
		{"pair is not a run", 1, 2, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.WouldMatch(tc.row, tc.col, tc.sym); got != tc.expected {
				t.Errorf("WouldMatch(%d, %d, %d) = %v, expected %v", tc.row, tc.col, tc.sym, got, tc.expected)
			}
		})
	}

	vertical := gridFrom(t, ModeEndless, "2", ".", "2")
	if !vertical.WouldMatch(1, 0, 2) {
		t.Error("WouldMatch should detect a symbol bridging a vertical gap")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := gridFrom(t, ModeClear, "01", "23")
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.Set(0, 0, 5)
	if g.Get(0, 0) != 0 {
		t.Error("modifying the clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after modifying clone")
	}
}
