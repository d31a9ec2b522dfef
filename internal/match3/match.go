package match3

import "sort"

// DefaultMinRun is the shortest straight run that counts as a match.
const DefaultMinRun = 3

// MatchGroup is one connected set of matched cells sharing a symbol.
// Cells are sorted row-major.
type MatchGroup struct {
	Symbol Symbol
	Cells  []Coord
}

// Size returns the number of cells in the group.
func (m MatchGroup) Size() int { return len(m.Cells) }

// Matcher finds the match groups on a grid without modifying it.
type Matcher interface {
	FindMatches(g *Grid) []MatchGroup
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(g *Grid) []MatchGroup

// FindMatches calls f.
func (f MatcherFunc) FindMatches(g *Grid) []MatchGroup { return f(g) }

// RunMatcher marks every horizontal or vertical run of at least MinRun
// identical symbols, then merges marked cells that touch orthogonally and
// share a symbol into groups. An L, T or cross of runs is one group, and
// a matched cell can pull in a touching marked cell of the same symbol
// from a different run.
type RunMatcher struct {
	MinRun int
}

// FindMatches implements Matcher. Groups are ordered by their first cell.
func (m RunMatcher) FindMatches(g *Grid) []MatchGroup {
	minRun := m.MinRun
	if minRun <= 0 {
		minRun = DefaultMinRun
	}

	marked := make([]bool, len(g.cells))
	g.markRuns(marked, minRun, 0, 1)
	g.markRuns(marked, minRun, 1, 0)

	visited := make([]bool, len(g.cells))
	var groups []MatchGroup
	// Scanning in row-major order means each group is discovered through
	// its smallest cell, so groups come out already sorted.
	for start := range g.cells {
		if !marked[start] || visited[start] {
			continue
		}
		groups = append(groups, g.flood(start, marked, visited))
	}
	return groups
}

// markRuns scans every line along (dr, dc) and marks runs of at least minRun.
func (g *Grid) markRuns(marked []bool, minRun, dr, dc int) {
	lines, length := g.rows, g.cols
	if dr == 1 {
		lines, length = g.cols, g.rows
	}
	for line := 0; line < lines; line++ {
		cell := func(i int) (int, int) {
			if dr == 1 {
				return i, line
			}
			return line, i
		}
		i := 0
		for i < length {
			r, c := cell(i)
			s := g.cells[g.index(r, c)]
			end := i + 1
			if s != Empty {
				for end < length {
					er, ec := cell(end)
					if g.cells[g.index(er, ec)] != s {
						break
					}
					end++
				}
				if end-i >= minRun {
					for k := i; k < end; k++ {
						kr, kc := cell(k)
						marked[g.index(kr, kc)] = true
					}
				}
			}
			i = end
		}
	}
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// flood collects the marked, same-symbol component containing start using
// an explicit worklist.
func (g *Grid) flood(start int, marked, visited []bool) MatchGroup {
	sym := g.cells[start]
	group := MatchGroup{Symbol: sym}

	queue := []int{start}
	visited[start] = true
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		r, c := idx/g.cols, idx%g.cols
		group.Cells = append(group.Cells, Coord{Row: r, Col: c})

		for _, d := range neighbours {
			nr, nc := r+d[0], c+d[1]
			if !g.InBounds(nr, nc) {
				continue
			}
			n := g.index(nr, nc)
			if visited[n] || !marked[n] || g.cells[n] != sym {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	sort.Slice(group.Cells, func(i, j int) bool {
		return group.Cells[i].Less(group.Cells[j])
	})
	return group
}

// SortGroups orders groups by their smallest cell, top-to-bottom then
// left-to-right. Each group's cells must already be sorted.
func SortGroups(groups []MatchGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Cells, groups[j].Cells
		if len(a) == 0 || len(b) == 0 {
			return len(a) > len(b)
		}
		return a[0].Less(b[0])
	})
}

// FindMatches scans g with the default RunMatcher.
func FindMatches(g *Grid) []MatchGroup {
	return RunMatcher{MinRun: DefaultMinRun}.FindMatches(g)
}
