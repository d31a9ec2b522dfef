package match3

import (
	"reflect"
	"testing"
)

func TestRunMatcher(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected []MatchGroup
	}{
		{
			name: "no runs",
			rows: []string{"001", "110", "001"},
		},
		{
			name: "horizontal three",
			rows: []string{"000", "121", "212"},
			expected: []MatchGroup{
				{Symbol: 0, Cells: []Coord{{0, 0}, {0, 1}, {0, 2}}},
			},
		},
		{
			name: "vertical four",
			rows: []string{"1.", "1.", "1.", "1."},
			expected: []MatchGroup{
				{Symbol: 1, Cells: []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
			},
		},
		{
			name: "L shape is one group",
			rows: []string{"2..", "2..", "222"},
			expected: []MatchGroup{
				{Symbol: 2, Cells: []Coord{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}},
			},
		},
		{
			name: "adjacent unmatched cell stays",
			rows: []string{"333", "3..", "1.."},
			expected: []MatchGroup{
				{Symbol: 3, Cells: []Coord{{0, 0}, {0, 1}, {0, 2}}},
			},
		},
		{
			name: "parallel runs merge",
			rows: []string{"444", "444"},
			expected: []MatchGroup{
				{Symbol: 4, Cells: []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}},
			},
		},
		{
			name: "touching runs of different symbols stay separate",
			rows: []string{"000", "111"},
			expected: []MatchGroup{
				{Symbol: 0, Cells: []Coord{{0, 0}, {0, 1}, {0, 2}}},
				{Symbol: 1, Cells: []Coord{{1, 0}, {1, 1}, {1, 2}}},
			},
		},
		{
			name: "disjoint groups sorted by first cell",
			rows: []string{"5...", "5222", "5..."},
			expected: []MatchGroup{
				{Symbol: 5, Cells: []Coord{{0, 0}, {1, 0}, {2, 0}}},
				{Symbol: 2, Cells: []Coord{{1, 1}, {1, 2}, {1, 3}}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gridFrom(t, ModeClear, tc.rows...)
			got := FindMatches(g)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("FindMatches() =\n%+v\nexpected\n%+v", got, tc.expected)
			}
		})
	}
}

func TestFindMatchesIsIdempotent(t *testing.T) {
	g := gridFrom(t, ModeClear,
		"00012",
		"12212",
		"33312",
	)
	before := g.Clone()

	first := FindMatches(g)
	second := FindMatches(g)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scans differ:\n%+v\n%+v", first, second)
	}
	if !g.Equal(before) {
		t.Error("FindMatches modified the grid")
	}
	if len(first) != 4 {
		t.Errorf("found %d groups, expected 4", len(first))
	}
}

func TestRunMatcherMinRun(t *testing.T) {
	g := gridFrom(t, ModeClear, "0001", "2222")
	groups := RunMatcher{MinRun: 4}.FindMatches(g)
	if len(groups) != 1 || groups[0].Symbol != 2 {
		t.Errorf("MinRun 4 found %+v, expected only the symbol 2 run", groups)
	}
}

func TestSortGroups(t *testing.T) {
	groups := []MatchGroup{
		{Symbol: 1, Cells: []Coord{{2, 0}}},
		{Symbol: 2, Cells: []Coord{{0, 3}}},
		{Symbol: 3, Cells: []Coord{{0, 1}}},
	}
	SortGroups(groups)
	order := []Symbol{groups[0].Symbol, groups[1].Symbol, groups[2].Symbol}
	if !reflect.DeepEqual(order, []Symbol{3, 2, 1}) {
		t.Errorf("SortGroups order = %v, expected [3 2 1]", order)
	}
}

func TestMatcherFunc(t *testing.T) {
	calls := 0
	m := MatcherFunc(func(g *Grid) []MatchGroup {
		calls++
		return nil
	})
	e := NewEngine(nil, WithMatcher(m))
	res := e.ResolveToQuiescence(gridFrom(t, ModeClear, "000"), 0)
	if calls != 1 {
		t.Errorf("custom matcher called %d times, expected 1", calls)
	}
	if res.TotalCombo != 0 {
		t.Errorf("custom matcher that finds nothing produced combo %d", res.TotalCombo)
	}
}
