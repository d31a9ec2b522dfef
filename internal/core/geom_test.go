package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 10)
	if r.X != 30 || r.Y != 7 || r.W != 20 || r.H != 10 {
		t.Errorf("CenteredRect() = %+v, expected {30 7 20 10}", r)
	}

	tooBig := CenteredRect(10, 10, 20, 20)
	if tooBig.X != 0 || tooBig.Y != 0 {
		t.Errorf("oversized rect should pin to origin, got %+v", tooBig)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below lo
		{15, 0, 10, 10}, // above hi
		{0, 0, 10, 0},   // at lo
		{10, 0, 10, 10}, // at hi
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestMsToTicks(t *testing.T) {
	tests := []struct {
		rate, ms, expected int
	}{
		{30, 15000, 450},
		{60, 1000, 60},
		{30, 10, 1}, // never zero
		{0, 1000, 30},
	}

	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.MsToTicks(tc.ms); got != tc.expected {
			t.Errorf("MsToTicks(%d) at %d tps = %d, expected %d", tc.ms, tc.rate, got, tc.expected)
		}
	}
}

func TestInputFrameDirection(t *testing.T) {
	tests := []struct {
		name         string
		frame        InputFrame
		dRow, dCol   int
		expectedMove bool
	}{
		{"empty", NewInputFrame(), 0, 0, false},
		{"up", FrameOf(ActionUp), -1, 0, true},
		{"right", FrameOf(ActionRight), 0, 1, true},
		{"vertical wins", FrameOf(ActionLeft, ActionDown), 1, 0, true},
		{"confirm only", FrameOf(ActionConfirm), 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dr, dc, ok := tc.frame.Direction()
			if dr != tc.dRow || dc != tc.dCol || ok != tc.expectedMove {
				t.Errorf("Direction() = (%d, %d, %v), expected (%d, %d, %v)", dr, dc, ok, tc.dRow, tc.dCol, tc.expectedMove)
			}
		})
	}
}

func TestInputFrameClear(t *testing.T) {
	f := FrameOf(ActionConfirm, ActionPause)
	f.Clear()
	if f.Has(ActionConfirm) || f.Has(ActionPause) {
		t.Error("Clear() should drop every action")
	}
	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Pink "); !ok || c != ColorPink {
		t.Errorf("ParseColor(Pink) = %v, %v", c, ok)
	}
	if c, ok := ParseColor("ultraviolet"); ok || c != ColorDefault {
		t.Errorf("ParseColor(unknown) = %v, %v", c, ok)
	}
}
