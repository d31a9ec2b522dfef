package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/orbfall/internal/config"
)

func TestSimulateDeterminism(t *testing.T) {
	opts := simOptions{
		Config: config.DefaultOrbfallConfig(),
		Seed:   42,
		Turns:  5,
		Combat: true,
	}

	var a, b bytes.Buffer
	if err := simulate(&a, opts); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if err := simulate(&b, opts); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a.String() != b.String() {
		t.Error("same seed produced different output")
	}

	out := a.String()
	if !strings.HasPrefix(out, "seed 42  5x6") {
		t.Errorf("unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	// Endless boards are always full, so every turn is played.
	if !strings.Contains(out, "turn 5:") {
		t.Error("expected 5 turns to be played")
	}

	opts.Seed = 43
	var c bytes.Buffer
	if err := simulate(&c, opts); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if c.String() == out {
		t.Error("different seeds produced identical output")
	}
}

func TestSimulateClearNeverRefills(t *testing.T) {
	cfg := config.DefaultOrbfallConfig()
	total := cfg.Board.Rows * cfg.Board.Cols

	var buf bytes.Buffer
	if err := simulate(&buf, simOptions{Config: cfg, Seed: 7, Turns: 30, Clear: true}); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var combos, cleared, remaining int
	if _, err := fmt.Sscanf(last, "total combos %d cleared %d remaining %d", &combos, &cleared, &remaining); err != nil {
		t.Fatalf("cannot parse summary %q: %v", last, err)
	}
	if cleared+remaining != total {
		t.Errorf("cleared %d + remaining %d != %d cells", cleared, remaining, total)
	}
}
