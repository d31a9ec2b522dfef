package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/registry"
	"github.com/vovakirdan/orbfall/internal/storage"
)

// fakeGame ends with a fixed score when Confirm is pressed.
type fakeGame struct {
	id       string
	runs     bool
	resets   int
	over     bool
	paused   bool
	score    int
	lastSeen core.InputFrame
}

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastSeen = core.FrameOf()
	for a := range in.Actions {
		g.lastSeen.Set(a)
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionConfirm) {
		g.over = true
	}
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over, Paused: g.paused}
}
func (g *fakeGame) TracksRuns() bool { return g.runs }
func (g *fakeGame) RunSummary() (registry.RunSummary, bool) {
	if !g.runs || !g.over {
		return registry.RunSummary{}, false
	}
	return registry.RunSummary{WorldReached: 2, StageReached: 1, Defeated: 9, Gold: g.score}, true
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"k", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}

	if got := km.MapKeyToMenuAction(keyMsg("tab")); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want scoreboard", got)
	}
}

func TestModelRecordsScoreOnce(t *testing.T) {
	store := testStore(t)
	game := &fakeGame{id: "orbs", score: 42}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}, nil)

	m = send(t, m, keyMsg(" "), TickMsg{}, TickMsg{}, TickMsg{})

	scores, err := store.TopScores("orbs", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 42 {
		t.Fatalf("scores = %+v, want one entry of 42", scores)
	}
	runs, err := store.RecentRuns("orbs", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("score-only mode saved %d runs", len(runs))
	}

	// Restarting re-arms recording for the next game.
	m = send(t, m, keyMsg("r"), TickMsg{})
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}
	send(t, m, keyMsg(" "), TickMsg{})
	if scores, _ := store.TopScores("orbs", 10); len(scores) != 2 {
		t.Errorf("after restart got %d scores, want 2", len(scores))
	}
}

func TestModelRecordsRun(t *testing.T) {
	store := testStore(t)
	game := &fakeGame{id: "orbs_battle", runs: true, score: 130}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 99}, nil)

	send(t, m, keyMsg(" "), TickMsg{})

	runs, err := store.RecentRuns("orbs_battle", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Seed != 99 || r.Gold != 130 || r.Defeated != 9 || r.WorldReached != 2 || r.Victory {
		t.Errorf("run = %+v", r)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &fakeGame{id: "orbs"}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}, nil)

	// Back while playing goes to the game, not the menu.
	m = send(t, m, keyMsg("esc"), TickMsg{})
	if m.BackToMenu() {
		t.Fatal("Back during play left the game")
	}
	if !game.lastSeen.Has(core.ActionBack) {
		t.Error("game did not see Back")
	}

	m = send(t, m, keyMsg(" "), TickMsg{}, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("Back after game over should leave the game")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}

	m = NewModel(&fakeGame{id: "orbs"}, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}, nil)
	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func init() {
	registry.Register("zz_menu_fake", func() registry.Game { return &fakeGame{id: "zz_menu_fake"} })
}

func TestMenuDifficultyAndSelection(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "hard")
	if m.Difficulty() != "hard" {
		t.Fatalf("difficulty = %q, want hard", m.Difficulty())
	}

	next, _ := m.Update(keyMsg("l"))
	m = next.(MenuModel)
	if m.Difficulty() != "easy" {
		t.Errorf("right from hard = %q, want easy (wraps)", m.Difficulty())
	}
	next, _ = m.Update(keyMsg("h"))
	m = next.(MenuModel)
	if m.Difficulty() != "hard" {
		t.Errorf("left from easy = %q, want hard (wraps)", m.Difficulty())
	}

	for range len(m.items) {
		next, _ = m.Update(keyMsg("j"))
		m = next.(MenuModel)
	}
	next, _ = m.Update(keyMsg("enter"))
	res := next.(MenuModel).result()
	if res.Quit || res.GameID != "zz_menu_fake" || res.Difficulty != "hard" {
		t.Errorf("result = %+v", res)
	}

	next, _ = NewMenuModel(nil, core.RuntimeConfig{}, "").Update(keyMsg("tab"))
	if res := next.(MenuModel).result(); !res.WantsScoreboard {
		t.Errorf("tab result = %+v", res)
	}
}
