package orbs

// StateName is the coarse state reported in a Snapshot.
type StateName string

const (
	StatePlaying     StateName = "playing"
	StateDragging    StateName = "dragging"
	StateResolving   StateName = "resolving"
	StateShop        StateName = "shop"
	StateGameOver    StateName = "game_over"
	StateWin         StateName = "win"
	StatePausedSmall StateName = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Board     string // Grid.String() rendering
	Cursor    [2]int // row, col
	Score     int
	Turns     int
	LastCombo int
	BestCombo int
	Cleared   int
	State     StateName

	// Battle mode only.
	World     int // 1-based
	Stage     int // 1-based
	Monster   string
	MonsterHP int
	PlayerHP  int
	Gold      int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.phase == phaseShop:
		state = StateShop
	case g.phase == phaseDragging:
		state = StateDragging
	case g.phase == phaseMatching || g.phase == phaseFalling:
		state = StateResolving
	}

	s := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Board:     g.grid.String(),
		Cursor:    [2]int{g.cursor.Row, g.cursor.Col},
		Score:     g.score,
		Turns:     g.turns,
		LastCombo: g.lastCombo,
		BestCombo: g.bestCombo,
		Cleared:   g.cleared,
		State:     state,
	}
	if g.run != nil {
		s.World = g.run.WorldIdx + 1
		s.Stage = g.run.StageIdx + 1
		s.PlayerHP = g.run.Player.HP
		s.Gold = g.run.Gold
	}
	if g.battle != nil {
		s.Monster = g.battle.Template.ID
		s.MonsterHP = g.battle.Monster.HP
	}
	return s
}
