package orbs

import (
	"fmt"

	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/match3"
	"github.com/vovakirdan/orbfall/internal/roguelike"
)

// stepIdle moves the cursor, picks up an orb, or ends a score-attack
// session on Back.
func (g *Game) stepIdle(in core.InputFrame) {
	if in.Has(core.ActionBack) && g.mode != ModeBattle {
		g.gameOver = true
		g.message = "Session ended"
		return
	}
	if in.Has(core.ActionConfirm) && !g.grid.IsEmpty(g.cursor.Row, g.cursor.Col) {
		g.phase = phaseDragging
		g.dragLeft = g.dragLimit
		g.dragMoved = false
		g.message = ""
		return
	}
	if dr, dc, ok := in.Direction(); ok {
		g.moveCursor(dr, dc)
	}
}

func (g *Game) moveCursor(dr, dc int) {
	next := match3.Coord{Row: g.cursor.Row + dr, Col: g.cursor.Col + dc}
	if g.grid.InBounds(next.Row, next.Col) {
		g.cursor = next
	}
}

// stepDrag carries the held orb. Every cursor step swaps it with the
// entered orb; empty cells block the path. Releasing or running out of
// time ends the drag.
func (g *Game) stepDrag(in core.InputFrame) {
	if dr, dc, ok := in.Direction(); ok {
		to := match3.Coord{Row: g.cursor.Row + dr, Col: g.cursor.Col + dc}
		if g.grid.InBounds(to.Row, to.Col) && !g.grid.IsEmpty(to.Row, to.Col) {
			//nolint:errcheck // Both cells are in bounds
			g.grid.Swap(g.cursor.Row, g.cursor.Col, to.Row, to.Col)
			g.cursor = to
			g.dragMoved = true
		}
	}

	g.dragLeft--
	if !in.Has(core.ActionConfirm) && g.dragLeft > 0 {
		return
	}

	if !g.dragMoved {
		// Dropping an orb where it was picked up is not a turn.
		g.phase = phaseIdle
		return
	}
	g.cascade = g.engine.Begin(g.grid, 0)
	g.nextWave()
}

// stepCascade paces the cascade: matched orbs flash for MatchTicks, the
// board falls, then waits FallTicks before the next scan.
func (g *Game) stepCascade() {
	g.wait--
	if g.wait > 0 {
		return
	}
	if g.phase == phaseMatching {
		g.cascade.Fall()
		g.wave = match3.Wave{}
		g.phase = phaseFalling
		g.wait = max(1, g.cfg.Timing.FallTicks)
		return
	}
	g.nextWave()
}

func (g *Game) nextWave() {
	wave, ok := g.cascade.Match()
	if !ok {
		res := g.cascade.Result()
		g.cascade = nil
		g.wave = match3.Wave{}
		g.finishTurn(res)
		return
	}
	g.wave = wave
	g.phase = phaseMatching
	g.wait = max(1, g.cfg.Timing.MatchTicks)
}

// finishTurn scores a resolved drag according to the mode.
func (g *Game) finishTurn(res match3.ResolutionResult) {
	g.turns++
	g.lastCombo = res.TotalCombo
	g.bestCombo = max(g.bestCombo, res.TotalCombo)
	g.cleared += res.Cleared
	g.phase = phaseIdle

	switch g.mode {
	case ModeEndless:
		g.score += res.Cleared * res.TotalCombo
	case ModeClear:
		g.score += res.Cleared
		g.checkClearOutcome()
	case ModeBattle:
		g.resolveBattle(res)
	}
}

func (g *Game) checkClearOutcome() {
	if g.grid.Mode() != match3.ModeClear {
		return
	}
	if g.grid.IsClear() {
		g.score += clearBonus
		g.won = true
		g.gameOver = true
		g.message = "Board cleared!"
		return
	}
	if g.stuck() {
		g.gameOver = true
		g.message = "No more matches possible"
	}
}

// stuck reports whether no symbol has enough orbs left to form a run.
func (g *Game) stuck() bool {
	counts := make(map[match3.Symbol]int)
	for r := 0; r < g.grid.Rows(); r++ {
		for c := 0; c < g.grid.Cols(); c++ {
			if s := g.grid.Get(r, c); s != match3.Empty {
				counts[s]++
			}
		}
	}
	for _, n := range counts {
		if n >= g.cfg.Board.MinRun {
			return false
		}
	}
	return true
}

func (g *Game) resolveBattle(res match3.ResolutionResult) {
	if g.battle == nil {
		return
	}
	rep := g.battle.ResolveTurn(res)
	g.report = rep
	g.totalGold += rep.GoldEarned
	g.score = g.totalGold

	switch {
	case rep.PlayerDefeated:
		g.gameOver = true
		g.message = fmt.Sprintf("Defeated by %s", g.battle.Template.Name)
		return
	case rep.Revived:
		g.message = "Revived!"
	case rep.MonsterAttacked:
		g.message = fmt.Sprintf("%s hits for %d", g.battle.Template.Name, rep.DamageTaken)
	}
	if !rep.MonsterDefeated {
		return
	}

	name := g.battle.Template.Name
	progress, err := g.battle.Advance()
	if err != nil {
		g.gameOver = true
		g.message = err.Error()
		return
	}
	switch progress {
	case roguelike.ProgressNextMonster:
		g.message = fmt.Sprintf("%s defeated! +%dg", name, rep.GoldEarned)
	case roguelike.ProgressStageClear, roguelike.ProgressWorldClear:
		g.message = fmt.Sprintf("%s! +%dg", progress, rep.GoldEarned)
		g.openShop()
	case roguelike.ProgressVictory:
		g.won = true
		g.gameOver = true
		g.message = "Victory!"
	}
}
