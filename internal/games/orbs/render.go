package orbs

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/orbfall/internal/config"
	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/match3"
)

const (
	cellWidth  = 3 // bracket, orb, bracket
	headerRows = 4 // title, status, bar, timer
	footerRows = 4 // player, player bar, message, help
	minPanelW  = 44
	shopWidth  = 46
)

type orbStyle struct {
	glyph rune
	color core.Color
}

func buildPalette(symbols []config.SymbolConfig) []orbStyle {
	palette := make([]orbStyle, len(symbols))
	for i, s := range symbols {
		glyph, _ := utf8.DecodeRuneInString(s.Glyph)
		if glyph == utf8.RuneError {
			glyph = rune('0' + i%10)
		}
		color, _ := core.ParseColor(s.Color)
		palette[i] = orbStyle{glyph: glyph, color: color}
	}
	return palette
}

func (g *Game) style(s match3.Symbol) orbStyle {
	if s < 0 || int(s) >= len(g.palette) {
		return orbStyle{glyph: '·', color: core.ColorGray}
	}
	return g.palette[s]
}

func (g *Game) minSize() (int, int) {
	boardW := g.cfg.Board.Cols*cellWidth + 2
	boardH := g.cfg.Board.Rows + 2
	return max(boardW, minPanelW), headerRows + boardH + footerRows
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.grid.Cols()*cellWidth + 2
	boardH := g.grid.Rows() + 2
	box := core.NewRect((g.screenW-boardW)/2, headerRows, boardW, boardH)

	g.renderHeader(dst, box)
	g.renderBoard(dst, box)
	g.renderFooter(dst, box)

	switch {
	case g.phase == phaseShop:
		g.renderShop(dst)
	case g.gameOver:
		g.renderGameOver(dst)
	case g.paused:
		g.renderPaused(dst)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

func (g *Game) renderHeader(dst *core.Screen, box core.Rect) {
	dst.DrawTextCenteredColored(0, "ORBFALL · "+g.Title(), core.ColorBrightCyan)

	if g.mode == ModeBattle && g.battle != nil {
		m := g.battle.Monster
		status := fmt.Sprintf("W%d-%d  %s  HP %d/%d  ATK in %d",
			g.run.WorldIdx+1, g.run.StageIdx+1, m.Name, max(0, m.HP), m.MaxHP, g.battle.TurnsLeft)
		if g.run.Finished() {
			status = "All worlds cleared"
		}
		dst.DrawText(box.X, 1, status)
		dst.DrawBar(box.X, 2, box.W, m.HPFraction(), core.ColorRed)
	} else {
		status := fmt.Sprintf("Score %d  Combo %d  Best %d", g.score, g.lastCombo, g.bestCombo)
		dst.DrawText(box.X, 1, status)
		if g.mode == ModeClear {
			dst.DrawText(box.X, 2, "Orbs left "+strconv.Itoa(g.grid.Remaining()))
		}
	}

	if g.phase == phaseDragging && g.dragLimit > 0 {
		dst.DrawBar(box.X, 3, box.W, float64(g.dragLeft)/float64(g.dragLimit), core.ColorYellow)
	}
}

func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	frame := core.ColorGray
	if g.phase == phaseDragging {
		frame = core.ColorYellow
	}
	dst.DrawBox(box, frame)

	flashing := make(map[match3.Coord]match3.Symbol)
	for _, grp := range g.wave.Groups {
		for _, c := range grp.Cells {
			flashing[c] = grp.Symbol
		}
	}

	for r := 0; r < g.grid.Rows(); r++ {
		for c := 0; c < g.grid.Cols(); c++ {
			x := box.X + 1 + c*cellWidth
			y := box.Y + 1 + r

			if sym, ok := flashing[match3.Coord{Row: r, Col: c}]; ok {
				// Blink matched orbs while they wait to be cleared.
				if g.tick%4 < 2 {
					dst.SetColored(x+1, y, '✦', g.style(sym).color)
				}
				continue
			}

			sym := g.grid.Get(r, c)
			if sym == match3.Empty {
				dst.SetColored(x+1, y, '·', core.ColorGray)
			} else {
				st := g.style(sym)
				dst.SetColored(x+1, y, st.glyph, st.color)
			}
		}
	}

	if g.phase == phaseIdle || g.phase == phaseDragging {
		x := box.X + 1 + g.cursor.Col*cellWidth
		y := box.Y + 1 + g.cursor.Row
		left, right, color := '[', ']', core.ColorBrightWhite
		if g.phase == phaseDragging {
			left, right, color = '<', '>', core.ColorBrightYellow
		}
		dst.SetColored(x, y, left, color)
		dst.SetColored(x+2, y, right, color)
	}
}

func (g *Game) renderFooter(dst *core.Screen, box core.Rect) {
	y := box.Bottom()

	if g.mode == ModeBattle && g.run != nil {
		p := g.run.Player
		dst.DrawText(box.X, y, fmt.Sprintf("You  HP %d/%d  Gold %d  Lives %d",
			max(0, p.HP), p.MaxHP, g.run.Gold, p.ExtraLives))
		dst.DrawBar(box.X, y+1, box.W, p.HPFraction(), core.ColorGreen)
		if g.report.Combo > 0 || g.report.Attack.Final > 0 {
			dst.DrawText(box.X, y+2, fmt.Sprintf("Combo %d  Dmg %d  Heal %d",
				g.report.Combo, g.report.Attack.Final, g.report.Healed))
		}
	}

	if g.message != "" {
		dst.DrawTextCenteredColored(y+2, g.message, core.ColorBrightYellow)
	}

	help := "arrows move · space grab/drop · p pause · q quit"
	if g.mode != ModeBattle {
		help = "arrows move · space grab/drop · esc end · q quit"
	}
	dst.DrawTextCenteredColored(y+3, help, core.ColorGray)
}

func (g *Game) renderShop(dst *core.Screen) {
	upgrades := g.catalog.Upgrades
	h := len(upgrades) + 7
	r := core.CenteredRect(g.screenW, g.screenH, shopWidth, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightMagenta)

	dst.DrawTextColored(r.X+2, r.Y+1, fmt.Sprintf("UPGRADE SHOP   Gold: %d", g.run.Gold), core.ColorBrightYellow)
	for i, u := range upgrades {
		level := strconv.Itoa(g.run.Level(u.ID))
		if u.MaxLevel >= 0 {
			level += "/" + strconv.Itoa(u.MaxLevel)
		}
		line := fmt.Sprintf("  %-14s Lv %-6s %5dg", u.Name, level, g.run.UpgradeCost(u))
		color := core.ColorDefault
		if !g.run.CanPurchase(u) {
			color = core.ColorGray
		}
		if i == g.shopIdx {
			line = ">" + line[1:]
			color = core.ColorBrightWhite
		}
		dst.DrawTextColored(r.X+2, r.Y+3+i, line, color)
	}

	y := r.Y + 3 + len(upgrades)
	if len(upgrades) > 0 {
		dst.DrawTextColored(r.X+2, y, upgrades[g.shopIdx].Desc, core.ColorCyan)
	}
	if g.shopMsg != "" {
		dst.DrawTextColored(r.X+2, y+1, g.shopMsg, core.ColorBrightYellow)
	}
	dst.DrawTextColored(r.X+2, y+2, "↑↓ select · space buy · esc continue", core.ColorGray)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	title := "GAME OVER"
	if g.won {
		title = "YOU WIN"
	}
	r := core.CenteredRect(g.screenW, g.screenH, 30, 6)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(r.Y+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(r.Y+2, fmt.Sprintf("Score: %d", g.score))
	if g.mode == ModeBattle && g.run != nil {
		dst.DrawTextCentered(r.Y+3, fmt.Sprintf("Defeated %d monsters", g.run.Defeated))
	} else {
		dst.DrawTextCentered(r.Y+3, fmt.Sprintf("Best combo: %d", g.bestCombo))
	}
	dst.DrawTextCenteredColored(r.Y+4, "R restart · Q quit", core.ColorGray)
}

func (g *Game) renderPaused(dst *core.Screen) {
	r := core.CenteredRect(g.screenW, g.screenH, 20, 3)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+1, "PAUSED")
}
