package orbs

import (
	"errors"

	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/roguelike"
)

func (g *Game) openShop() {
	g.phase = phaseShop
	g.shopIdx = 0
	g.shopMsg = ""
}

// stepShop handles the upgrade list: Up/Down select, Confirm buys,
// Back returns to the board.
func (g *Game) stepShop(in core.InputFrame) {
	upgrades := g.catalog.Upgrades
	if len(upgrades) == 0 {
		g.closeShop()
		return
	}
	switch {
	case in.Has(core.ActionBack):
		g.closeShop()
	case in.Has(core.ActionUp):
		g.shopIdx = (g.shopIdx - 1 + len(upgrades)) % len(upgrades)
		g.shopMsg = ""
	case in.Has(core.ActionDown):
		g.shopIdx = (g.shopIdx + 1) % len(upgrades)
		g.shopMsg = ""
	case in.Has(core.ActionConfirm):
		g.buy(upgrades[g.shopIdx])
	}
}

func (g *Game) buy(u roguelike.Upgrade) {
	err := g.run.Purchase(u.ID)
	switch {
	case err == nil:
		g.shopMsg = "Bought " + u.Name
	case errors.Is(err, roguelike.ErrMaxLevel):
		g.shopMsg = u.Name + " is maxed"
	case errors.Is(err, roguelike.ErrNotEnoughGold):
		g.shopMsg = "Not enough gold"
	default:
		g.shopMsg = err.Error()
	}
}

func (g *Game) closeShop() {
	g.phase = phaseIdle
	g.shopMsg = ""
	g.dragLimit = core.RuntimeConfig{TickRate: g.tickRate}.MsToTicks(g.dragTimeoutMs())
}
