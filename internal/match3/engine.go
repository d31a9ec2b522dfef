package match3

// Phase is the state of a cascade.
type Phase int

const (
	// PhaseIdle means no matches remain; the board accepts input again.
	PhaseIdle Phase = iota
	// PhaseResolving means the next step scans for and removes matches.
	PhaseResolving
	// PhaseFalling means matched cells were removed and gravity is pending.
	PhaseFalling
)

// String returns a readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// ResolvedGroup is a removed match group with the combo level it scored at.
type ResolvedGroup struct {
	MatchGroup
	Combo int
}

// ResolutionResult summarises a cascade.
type ResolutionResult struct {
	// TotalCombo is the combo counter after the cascade, including the
	// starting value. It grows by one per group, not per cell or pass.
	TotalCombo int
	// Groups holds every removed group in removal order.
	Groups []ResolvedGroup
	// Passes counts the scans that found at least one match.
	Passes int
	// Cleared counts removed cells.
	Cleared int
}

// Wave is the outcome of one matching pass.
type Wave struct {
	Pass   int
	Groups []ResolvedGroup
}

// Gravity is the outcome of one compaction and refill step.
type Gravity struct {
	Falls  []Fall
	Spawns []Spawn
}

// Engine resolves matches on a grid.
type Engine struct {
	matcher Matcher
	gen     Generator
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatcher replaces the default RunMatcher.
func WithMatcher(m Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// NewEngine creates an engine. gen refills endless-mode boards and may be
// nil when only clear-mode boards are resolved.
func NewEngine(gen Generator, opts ...Option) *Engine {
	e := &Engine{
		matcher: RunMatcher{MinRun: DefaultMinRun},
		gen:     gen,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Matcher returns the engine's matching strategy.
func (e *Engine) Matcher() Matcher { return e.matcher }

// Begin starts a cascade on g. comboStart carries the combo counter over
// from earlier cascades of the same turn.
func (e *Engine) Begin(g *Grid, comboStart int) *Cascade {
	return &Cascade{
		engine: e,
		grid:   g,
		phase:  PhaseResolving,
		result: ResolutionResult{TotalCombo: comboStart},
	}
}

// ResolveToQuiescence runs a cascade until a scan finds nothing.
func (e *Engine) ResolveToQuiescence(g *Grid, comboStart int) ResolutionResult {
	c := e.Begin(g, comboStart)
	for {
		if _, ok := c.Match(); !ok {
			break
		}
		c.Fall()
	}
	return c.Result()
}

// Cascade steps a resolution one pass at a time so a presentation layer
// can animate removal and gravity separately.
type Cascade struct {
	engine *Engine
	grid   *Grid
	phase  Phase
	result ResolutionResult
}

// Phase returns the current phase.
func (c *Cascade) Phase() Phase { return c.phase }

// Done reports whether the cascade reached quiescence.
func (c *Cascade) Done() bool { return c.phase == PhaseIdle }

// Combo returns the running combo counter.
func (c *Cascade) Combo() int { return c.result.TotalCombo }

// Result returns the accumulated result so far.
func (c *Cascade) Result() ResolutionResult { return c.result }

// Match scans the grid, assigns combo levels and removes every matched
// cell in one batch. It returns false once no match is found, which ends
// the cascade. A pending fall is applied first.
func (c *Cascade) Match() (Wave, bool) {
	switch c.phase {
	case PhaseIdle:
		return Wave{}, false
	case PhaseFalling:
		c.Fall()
	}

	groups := c.engine.matcher.FindMatches(c.grid)
	if len(groups) == 0 {
		c.phase = PhaseIdle
		return Wave{}, false
	}

	c.result.Passes++
	wave := Wave{Pass: c.result.Passes, Groups: make([]ResolvedGroup, 0, len(groups))}
	for _, grp := range groups {
		c.result.TotalCombo++
		rg := ResolvedGroup{MatchGroup: grp, Combo: c.result.TotalCombo}
		wave.Groups = append(wave.Groups, rg)
		c.result.Groups = append(c.result.Groups, rg)
	}
	for _, grp := range groups {
		// Groups come from this grid, so coordinates are in bounds.
		_ = c.grid.Remove(grp.Cells)
		c.result.Cleared += len(grp.Cells)
	}

	c.phase = PhaseFalling
	return wave, true
}

// Fall compacts every column and refills endless-mode boards.
func (c *Cascade) Fall() Gravity {
	if c.phase != PhaseFalling {
		return Gravity{}
	}
	var grav Gravity
	for col := 0; col < c.grid.Cols(); col++ {
		grav.Falls = append(grav.Falls, c.grid.CompactColumn(col)...)
	}
	for col := 0; col < c.grid.Cols(); col++ {
		grav.Spawns = append(grav.Spawns, c.grid.RefillColumn(col, c.engine.gen)...)
	}
	c.phase = PhaseResolving
	return grav
}
