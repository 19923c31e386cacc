package analyzer

import "github.com/larklang/compiler/internal/symbols"

// tracer records which placeholders became initialized along the current
// control-flow path. Sequential mode accumulates directly;
// branching mode joins sibling branches by intersecting their sets at the
// merge point.
type tracer struct {
	branching bool
	inited    map[*symbols.Placeholder]bool
}

func newTracer(branching bool) *tracer {
	return &tracer{branching: branching, inited: map[*symbols.Placeholder]bool{}}
}

type tracerStack struct {
	stack []*tracer
}

func newTracerStack() *tracerStack {
	return &tracerStack{stack: []*tracer{newTracer(false)}}
}

func (ts *tracerStack) top() *tracer { return ts.stack[len(ts.stack)-1] }

// markInitialized records sym as initialized on the current path. Outside
// any branch the symbol's own flag is set directly.
func (ts *tracerStack) markInitialized(sym *symbols.Placeholder) {
	ts.top().inited[sym] = true
	if len(ts.stack) == 1 {
		sym.SetFlag(symbols.FlagInitialized)
	}
}

// isInitialized reports whether sym is initialized on the current path:
// its own flag, or any enclosing tracer frame recorded it.
func (ts *tracerStack) isInitialized(sym *symbols.Placeholder) bool {
	if sym.Flags.Has(symbols.FlagInitialized) {
		return true
	}
	for i := len(ts.stack) - 1; i >= 0; i-- {
		if ts.stack[i].inited[sym] {
			return true
		}
	}
	return false
}

// pushBranchGroup opens a branching region (if/switch/guard and loop
// bodies). Each arm runs inside pushArm/popArm; close joins the arms by
// intersection and propagates the survivors to the enclosing frame
// (exhaustive=false adds an implicit empty arm, so nothing survives).
func (ts *tracerStack) pushBranchGroup() *branchGroup {
	return &branchGroup{ts: ts}
}

type branchGroup struct {
	ts         *tracerStack
	arms       []map[*symbols.Placeholder]bool
	exhaustive bool
}

func (g *branchGroup) pushArm() {
	g.ts.stack = append(g.ts.stack, newTracer(true))
}

func (g *branchGroup) popArm() {
	top := g.ts.top()
	g.ts.stack = g.ts.stack[:len(g.ts.stack)-1]
	g.arms = append(g.arms, top.inited)
}

func (g *branchGroup) setExhaustive() { g.exhaustive = true }

// close intersects the arms' initialized sets and merges the result into
// the enclosing frame.
func (g *branchGroup) close() {
	if len(g.arms) == 0 || !g.exhaustive {
		return
	}
	joined := g.arms[0]
	for _, arm := range g.arms[1:] {
		next := map[*symbols.Placeholder]bool{}
		for sym := range joined {
			if arm[sym] {
				next[sym] = true
			}
		}
		joined = next
	}
	for sym := range joined {
		g.ts.markInitialized(sym)
	}
}
