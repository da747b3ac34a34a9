package imaginarium

import (
	"math/rand"
	"time"
)

// assignment is the search engine's partial truth assignment plus the
// trail of decisions needed to undo it: instead of copying state on every
// prune, force records a trail and rewind unwinds it on backtrack.
type assignment struct {
	states []varState
	trail  []BoolVar
}

func newAssignment(n int) *assignment {
	return &assignment{states: make([]varState, n)}
}

func (a *assignment) get(v BoolVar) varState { return a.states[v] }

// force sets v to the value lit demands. Returns false if v already holds
// the opposite value (a conflict); true if v already held the demanded
// value or was newly assigned.
func (a *assignment) force(lit Literal) bool {
	want := isTrue
	if lit.Neg {
		want = isFalse
	}
	cur := a.states[lit.Var]
	if cur == unknown {
		a.states[lit.Var] = want
		a.trail = append(a.trail, lit.Var)
		return true
	}
	return cur == want
}

// mark returns the current trail length, a point rewind can return to.
func (a *assignment) mark() int { return len(a.trail) }

// rewind unassigns every variable forced since mark.
func (a *assignment) rewind(mark int) {
	for i := len(a.trail) - 1; i >= mark; i-- {
		a.states[a.trail[i]] = unknown
	}
	a.trail = a.trail[:mark]
}

// decisionFrame records one search-tree branch point: the variable decided
// on, whether the alternate polarity has already been tried, and the trail
// mark to rewind to before trying it.
type decisionFrame struct {
	v          BoolVar
	polarity   bool // the polarity most recently forced for v
	triedOther bool
	mark       int
}

// searchEngine runs a DPLL-style backtracking search over a Problem's
// constraints using an explicit frame stack.
type searchEngine struct {
	p      *Problem
	assign *assignment
	order  []BoolVar
	frames []decisionFrame
	rng    *rand.Rand
}

func newSearchEngine(p *Problem, attemptSeed int) *searchEngine {
	order := make([]BoolVar, p.numVars)
	for i := range order {
		order[i] = BoolVar(i)
	}
	// Successive retries rotate the decision order so a search that
	// exhausted one region of the tree explores a different one next, even
	// on an unseeded Problem (where decisions are otherwise fully
	// deterministic).
	if attemptSeed > 0 && len(order) > 0 {
		shift := attemptSeed % len(order)
		order = append(order[shift:], order[:shift]...)
	}
	e := &searchEngine{p: p, assign: newAssignment(p.numVars), order: order}
	if p.seeded {
		e.rng = rand.New(rand.NewSource(p.seed + int64(attemptSeed)*0x9e3779b9))
	}
	return e
}

// run drives the search to completion or until budget elapses. ok reports
// whether a satisfying assignment was found; timedOut reports whether the
// budget elapsed first.
func (e *searchEngine) run(budget time.Duration) (ok bool, timedOut bool) {
	var deadline time.Time
	hasDeadline := budget > 0
	if hasDeadline {
		deadline = time.Now().Add(budget)
	}
	checkEvery := 2048
	steps := 0

	if !e.propagateFixpoint() {
		return false, false
	}

	for {
		steps++
		if hasDeadline && steps%checkEvery == 0 && time.Now().After(deadline) {
			return false, true
		}

		v, found := e.nextUnassigned()
		if !found {
			return true, false // every variable assigned, all constraints satisfied
		}

		polarity := e.preferredPolarity(v)
		e.frames = append(e.frames, decisionFrame{v: v, polarity: polarity, mark: e.assign.mark()})
		if !e.decide(v, polarity) {
			if !e.backtrack() {
				return false, false
			}
		}
	}
}

// decide forces v to polarity and propagates to a fixpoint, returning false
// on conflict.
func (e *searchEngine) decide(v BoolVar, polarity bool) bool {
	if !e.assign.force(Literal{Var: v, Neg: !polarity}) {
		return false
	}
	return e.propagateFixpoint()
}

// backtrack undoes decisions until it finds a frame whose alternate
// polarity has not yet been tried, retries with that polarity, and
// reports whether the search tree has any branches left to explore.
func (e *searchEngine) backtrack() bool {
	for len(e.frames) > 0 {
		top := &e.frames[len(e.frames)-1]
		e.assign.rewind(top.mark)
		if !top.triedOther {
			top.triedOther = true
			other := !top.polarity
			top.polarity = other
			if e.decide(top.v, other) {
				return true
			}
			continue // this frame's alternate also conflicted; pop it too
		}
		e.frames = e.frames[:len(e.frames)-1]
	}
	return false
}

// nextUnassigned returns the first still-unknown variable in decision
// order.
func (e *searchEngine) nextUnassigned() (BoolVar, bool) {
	for _, v := range e.order {
		if e.assign.get(v) == unknown {
			return v, true
		}
	}
	return 0, false
}

// preferredPolarity reports which truth value to try first for v, biased
// by Problem.Initialize (verb Density / kind InitialProbability hints).
// Variables with no recorded bias default to false first,
// like the generator's low biases for subkind variables (0 when no
// frequency is declared) and small alternative-set membership variables
// (0.1). On a Randomized problem the bias
// is sampled rather than thresholded, so a subkind declared "(10)" really
// does come up ten times as often as its "(1)" sibling.
func (e *searchEngine) preferredPolarity(v BoolVar) bool {
	bias, ok := e.p.biases[v]
	if !ok {
		return false
	}
	if e.rng != nil {
		return e.rng.Float64() < bias
	}
	return bias >= 0.5
}

// propagateFixpoint repeatedly sweeps every constraint until a full pass
// makes no further progress, or a constraint reports conflict. A watched-
// literal scheme would propagate incrementally; over the modest constraint
// counts one invention produces, whole-problem sweeps are simpler and fast
// enough.
func (e *searchEngine) propagateFixpoint() bool {
	for {
		progressed := false
		before := e.assign.mark()
		for _, c := range e.p.constraints {
			if !c.propagate(e.assign) {
				return false
			}
		}
		if e.assign.mark() != before {
			progressed = true
		}
		if !progressed {
			return true
		}
	}
}
