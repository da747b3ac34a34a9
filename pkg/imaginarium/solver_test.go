package imaginarium

import (
	"testing"
	"time"
)

func TestSolveSatisfiesClause(t *testing.T) {
	p := NewProblem()
	a := p.NewVar()
	b := p.NewVar()
	p.Assert(Lit(a), Lit(b))

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !sol.Value(Lit(a)) && !sol.Value(Lit(b)) {
		t.Fatal("expected at least one of a, b true")
	}
}

func TestSolveExactlyOne(t *testing.T) {
	p := NewProblem()
	vars := make([]BoolVar, 4)
	lits := make([]Literal, 4)
	for i := range vars {
		vars[i] = p.NewVar()
		lits[i] = Lit(vars[i])
	}
	p.Exactly(1, lits...)

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, l := range lits {
		if sol.Value(l) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d true literals, want exactly 1", count)
	}
}

func TestSolveBetweenBounds(t *testing.T) {
	p := NewProblem()
	lits := make([]Literal, 5)
	for i := range lits {
		lits[i] = Lit(p.NewVar())
	}
	p.Between(2, 3, lits...)

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, l := range lits {
		if sol.Value(l) {
			count++
		}
	}
	if count < 2 || count > 3 {
		t.Fatalf("got %d true literals, want between 2 and 3", count)
	}
}

func TestSolveQuantifyIfVacuousWhenConditionFalse(t *testing.T) {
	p := NewProblem()
	cond := p.NewVar()
	target := p.NewVar()
	p.Assert(Not(cond))               // force the condition false
	p.QuantifyIf(Lit(cond), 1, 1, Lit(target))

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Value(Lit(cond)) {
		t.Fatal("expected cond false")
	}
	// With cond false, the QuantifyIf rule is vacuous: target is unconstrained
	// and must default to false (preferredPolarity's default with no bias).
	if sol.Value(Lit(target)) {
		t.Fatal("expected target to default false when the guard is vacuous")
	}
}

func TestSolveQuantifyIfEnforcedWhenConditionTrue(t *testing.T) {
	p := NewProblem()
	cond := p.NewVar()
	a := p.NewVar()
	b := p.NewVar()
	p.Assert(Lit(cond))
	p.QuantifyIf(Lit(cond), 1, 1, Lit(a), Lit(b))

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	if sol.Value(Lit(a)) {
		count++
	}
	if sol.Value(Lit(b)) {
		count++
	}
	if count != 1 {
		t.Fatalf("got %d true among {a, b}, want exactly 1", count)
	}
}

func TestSolveUnsatisfiableContradiction(t *testing.T) {
	p := NewProblem()
	v := p.NewVar()
	p.Assert(Lit(v))
	p.Assert(Not(v))

	_, err := p.Solve(3, time.Second)
	if err != ErrUnsatisfiable {
		t.Fatalf("got %v, want ErrUnsatisfiable", err)
	}
}

func TestSolveTimeout(t *testing.T) {
	p := NewProblem()
	for i := 0; i < 5000; i++ {
		p.NewVar()
	}
	_, err := p.Solve(1, 1*time.Nanosecond)
	if err != ErrTimeout {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestSolveBiasPrefersDensity(t *testing.T) {
	p := NewProblem()
	v := p.NewVar()
	p.Initialize(v, 0.9)
	// No constraint forces v either way; the search's first decision for an
	// unconstrained variable is governed entirely by preferredPolarity, so a
	// high bias must make it come out true.
	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !sol.Value(Lit(v)) {
		t.Fatal("expected a high-density variable to default true")
	}
}

func TestSolveLowBiasDefaultsFalse(t *testing.T) {
	p := NewProblem()
	v := p.NewVar()
	p.Initialize(v, 0.1)
	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Value(Lit(v)) {
		t.Fatal("expected a low-density variable to default false")
	}
}

func TestAtLeastAtMost(t *testing.T) {
	p := NewProblem()
	lits := make([]Literal, 3)
	for i := range lits {
		lits[i] = Lit(p.NewVar())
	}
	p.AtLeast(2, lits...)
	p.AtMost(2, lits...)

	sol, err := p.Solve(1, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, l := range lits {
		if sol.Value(l) {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("got %d true literals, want 2", count)
	}
}
