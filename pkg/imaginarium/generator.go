package imaginarium

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gitrdm/imaginarium/internal/metrics"
)

// GenerateOptions configures one Generate call: how hard the backing
// solver should try before giving up, and how the
// search's biased decisions are sampled. Seed 0 draws a fresh seed per
// call, so repeated Generate calls sample subkind frequencies and verb
// densities independently; a fixed non-zero Seed reproduces one invention
// exactly.
type GenerateOptions struct {
	Retries int
	Timeout time.Duration
	Seed    int64
}

// DefaultGenerateOptions mirrors a conservative default: a handful of
// retries sharing one timeout of a few seconds.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Retries: 3, Timeout: 5 * time.Second}
}

// individualDomain is the per-individual bookkeeping the constraint
// emission pass needs: the full kind lattice neighborhood (for subkind
// exclusivity and verb-shape eligibility) and the strictly-true ancestor
// set (the kinds guaranteed true of the individual up front, the only
// ones properties are instantiated against).
type individualDomain struct {
	all    map[ConceptID]bool // both edges, BFS closure: kinds this individual *could* turn out to be
	active map[ConceptID]bool // superkind-closure of the individual's actually-declared kinds: guaranteed true
}

// genCtx carries the per-invocation state threaded through constraint
// emission: the Problem being built, per-individual concept variables, and
// the dedup sets that keep one rebuild from emitting the same unit
// clause or per-(individual, kind) block twice.
type genCtx struct {
	o *Ontology
	p *Problem

	domains map[int64]individualDomain
	// conceptVar[individualID][conceptID] is the boolean variable standing
	// for "this monadic concept (kind or adjective) holds of this
	// individual".
	conceptVar map[int64]map[ConceptID]BoolVar
	// holdsVar[verbID][subjectID][objectID] is the boolean variable for
	// Holds(v, i1, i2); allocated lazily as verb constraints reference
	// pairs (generalizations/mutual exclusions may reference a pair a
	// verb's own shapes never would).
	holdsVar map[VerbID]map[int64]map[int64]BoolVar

	// menuVars/intervalVals record the property bindings Invention reads
	// back after Solve.
	menuVars     map[int64]map[PropertyID][]menuBinding
	intervalVals map[int64]map[PropertyID]float64

	assertedUnits map[Literal]bool // dedup for single-literal Assert calls
	formalized    map[int64]map[ConceptID]bool
}

type menuBinding struct {
	Value string
	Var   BoolVar
}

func newGenCtx(o *Ontology) *genCtx {
	return &genCtx{
		o:             o,
		p:             NewProblem(),
		domains:       make(map[int64]individualDomain),
		conceptVar:    make(map[int64]map[ConceptID]BoolVar),
		holdsVar:      make(map[VerbID]map[int64]map[int64]BoolVar),
		menuVars:      make(map[int64]map[PropertyID][]menuBinding),
		intervalVals:  make(map[int64]map[PropertyID]float64),
		assertedUnits: make(map[Literal]bool),
		formalized:    make(map[int64]map[ConceptID]bool),
	}
}

// assertUnit asserts a single-literal clause, deduplicated per genCtx
// lifetime.
func (g *genCtx) assertUnit(l Literal) {
	if g.assertedUnits[l] {
		return
	}
	g.assertedUnits[l] = true
	g.p.Assert(l)
}

// conv converts a MonadicConceptLiteral about ind into a solver Literal
// over that individual's concept variable for lit.Concept, allocating the
// variable on first reference.
func (g *genCtx) conv(ind *Individual, lit MonadicConceptLiteral) Literal {
	v := g.varFor(ind, lit.Concept)
	return Literal{Var: v, Neg: !lit.Polarity}
}

func (g *genCtx) varFor(ind *Individual, concept ConceptID) BoolVar {
	m, ok := g.conceptVar[ind.id]
	if !ok {
		m = make(map[ConceptID]BoolVar)
		g.conceptVar[ind.id] = m
	}
	if v, ok := m[concept]; ok {
		return v
	}
	v := g.p.NewVar()
	m[concept] = v
	return v
}

func (g *genCtx) holdsVarFor(v *Verb, subj, obj *Individual) BoolVar {
	bySubj, ok := g.holdsVar[v.ID]
	if !ok {
		bySubj = make(map[int64]map[int64]BoolVar)
		g.holdsVar[v.ID] = bySubj
	}
	byObj, ok := bySubj[subj.id]
	if !ok {
		byObj = make(map[int64]BoolVar)
		bySubj[subj.id] = byObj
	}
	if bv, ok := byObj[obj.id]; ok {
		return bv
	}
	bv := g.p.NewVar()
	byObj[obj.id] = bv
	return bv
}

func (g *genCtx) alreadyFormalized(id int64, k ConceptID) bool {
	m, ok := g.formalized[id]
	if ok && m[k] {
		return true
	}
	if !ok {
		m = make(map[ConceptID]bool)
		g.formalized[id] = m
	}
	m[k] = true
	return false
}

// computeDomain BFS-closes ind's declared kinds over both Superkinds and
// Subkinds edges (the "all" set: every kind this individual could possibly
// turn out to be, needed so subkind-exclusivity variables exist for kinds
// not yet known true) and separately over Superkinds alone (the "active"
// set: kinds guaranteed true of ind, the only ones properties are
// instantiated against).
func computeDomain(o *Ontology, ind *Individual) individualDomain {
	all := make(map[ConceptID]bool)
	queue := append([]ConceptID(nil), ind.Kinds...)
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if all[k] {
			continue
		}
		all[k] = true
		c := o.ConceptByID(k)
		if c == nil {
			continue
		}
		queue = append(queue, c.Superkinds...)
		queue = append(queue, c.Subkinds...)
	}
	active := make(map[ConceptID]bool)
	queue = append([]ConceptID(nil), ind.Kinds...)
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if active[k] {
			continue
		}
		active[k] = true
		c := o.ConceptByID(k)
		if c == nil {
			continue
		}
		queue = append(queue, c.Superkinds...)
	}
	return individualDomain{all: all, active: active}
}

// --- instance expansion -------------------------------------------------

// expandInstances allocates count ephemeral individuals of root (seeded
// with modifiers), recursively instantiates every part of every kind
// (including superkinds) for each, and appends every permanent individual
// already in the ontology, so constraints apply to them too.
func expandInstances(o *Ontology, root ConceptID, modifiers []MonadicConceptLiteral, count int) ([]*Individual, error) {
	rootConcept := o.ConceptByID(root)
	if rootConcept == nil || rootConcept.IsAdjective {
		return nil, fmt.Errorf("generate: %d is not a common noun", root)
	}
	var all []*Individual
	for i := 0; i < count; i++ {
		name := "the " + rootConcept.Singular
		if count > 1 {
			name = fmt.Sprintf("%s%d", rootConcept.Singular, i)
		}
		ind := o.EphemeralIndividual([]ConceptID{root}, name)
		for _, m := range modifiers {
			ind.AddModifier(m)
		}
		all = append(all, ind)
		all = append(all, expandParts(o, ind)...)
	}
	all = append(all, o.PermanentIndividuals()...)
	return all, nil
}

// expandParts recursively instantiates every Part on owner's kind and
// every superkind of it, each yielding part.Count fresh children linked
// back to owner. Returns every individual created,
// including grandchildren.
func expandParts(o *Ontology, owner *Individual) []*Individual {
	var created []*Individual
	seenKind := make(map[ConceptID]bool)
	var collectParts func(k ConceptID) []PartID
	collectParts = func(k ConceptID) []PartID {
		if seenKind[k] {
			return nil
		}
		seenKind[k] = true
		c := o.ConceptByID(k)
		if c == nil {
			return nil
		}
		out := append([]PartID(nil), c.Parts...)
		for _, super := range c.Superkinds {
			out = append(out, collectParts(super)...)
		}
		return out
	}
	var partIDs []PartID
	for _, k := range owner.Kinds {
		partIDs = append(partIDs, collectParts(k)...)
	}
	for _, pid := range partIDs {
		part := o.PartByID(pid)
		if part == nil {
			continue
		}
		for i := 0; i < part.Count; i++ {
			childName := part.Name.String()
			if part.Count > 1 {
				childName = fmt.Sprintf("%s%d", part.Name.String(), i)
			}
			child := o.EphemeralIndividual([]ConceptID{part.Kind}, childName)
			for _, m := range part.Modifiers {
				child.AddModifier(m)
			}
			child.Container = owner
			child.ContainerPart = pid
			owner.Parts[pid] = append(owner.Parts[pid], child)
			created = append(created, child)
			created = append(created, expandParts(o, child)...)
		}
	}
	return created
}

// --- constraint emission ------------------------------------------------

// Generate expands root into count individuals (seeded with modifiers),
// emits the full constraint model over them, solves the resulting
// Problem, and wraps the solution in an Invention. A nil Invention and a
// non-nil error distinguishes a hard Contradiction (the ontology itself is
// unsatisfiable as authored) from ErrTimeout/ErrUnsatisfiable.
func Generate(o *Ontology, root ConceptID, modifiers []MonadicConceptLiteral, count int, opts GenerateOptions) (*Invention, error) {
	individuals, err := expandInstances(o, root, modifiers, count)
	if err != nil {
		return nil, err
	}

	g := newGenCtx(o)
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.p.Randomize(seed)
	for _, ind := range individuals {
		g.domains[ind.id] = computeDomain(o, ind)
	}

	for _, ind := range individuals {
		if err := g.emitKindConstraints(ind); err != nil {
			return nil, err
		}
	}
	for _, v := range o.verbs {
		if err := g.emitVerbConstraints(v, individuals); err != nil {
			return nil, err
		}
	}

	sol, err := g.p.Solve(opts.Retries, opts.Timeout)
	if err != nil {
		return nil, err
	}

	metrics.Inventions.WithLabelValues(kindName(o, root)).Inc()

	return &Invention{
		id:           uuid.New(),
		ontology:     o,
		individuals:  individuals,
		solution:     sol,
		conceptVar:   g.conceptVar,
		holdsVar:     g.holdsVar,
		menuVars:     g.menuVars,
		intervalVals: g.intervalVals,
		descCache:    make(map[int64]string),
		nameCache:    make(map[int64]string),
	}, nil
}

// emitKindConstraints handles one individual's kind-closure, subkind
// exclusivity, conditional modifiers, alternative sets and properties.
func (g *genCtx) emitKindConstraints(ind *Individual) error {
	dom := g.domains[ind.id]

	// Kind closure: force every declared kind true, then every ancestor.
	for k := range dom.active {
		g.assertUnit(Literal{Var: g.varFor(ind, k)})
	}
	for _, m := range ind.Modifiers {
		g.assertUnit(g.conv(ind, m))
	}

	// Density hints declared on kinds themselves ("rare"/"common" applied to
	// a noun sets InitialProbability) bias every candidate kind variable.
	for k := range dom.all {
		if c := g.o.ConceptByID(k); c != nil && c.InitialProbability > 0 {
			g.p.Initialize(g.varFor(ind, k), c.InitialProbability)
		}
	}

	// Subkind exclusivity over the full (both-edges) domain: any kind that
	// has subkinds within the domain requires exactly one immediate
	// subkind to hold, gated on the parent kind actually holding, so the
	// constraint only bites along whichever branch the search commits to.
	for k := range dom.all {
		c := g.o.ConceptByID(k)
		if c == nil || len(c.Subkinds) == 0 {
			continue
		}
		var subLits []Literal
		weightSum, haveWeights := 0.0, false
		for _, sub := range c.Subkinds {
			if !dom.all[sub] {
				continue
			}
			if f, ok := c.SubkindFrequency[sub]; ok && f > 0 {
				weightSum += f
				haveWeights = true
			} else {
				weightSum++
			}
		}
		for _, sub := range c.Subkinds {
			if !dom.all[sub] {
				continue
			}
			subVar := g.varFor(ind, sub)
			// With no declared relative frequencies, every sibling defaults
			// to bias 0 (tried false first); a declared frequency nudges its
			// own variable toward true in proportion to its share of the
			// weighted total, so "twice as common" subkinds actually come up
			// more often across repeated Generate calls.
			bias := 0.0
			if haveWeights && weightSum > 0 {
				f, ok := c.SubkindFrequency[sub]
				if !ok || f <= 0 {
					f = 1
				}
				bias = f / weightSum
			}
			g.p.Initialize(subVar, bias)
			subLits = append(subLits, Lit(subVar))
		}
		if len(subLits) == 0 {
			continue
		}
		g.p.QuantifyIf(Lit(g.varFor(ind, k)), 1, 1, subLits...)
	}

	// Conditional modifiers and alternative sets range over the full
	// candidate domain, gated on the kind variable: an alternative set
	// declared on a subkind the search has not yet committed to must still
	// bind the moment IsA(i, k) comes out true. Each (individual, kind)
	// block is processed once even when k is reachable through more than
	// one lattice edge. Properties are instantiated only for kinds asserted
	// of ind up front; a property on an undecided subkind has no
	// already-true facts to resolve its menu/interval rules against.
	for k := range dom.all {
		if g.alreadyFormalized(ind.id, k) {
			continue
		}
		c := g.o.ConceptByID(k)
		if c == nil {
			continue
		}
		kindVar := g.varFor(ind, k)
		for _, cm := range c.ImpliedAdjectives {
			clause := []Literal{Not(kindVar)}
			for _, cond := range cm.Conditions {
				clause = append(clause, g.conv(ind, cond).Negate())
			}
			clause = append(clause, g.conv(ind, cm.Modifier))
			g.p.Assert(clause...)
		}
		for _, as := range c.AlternativeSets {
			lits := make([]Literal, len(as.Alternatives))
			for i, alt := range as.Alternatives {
				lits[i] = g.conv(ind, alt)
			}
			g.p.QuantifyIf(Lit(kindVar), as.MinCount, as.MaxCount, lits...)
			if as.AllowPreInitialization && g.allSingleReference(as) && len(lits) > 0 {
				g.p.Initialize(lits[0].Var, 0.9)
			} else if len(lits) <= 2 {
				for _, l := range lits {
					g.p.Initialize(l.Var, 0.1)
				}
			}
		}
		if !dom.active[k] {
			continue
		}
		for _, pid := range c.Properties {
			g.emitProperty(ind, g.o.PropertyByID(pid))
		}
	}
	return nil
}

// allSingleReference reports whether every alternative in as is a bare
// positive literal over an adjective no other alternative set references,
// the only shape of set safe to pre-bias one member of.
func (g *genCtx) allSingleReference(as *AlternativeSet) bool {
	for _, a := range as.Alternatives {
		if !a.Polarity {
			return false
		}
		if c := g.o.ConceptByID(a.Concept); c != nil && c.ReferenceCount > 1 {
			return false
		}
	}
	return true
}

// emitProperty instantiates one Property on ind: a one-hot set of boolean
// variables for a menu property, or a direct representative value for an
// interval property. Conditions on MenuRule/IntervalRule are evaluated
// against ind's already-fixed kinds and explicit modifiers only (not
// against concepts the search has yet to decide); a full SMT backend
// could resolve a decision-dependent menu or interval choice, but the
// common case is conditions over authored, already-true facts, and that
// resolves directly.
func (g *genCtx) emitProperty(ind *Individual, p *Property) {
	holds := func(lit MonadicConceptLiteral) bool {
		for _, k := range ind.Kinds {
			if k == lit.Concept {
				return lit.Polarity
			}
		}
		return ind.HasModifier(lit)
	}
	switch p.Type {
	case PropertyMenu:
		values, _ := p.MenuFor(holds)
		if len(values) == 0 {
			return
		}
		bindings := make([]menuBinding, len(values))
		lits := make([]Literal, len(values))
		for i, val := range values {
			v := g.p.NewVar()
			bindings[i] = menuBinding{Value: val, Var: v}
			lits[i] = Lit(v)
		}
		g.p.Exactly(1, lits...)
		m, ok := g.menuVars[ind.id]
		if !ok {
			m = make(map[PropertyID][]menuBinding)
			g.menuVars[ind.id] = m
		}
		m[p.ID] = bindings
	case PropertyInterval:
		min, max, ok := p.IntervalFor(holds)
		if !ok {
			return
		}
		m, ok2 := g.intervalVals[ind.id]
		if !ok2 {
			m = make(map[PropertyID]float64)
			g.intervalVals[ind.id] = m
		}
		m[p.ID] = (min + max) / 2
	}
}

// emitVerbConstraints emits the per-verb rules:
// shape implications, cardinality bounds, reflexivity/anti-reflexivity,
// (anti-)symmetry, generalization, mutual exclusion and superspecies.
func (g *genCtx) emitVerbConstraints(v *Verb, individuals []*Individual) error {
	// Index individuals by every kind in their domain, so shape/cardinality
	// rules can enumerate "i can be subject-kind" cheaply.
	byKind := make(map[ConceptID][]*Individual)
	for _, ind := range individuals {
		for k := range g.domains[ind.id].all {
			byKind[k] = append(byKind[k], ind)
		}
	}

	for _, shape := range v.Shapes {
		subjects := byKind[shape.SubjectKind]
		objects := byKind[shape.ObjectKind]
		for _, s := range subjects {
			for _, o := range objects {
				hv := g.holdsVarFor(v, s, o)
				g.p.Initialize(hv, v.Density)
				notHv := Not(hv)
				g.p.Assert(notHv, g.conv(s, MonadicConceptLiteral{Concept: shape.SubjectKind, Polarity: true}))
				for _, m := range shape.SubjectModifiers {
					g.p.Assert(notHv, g.conv(s, m))
				}
				g.p.Assert(notHv, g.conv(o, MonadicConceptLiteral{Concept: shape.ObjectKind, Polarity: true}))
				for _, m := range shape.ObjectModifiers {
					g.p.Assert(notHv, g.conv(o, m))
				}
			}
		}

		if err := g.emitCardinality(v, shape, subjects, objects); err != nil {
			return err
		}
	}

	if AncestorIsAntiReflexive(g.o, v) {
		for _, ind := range individuals {
			if _, ok := g.holdsVar[v.ID][ind.id][ind.id]; ok {
				g.assertUnit(Not(g.holdsVarFor(v, ind, ind)))
			}
		}
	}
	if AncestorIsReflexive(g.o, v) {
		for _, ind := range eligibleForVerb(g, v, individuals) {
			g.assertUnit(Lit(g.holdsVarFor(v, ind, ind)))
		}
	}
	if v.IsAntiSymmetric {
		elig := eligibleForVerb(g, v, individuals)
		for i, a := range elig {
			for _, b := range elig[i+1:] {
				g.p.Assert(Not(g.holdsVarFor(v, a, b)), Not(g.holdsVarFor(v, b, a)))
			}
		}
	}
	if v.IsSymmetric {
		elig := eligibleForVerb(g, v, individuals)
		for i, a := range elig {
			for _, b := range elig[i+1:] {
				hab := g.holdsVarFor(v, a, b)
				hba := g.holdsVarFor(v, b, a)
				g.p.Assert(Not(hab), Lit(hba))
				g.p.Assert(Not(hba), Lit(hab))
			}
		}
	}
	for _, gid := range v.Generalizations {
		gv := g.o.VerbByID(gid)
		if gv == nil {
			continue
		}
		for subj, byObj := range g.holdsVar[v.ID] {
			for obj, hv := range byObj {
				s, o := findIndividual(individuals, subj), findIndividual(individuals, obj)
				if s == nil || o == nil {
					continue
				}
				g.p.Assert(Not(hv), Lit(g.holdsVarFor(gv, s, o)))
			}
		}
	}
	for _, eid := range v.MutualExclusions {
		ev := g.o.VerbByID(eid)
		if ev == nil {
			continue
		}
		for subj, byObj := range g.holdsVar[v.ID] {
			for obj, hv := range byObj {
				s, o := findIndividual(individuals, subj), findIndividual(individuals, obj)
				if s == nil || o == nil {
					continue
				}
				g.p.Assert(Not(hv), Not(g.holdsVarFor(ev, s, o)))
			}
		}
	}
	if len(v.Subspecies) > 0 {
		for subj, byObj := range g.holdsVar[v.ID] {
			for obj, hv := range byObj {
				s, o := findIndividual(individuals, subj), findIndividual(individuals, obj)
				if s == nil || o == nil {
					continue
				}
				var subLits []Literal
				for _, subID := range v.Subspecies {
					sub := g.o.VerbByID(subID)
					if sub == nil {
						continue
					}
					subLits = append(subLits, Lit(g.holdsVarFor(sub, s, o)))
					if sub.IsSymmetric {
						subLits = append(subLits, Lit(g.holdsVarFor(sub, o, s)))
					}
				}
				if len(subLits) > 0 {
					g.p.QuantifyIf(Lit(hv), 1, 1, subLits...)
				}
			}
		}
	}
	for _, superID := range verbsWithSubspecies(g.o, v.ID) {
		sv := g.o.VerbByID(superID)
		if sv == nil {
			continue
		}
		for subj, byObj := range g.holdsVar[v.ID] {
			for obj, hv := range byObj {
				s, o := findIndividual(individuals, subj), findIndividual(individuals, obj)
				if s == nil || o == nil {
					continue
				}
				g.p.Assert(Not(hv), Lit(g.holdsVarFor(sv, s, o)))
			}
		}
	}
	return nil
}

// verbsWithSubspecies returns every verb id in o that lists target as one
// of its Subspecies, i.e. target's direct superspecies.
func verbsWithSubspecies(o *Ontology, target VerbID) []VerbID {
	var out []VerbID
	for _, v := range o.verbs {
		for _, s := range v.Subspecies {
			if s == target {
				out = append(out, v.ID)
			}
		}
	}
	return out
}

func findIndividual(individuals []*Individual, id int64) *Individual {
	for _, ind := range individuals {
		if ind.id == id {
			return ind
		}
	}
	return nil
}

// eligibleForVerb returns every individual whose domain contains at least
// one kind referenced by one of v's shapes (either side), used for
// reflexivity/symmetry rules that range over "every eligible individual"
// rather than one specific shape.
func eligibleForVerb(g *genCtx, v *Verb, individuals []*Individual) []*Individual {
	kinds := make(map[ConceptID]bool)
	for _, shape := range v.Shapes {
		kinds[shape.SubjectKind] = true
		kinds[shape.ObjectKind] = true
	}
	var out []*Individual
	for _, ind := range individuals {
		dom := g.domains[ind.id]
		for k := range kinds {
			if dom.all[k] {
				out = append(out, ind)
				break
			}
		}
	}
	return out
}

// emitCardinality enforces shape's subject/object cardinality bounds: when
// IsA(i1, subject-kind) holds, between L and U of {Holds(v, i1, i2) : i2
// in the object domain} must be true, and symmetrically for the subject
// side. A Contradiction is raised statically when the object (or subject)
// domain is too small to ever satisfy the lower bound.
func (g *genCtx) emitCardinality(v *Verb, shape VerbShape, subjects, objects []*Individual) error {
	if v.ObjectLower > 0 && len(objects) < v.ObjectLower {
		return &Contradiction{
			Verb:   v.Name.String(),
			Kinds:  []string{kindName(g.o, shape.SubjectKind), kindName(g.o, shape.ObjectKind)},
			Detail: fmt.Sprintf("object lower bound %d exceeds domain size %d", v.ObjectLower, len(objects)),
		}
	}
	if v.SubjectLower > 0 && len(subjects) < v.SubjectLower {
		return &Contradiction{
			Verb:   v.Name.String(),
			Kinds:  []string{kindName(g.o, shape.SubjectKind), kindName(g.o, shape.ObjectKind)},
			Detail: fmt.Sprintf("subject lower bound %d exceeds domain size %d", v.SubjectLower, len(subjects)),
		}
	}
	for _, s := range subjects {
		var lits []Literal
		for _, o := range objects {
			lits = append(lits, Lit(g.holdsVarFor(v, s, o)))
		}
		if len(lits) == 0 {
			continue
		}
		upper := v.ObjectUpper
		if upper >= Unbounded {
			upper = len(lits)
		}
		g.p.QuantifyIf(g.conv(s, MonadicConceptLiteral{Concept: shape.SubjectKind, Polarity: true}), v.ObjectLower, upper, lits...)
	}
	for _, o := range objects {
		var lits []Literal
		for _, s := range subjects {
			lits = append(lits, Lit(g.holdsVarFor(v, s, o)))
		}
		if len(lits) == 0 {
			continue
		}
		upper := v.SubjectUpper
		if upper >= Unbounded {
			upper = len(lits)
		}
		g.p.QuantifyIf(g.conv(o, MonadicConceptLiteral{Concept: shape.ObjectKind, Polarity: true}), v.SubjectLower, upper, lits...)
	}
	return nil
}

func kindName(o *Ontology, k ConceptID) string {
	if c := o.ConceptByID(k); c != nil {
		return c.Name.String()
	}
	return "?"
}
