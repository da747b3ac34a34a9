package imaginarium

// PartID identifies a Part within one Ontology's arena.
type PartID int

// Part is a containment slot on a kind: (name, count, kind, modifiers).
// During instance expansion every part yields Count fresh individuals of
// Kind, each tagged with Modifiers.
type Part struct {
	ID        PartID
	Name      TokenString // e.g. "eye", the name used in "the face's eye"
	Count     int
	Kind      ConceptID
	Modifiers []MonadicConceptLiteral
}

// PropertyID identifies a Property within one Ontology's arena.
type PropertyID int

// PropertyType distinguishes the two shapes a Property's value can take.
type PropertyType int

const (
	PropertyMenu PropertyType = iota
	PropertyInterval
)

// MenuRule is one rule-conditioned menu of allowed string values for a
// menu-typed property: "when Conditions hold of the individual, the menu
// is Values".
type MenuRule struct {
	Conditions []MonadicConceptLiteral
	Values     []string
	ListSource string // optional: load Values from "<ListSource>.txt"
}

// IntervalRule is one rule-conditioned tightening of a continuous-interval
// property.
type IntervalRule struct {
	Conditions []MonadicConceptLiteral
	Min, Max   float64
}

// Property is a per-individual typed attribute: either a finite menu of
// strings or a continuous interval. A property literally
// named "name" is treated specially by description generation
// (Invention.NameString).
type Property struct {
	ID        PropertyID
	Name      TokenString
	Type      PropertyType
	Menus     []MenuRule
	Intervals []IntervalRule
}

// MenuFor returns the values of the first MenuRule whose conditions all
// hold of lits (an individual's true literals), or the unconditioned
// (Conditions == nil) rule if none with conditions match.
func (p *Property) MenuFor(holds func(MonadicConceptLiteral) bool) ([]string, string) {
	var fallback *MenuRule
	for i := range p.Menus {
		r := &p.Menus[i]
		if len(r.Conditions) == 0 {
			fallback = r
			continue
		}
		if allHold(r.Conditions, holds) {
			return r.Values, r.ListSource
		}
	}
	if fallback != nil {
		return fallback.Values, fallback.ListSource
	}
	return nil, ""
}

// IntervalFor returns the tightest matching interval rule's bounds, or the
// widest (unconditioned) rule if no conditioned rule matches.
func (p *Property) IntervalFor(holds func(MonadicConceptLiteral) bool) (float64, float64, bool) {
	var fallback *IntervalRule
	for i := range p.Intervals {
		r := &p.Intervals[i]
		if len(r.Conditions) == 0 {
			fallback = r
			continue
		}
		if allHold(r.Conditions, holds) {
			return r.Min, r.Max, true
		}
	}
	if fallback != nil {
		return fallback.Min, fallback.Max, true
	}
	return 0, 0, false
}

func allHold(lits []MonadicConceptLiteral, holds func(MonadicConceptLiteral) bool) bool {
	for _, l := range lits {
		if !holds(l) {
			return false
		}
	}
	return true
}
