package imaginarium

// Individual is a runtime object participating in an invention: a
// permanent individual bound to a ProperNoun, or an ephemeral individual
// created during one Generate call. Individuals never hold a
// pointer back to their Ontology; all operations that need ontology
// context take it as a parameter, so Ontology, concepts and Individual
// never form a reference cycle.
type Individual struct {
	id int64 // monotonic, assigned by the owning Ontology or Generator

	Name       TokenString
	ProperName string // set if bound to a ProperNoun

	Kinds     []ConceptID
	Modifiers []MonadicConceptLiteral

	Container     *Individual
	ContainerPart PartID

	Parts      map[PartID][]*Individual
	Properties map[PropertyID]int // property -> solver variable id

	Ephemeral bool
}

// ID returns the monotonic identifier used for total ordering.
func (ind *Individual) ID() int64 { return ind.id }

// IsNamed reports whether tokens exactly matches this individual's name.
func (ind *Individual) IsNamed(tokens TokenString) bool {
	return ind.Name.Equal(tokens)
}

// HasKind reports whether k is (exactly) one of ind's asserted kinds. It
// does not walk superkinds; use Ontology.IsA for the transitive check.
func (ind *Individual) HasKind(k ConceptID) bool {
	for _, kk := range ind.Kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// addKind inserts k into Kinds maintaining the kind-list normalization
// invariant: the kind list never contains a kind strictly
// dominated by another kind already in the list.
func (ind *Individual) addKind(o *Ontology, k ConceptID) {
	for _, existing := range ind.Kinds {
		if existing == k {
			return
		}
		if o.IsSubkindOf(k, existing) {
			// k is more specific than an existing entry: replace it.
			ind.removeKind(existing)
			ind.Kinds = append(ind.Kinds, k)
			return
		}
		if o.IsSubkindOf(existing, k) {
			// k is dominated by an existing, more specific entry: skip.
			return
		}
	}
	ind.Kinds = append(ind.Kinds, k)
}

func (ind *Individual) removeKind(k ConceptID) {
	out := ind.Kinds[:0]
	for _, kk := range ind.Kinds {
		if kk != k {
			out = append(out, kk)
		}
	}
	ind.Kinds = out
}

// AddModifier asserts lit of ind, replacing any existing literal over the
// same concept (later assertions win, matching "is AP" re-assertion).
func (ind *Individual) AddModifier(lit MonadicConceptLiteral) {
	for i, m := range ind.Modifiers {
		if m.Concept == lit.Concept {
			ind.Modifiers[i] = lit
			return
		}
	}
	ind.Modifiers = append(ind.Modifiers, lit)
}

// HasModifier reports whether ind asserts exactly lit (same concept and
// polarity).
func (ind *Individual) HasModifier(lit MonadicConceptLiteral) bool {
	for _, m := range ind.Modifiers {
		if m == lit {
			return true
		}
	}
	return false
}
