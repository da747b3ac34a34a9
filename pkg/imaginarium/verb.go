package imaginarium

// VerbID identifies a Verb within one Ontology's arena.
type VerbID int

// InvalidVerbID marks the absence of a verb reference.
const InvalidVerbID VerbID = -1

// Unbounded is the cardinality sentinel meaning "no upper bound". It is
// large enough that no authored bound will reach it, but strictly below
// any integer type's maximum so cardinality encodings (which may add a
// small constant) never overflow.
const Unbounded = 1 << 30

// VerbShape is one admissible (subject-kind+modifiers, object-kind+
// modifiers) shape for a verb. A verb accumulates one shape per authored
// statement about it.
type VerbShape struct {
	SubjectKind      ConceptID
	SubjectModifiers []MonadicConceptLiteral
	ObjectKind       ConceptID
	ObjectModifiers  []MonadicConceptLiteral
}

// Verb is a binary relation with cardinality bounds, algebraic flags,
// admissible argument shapes and inflected surface forms.
type Verb struct {
	ID     VerbID
	Name   TokenString // base form, used as the standard name
	Shapes []VerbShape

	IsReflexive     bool
	IsAntiReflexive bool
	IsSymmetric     bool
	IsAntiSymmetric bool

	SubjectLower, SubjectUpper int
	ObjectLower, ObjectUpper   int

	Density float64 // initial boolean bias in (0,1)

	Generalizations  []VerbID
	MutualExclusions []VerbID
	Superspecies     []VerbID
	Subspecies       []VerbID

	BaseForm, ThirdPerson, Gerund, PassiveParticiple string
}

// AddShape appends a new admissible argument shape. A new shape is always
// appended, never merged with an existing shape whose kind is a
// super-kind with empty modifiers: merging can silently discard modifier
// information attached to the more specific shape, and superspecies
// propagation in the generator already makes the redundant-looking shapes
// harmless.
func (v *Verb) AddShape(shape VerbShape) {
	v.Shapes = append(v.Shapes, shape)
}

// ancestorHasFlag walks the superspecies chain (breadth-first, cycle-safe)
// testing each ancestor (and v itself) against get.
func ancestorHasFlag(o *Ontology, v *Verb, get func(*Verb) bool) bool {
	seen := make(map[VerbID]bool)
	queue := []VerbID{v.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		vv := o.VerbByID(id)
		if vv == nil {
			continue
		}
		if get(vv) {
			return true
		}
		queue = append(queue, vv.Superspecies...)
	}
	return false
}

// AncestorIsReflexive holds iff v or any superspecies ancestor of v is
// reflexive.
func AncestorIsReflexive(o *Ontology, v *Verb) bool {
	return ancestorHasFlag(o, v, func(vv *Verb) bool { return vv.IsReflexive })
}

// AncestorIsAntiReflexive holds iff v or any superspecies ancestor of v is
// anti-reflexive.
func AncestorIsAntiReflexive(o *Ontology, v *Verb) bool {
	return ancestorHasFlag(o, v, func(vv *Verb) bool { return vv.IsAntiReflexive })
}

// SetBaseForm installs all four inflected forms (computed via morphology,
// with Gerund enumerating every plausible surface form) into the
// ontology's verb trie, canonically keyed off base. This is the only
// supported way to set a verb's surface forms, because every inflection
// must be indexed for the parser's verb trie to resolve any of them.
func (o *Ontology) SetBaseForm(v *Verb, base string) error {
	v.BaseForm = base
	third, err := o.morphology.SingularOfVerb(base)
	if err != nil {
		return err
	}
	v.ThirdPerson = third
	pp, err := o.morphology.PassiveParticiple(base)
	if err != nil {
		return err
	}
	v.PassiveParticiple = pp
	gerunds := o.morphology.GerundsOfVerb(base)
	if len(gerunds) > 0 {
		v.Gerund = gerunds[0]
	}

	o.verbTrie.Insert(Tokenize(base), v.ID)
	o.verbTrie.Insert(Tokenize(third), v.ID)
	o.verbTrie.Insert(Tokenize(pp), v.ID)
	for _, g := range gerunds {
		o.verbTrie.Insert(Tokenize(g), v.ID)
	}
	return nil
}
