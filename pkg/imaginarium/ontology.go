package imaginarium

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Ontology is the set of all concepts, verbs, parts, properties,
// individuals and tests authored so far, plus the tries used to resolve
// them. It is an arena: every cross-reference elsewhere
// in this package is an opaque id resolved back through the Ontology,
// never a stored pointer.
type Ontology struct {
	id uuid.UUID // stable identifier for logs/metrics across re-entrant generations

	concepts     []*MonadicConcept
	conceptIndex map[string]ConceptID
	conceptTrie  *Trie[ConceptID]

	verbs     []*Verb
	verbIndex map[string]VerbID
	verbTrie  *Trie[VerbID]

	parts      []*Part
	properties []*Property

	properNouns          map[string]*Individual
	permanentIndividuals []*Individual

	tests []*Test

	locked bool

	morphology *Morphology

	author, description, instructions string
	buttons                           map[string]string // button label -> command text, delegated to the REPL collaborator

	nextIndividualID int64

	log *slog.Logger
}

// NewOntology creates an empty, unlocked ontology.
func NewOntology() *Ontology {
	return NewOntologyWithLogger(slog.Default())
}

// NewOntologyWithLogger creates an empty, unlocked ontology logging through
// logger (see internal/logging for the ambient slog wrapper this package
// is normally constructed with).
func NewOntologyWithLogger(logger *slog.Logger) *Ontology {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Ontology{
		id:           id,
		conceptIndex: make(map[string]ConceptID),
		conceptTrie:  NewTrie[ConceptID](),
		verbIndex:    make(map[string]VerbID),
		verbTrie:     NewTrie[VerbID](),
		properNouns:  make(map[string]*Individual),
		buttons:      make(map[string]string),
		morphology:   NewMorphology(),
		log:          logger.With(slog.String("ontology", id.String())),
	}
}

// ID returns this ontology instance's stable identifier.
func (o *Ontology) ID() uuid.UUID { return o.id }

// Morphology returns the morphology engine backing this ontology's noun
// and verb inflection.
func (o *Ontology) Morphology() *Morphology { return o.morphology }

// Lock prevents introduction of new referents; existing referents may
// still have new facts attached.
func (o *Ontology) Lock() {
	o.locked = true
	o.log.Debug("ontology locked")
}

// IsLocked reports whether Lock has been called.
func (o *Ontology) IsLocked() bool { return o.locked }

// --- lookup -----------------------------------------------------------

// Concept probes the concept index for an exact-name match, then the
// concept trie (covers both common nouns and adjectives), in that
// order.
func (o *Ontology) Concept(tokens TokenString) (*MonadicConcept, bool) {
	if id, ok := o.conceptIndex[tokens.key()]; ok {
		return o.concepts[id], true
	}
	if id, ok := o.conceptTrie.Lookup(tokens); ok {
		return o.concepts[id], true
	}
	return nil, false
}

// ConceptByID resolves a ConceptID back to its MonadicConcept, or nil if
// out of range.
func (o *Ontology) ConceptByID(id ConceptID) *MonadicConcept {
	if id < 0 || int(id) >= len(o.concepts) {
		return nil
	}
	return o.concepts[id]
}

// Verb probes the verb index, then the verb trie, which maps every
// inflected surface form to the same verb.
func (o *Ontology) Verb(tokens TokenString) (*Verb, bool) {
	if id, ok := o.verbIndex[tokens.key()]; ok {
		return o.verbs[id], true
	}
	if id, ok := o.verbTrie.Lookup(tokens); ok {
		return o.verbs[id], true
	}
	return nil, false
}

// VerbByID resolves a VerbID back to its Verb, or nil if out of range.
func (o *Ontology) VerbByID(id VerbID) *Verb {
	if id < 0 || int(id) >= len(o.verbs) {
		return nil
	}
	return o.verbs[id]
}

// PartByID resolves a PartID.
func (o *Ontology) PartByID(id PartID) *Part {
	if id < 0 || int(id) >= len(o.parts) {
		return nil
	}
	return o.parts[id]
}

// PropertyByID resolves a PropertyID.
func (o *Ontology) PropertyByID(id PropertyID) *Property {
	if id < 0 || int(id) >= len(o.properties) {
		return nil
	}
	return o.properties[id]
}

// ProperNoun looks up the individual bound to a proper noun's exact name.
func (o *Ontology) ProperNoun(tokens TokenString) (*Individual, bool) {
	ind, ok := o.properNouns[tokens.key()]
	return ind, ok
}

// --- introduction -------------------------------------------------------

// checkIntroduce enforces the locked-mode and name-collision rules shared
// by every add_* operation: introducing tokens as newKind fails with
// UnknownReferent if the ontology is locked and tokens is unknown, or with
// NameCollision if tokens already names a referent of a different kind.
func (o *Ontology) checkIntroduce(tokens TokenString, newKind ReferentKind) error {
	if existingKind, ok := o.existingKind(tokens); ok {
		if existingKind != newKind {
			return &NameCollision{Name: tokens.String(), ExistingKind: existingKind, AttemptKind: newKind}
		}
		return nil
	}
	if o.locked {
		return &UnknownReferent{Name: tokens.String(), Kind: newKind}
	}
	return nil
}

func (o *Ontology) existingKind(tokens TokenString) (ReferentKind, bool) {
	if c, ok := o.Concept(tokens); ok {
		return c.PartOfSpeech(), true
	}
	if _, ok := o.Verb(tokens); ok {
		return KindVerb, true
	}
	if _, ok := o.ProperNoun(tokens); ok {
		return KindProperNoun, true
	}
	return "", false
}

// AddCommonNoun returns the existing common noun named singular, or
// creates one (idempotent on name). plural may be empty,
// in which case it is computed lazily from morphology on first access via
// PluralForm.
func (o *Ontology) AddCommonNoun(singular, plural string) (*MonadicConcept, error) {
	tokens := Tokenize(singular)
	if existing, ok := o.Concept(tokens); ok {
		if existing.IsAdjective {
			return nil, &NameCollision{Name: singular, ExistingKind: KindAdjective, AttemptKind: KindCommonNoun}
		}
		return existing, nil
	}
	if err := o.checkIntroduce(tokens, KindCommonNoun); err != nil {
		return nil, err
	}
	c := &MonadicConcept{
		ID:               ConceptID(len(o.concepts)),
		Name:             tokens,
		Singular:         singular,
		Plural:           plural,
		SubkindFrequency: make(map[ConceptID]float64),
	}
	o.concepts = append(o.concepts, c)
	o.conceptIndex[tokens.key()] = c.ID
	o.conceptTrie.Insert(tokens, c.ID)
	if plural != "" {
		o.conceptTrie.Insert(Tokenize(plural), c.ID)
		o.conceptTrie.AnnotateAsPlural(Tokenize(plural))
	}
	return c, nil
}

// PluralForm returns c's plural form, computing and caching it via
// morphology if it was never set explicitly.
func (o *Ontology) PluralForm(c *MonadicConcept) (string, error) {
	if c.Plural != "" {
		return c.Plural, nil
	}
	p, err := o.morphology.PluralOfNoun(c.Singular)
	if err != nil {
		return "", err
	}
	c.Plural = p
	o.conceptTrie.Insert(Tokenize(p), c.ID)
	o.conceptTrie.AnnotateAsPlural(Tokenize(p))
	return p, nil
}

// AddAdjective returns the existing adjective named name, or creates one.
func (o *Ontology) AddAdjective(name string) (*MonadicConcept, error) {
	tokens := Tokenize(name)
	if existing, ok := o.Concept(tokens); ok {
		if !existing.IsAdjective {
			return nil, &NameCollision{Name: name, ExistingKind: KindCommonNoun, AttemptKind: KindAdjective}
		}
		return existing, nil
	}
	if err := o.checkIntroduce(tokens, KindAdjective); err != nil {
		return nil, err
	}
	c := &MonadicConcept{
		ID:          ConceptID(len(o.concepts)),
		Name:        tokens,
		IsAdjective: true,
	}
	o.concepts = append(o.concepts, c)
	o.conceptIndex[tokens.key()] = c.ID
	o.conceptTrie.Insert(tokens, c.ID)
	return c, nil
}

// AddVerb returns the existing verb named base, or creates one and
// installs its inflected forms via SetBaseForm.
func (o *Ontology) AddVerb(base string) (*Verb, error) {
	tokens := Tokenize(base)
	if existing, ok := o.Verb(tokens); ok {
		return existing, nil
	}
	if err := o.checkIntroduce(tokens, KindVerb); err != nil {
		return nil, err
	}
	v := &Verb{
		ID:           VerbID(len(o.verbs)),
		Name:         tokens,
		SubjectUpper: Unbounded,
		ObjectUpper:  Unbounded,
		Density:      0.5,
	}
	o.verbs = append(o.verbs, v)
	o.verbIndex[tokens.key()] = v.ID
	if err := o.SetBaseForm(v, base); err != nil {
		return v, err
	}
	return v, nil
}

// AddPart creates and registers a new Part, attaching it to owner's Parts
// list.
func (o *Ontology) AddPart(owner *MonadicConcept, name string, count int, kind ConceptID, modifiers []MonadicConceptLiteral) *Part {
	p := &Part{
		ID:        PartID(len(o.parts)),
		Name:      Tokenize(name),
		Count:     count,
		Kind:      kind,
		Modifiers: modifiers,
	}
	o.parts = append(o.parts, p)
	owner.Parts = append(owner.Parts, p.ID)
	return p
}

// AddProperty creates and registers a new Property, attaching it to
// owner's Properties list.
func (o *Ontology) AddProperty(owner *MonadicConcept, name string, typ PropertyType) *Property {
	p := &Property{
		ID:   PropertyID(len(o.properties)),
		Name: Tokenize(name),
		Type: typ,
	}
	o.properties = append(o.properties, p)
	owner.Properties = append(owner.Properties, p.ID)
	return p
}

// AddTest registers a Test record.
func (o *Ontology) AddTest(noun ConceptID, modifiers []MonadicConceptLiteral, shouldExist bool, success, failure string) *Test {
	t := &Test{
		ID:             TestID(len(o.tests)),
		Noun:           noun,
		Modifiers:      modifiers,
		ShouldExist:    shouldExist,
		SuccessMessage: success,
		FailureMessage: failure,
	}
	o.tests = append(o.tests, t)
	return t
}

// Tests returns all registered tests.
func (o *Ontology) Tests() []*Test { return o.tests }

// SetAuthor, SetDescription, SetInstructions record driver metadata from
// the "author:"/"description:"/"instructions:" statements.
func (o *Ontology) SetAuthor(text string)       { o.author = text }
func (o *Ontology) SetDescription(text string)  { o.description = text }
func (o *Ontology) SetInstructions(text string) { o.instructions = text }
func (o *Ontology) Author() string              { return o.author }
func (o *Ontology) Description() string         { return o.description }
func (o *Ontology) Instructions() string        { return o.instructions }

// AddButton binds a button label to command text, delegated to the
// external REPL collaborator: this package only records the
// binding.
func (o *Ontology) AddButton(label, command string) { o.buttons[label] = command }

// Buttons returns all registered button bindings.
func (o *Ontology) Buttons() map[string]string { return o.buttons }

// --- kind lattice ---------------------------------------------------

// DeclareSuperkind makes super a superkind of sub. Idempotent; rejects
// cycles.
func (o *Ontology) DeclareSuperkind(sub, super ConceptID) error {
	if sub == super {
		return &Contradiction{Verb: "", Kinds: []string{o.ConceptByID(sub).Name.String()}, Detail: "a kind cannot be its own superkind"}
	}
	if o.isAncestor(sub, super) {
		return nil // already declared
	}
	if o.isAncestor(super, sub) {
		return &Contradiction{Detail: "declaring " + o.ConceptByID(super).Name.String() + " as a superkind of " + o.ConceptByID(sub).Name.String() + " would create a cycle"}
	}
	subC, superC := o.ConceptByID(sub), o.ConceptByID(super)
	subC.Superkinds = append(subC.Superkinds, super)
	superC.Subkinds = append(superC.Subkinds, sub)
	return nil
}

// isAncestor reports whether ancestor is super (or equal to) a, reachable
// by walking Superkinds.
func (o *Ontology) isAncestor(a, ancestor ConceptID) bool {
	if a == ancestor {
		return true
	}
	seen := make(map[ConceptID]bool)
	queue := []ConceptID{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if cur == ancestor {
			return true
		}
		c := o.ConceptByID(cur)
		if c == nil {
			continue
		}
		queue = append(queue, c.Superkinds...)
	}
	return false
}

// IsSubkindOf reports whether sub is a strict subkind of ancestor: i.e.
// whether ancestor is reachable from sub via Superkinds. It is false when
// sub == ancestor.
func (o *Ontology) IsSubkindOf(sub, ancestor ConceptID) bool {
	if sub == ancestor {
		return false
	}
	return o.isAncestor(sub, ancestor)
}

// IsA reports whether kind or any of its superkinds equals ancestor (a
// reflexive version of IsSubkindOf).
func (o *Ontology) IsA(kind, ancestor ConceptID) bool {
	return kind == ancestor || o.isAncestor(kind, ancestor)
}

// SetSubkindFrequency annotates the sub->super edge with a relative
// frequency hint.
func (o *Ontology) SetSubkindFrequency(super, sub ConceptID, freq float64) {
	superC := o.ConceptByID(super)
	if superC.SubkindFrequency == nil {
		superC.SubkindFrequency = make(map[ConceptID]float64)
	}
	superC.SubkindFrequency[sub] = freq
}

// LeastUpperBound returns the nearest common ancestor of a and b over the
// kind DAG via search over a's super-chain, or
// InvalidConceptID if none exists.
func (o *Ontology) LeastUpperBound(a, b ConceptID) ConceptID {
	ancestorsOfA := make(map[ConceptID]int)
	depth := 0
	queue := []ConceptID{a}
	for len(queue) > 0 {
		var next []ConceptID
		for _, c := range queue {
			if _, seen := ancestorsOfA[c]; seen {
				continue
			}
			ancestorsOfA[c] = depth
			if cc := o.ConceptByID(c); cc != nil {
				next = append(next, cc.Superkinds...)
			}
		}
		queue = next
		depth++
	}
	// BFS from b, return the first ancestor-of-a we hit (nearest to b).
	seen := make(map[ConceptID]bool)
	queue = []ConceptID{b}
	for len(queue) > 0 {
		var next []ConceptID
		for _, c := range queue {
			if seen[c] {
				continue
			}
			seen[c] = true
			if _, ok := ancestorsOfA[c]; ok {
				return c
			}
			if cc := o.ConceptByID(c); cc != nil {
				next = append(next, cc.Superkinds...)
			}
		}
		queue = next
	}
	return InvalidConceptID
}

// --- individuals ---------------------------------------------------

func (o *Ontology) nextID() int64 {
	return atomic.AddInt64(&o.nextIndividualID, 1)
}

// PermanentIndividual registers a new permanent individual bound to a
// proper noun of the given kinds. Reused across generations.
func (o *Ontology) PermanentIndividual(kinds []ConceptID, name string) (*Individual, error) {
	tokens := Tokenize(name)
	if err := o.checkIntroduce(tokens, KindProperNoun); err != nil {
		return nil, err
	}
	if existing, ok := o.properNouns[tokens.key()]; ok {
		for _, k := range kinds {
			existing.addKind(o, k)
		}
		return existing, nil
	}
	ind := &Individual{
		id:         o.nextID(),
		Name:       tokens,
		ProperName: name,
		Parts:      make(map[PartID][]*Individual),
		Properties: make(map[PropertyID]int),
	}
	for _, k := range kinds {
		ind.addKind(o, k)
	}
	o.properNouns[tokens.key()] = ind
	o.permanentIndividuals = append(o.permanentIndividuals, ind)
	return ind, nil
}

// PermanentIndividuals returns every permanent individual registered so
// far, in insertion order.
func (o *Ontology) PermanentIndividuals() []*Individual {
	return o.permanentIndividuals
}

// EphemeralIndividual creates a transient individual that is not
// registered in the ontology; it lives only within the caller's
// Generation.
func (o *Ontology) EphemeralIndividual(kinds []ConceptID, name string) *Individual {
	ind := &Individual{
		id:         o.nextID(),
		Name:       Tokenize(name),
		Parts:      make(map[PartID][]*Individual),
		Properties: make(map[PropertyID]int),
		Ephemeral:  true,
	}
	for _, k := range kinds {
		ind.addKind(o, k)
	}
	return ind
}

// EraseConcepts tears down every referent in the ontology, resetting it to
// an empty, unlocked state.
func (o *Ontology) EraseConcepts() {
	*o = *NewOntologyWithLogger(o.log)
}
