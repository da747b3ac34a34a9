package imaginarium

// ConceptID identifies a MonadicConcept (a common noun or an adjective)
// within one Ontology's arena. EraseConcepts resets the arena, so IDs
// start again from 0 afterwards.
type ConceptID int

// InvalidConceptID marks the absence of a concept reference.
const InvalidConceptID ConceptID = -1

// MonadicConceptLiteral is a signed concept: (concept, polarity). It is the
// only thing constraints ever store for monadic facts.
type MonadicConceptLiteral struct {
	Concept  ConceptID
	Polarity bool // true = asserted, false = negated
}

// Negate returns the literal with polarity flipped.
func (l MonadicConceptLiteral) Negate() MonadicConceptLiteral {
	return MonadicConceptLiteral{Concept: l.Concept, Polarity: !l.Polarity}
}

// AlternativeSet encodes "between min and max of {a, ¬b, c, …}" attached to
// a kind.
type AlternativeSet struct {
	Alternatives           []MonadicConceptLiteral
	Frequencies            []float64 // parallel to Alternatives; the "(N)" weight or 0
	MinCount               int
	MaxCount               int
	AllowPreInitialization bool
}

// ConditionalModifier is "if all Conditions are true of an individual of
// this kind, then Modifier is true".
type ConditionalModifier struct {
	Conditions []MonadicConceptLiteral
	Modifier   MonadicConceptLiteral
}

// MonadicConcept is the unified representation of both common nouns
// (kinds) and adjectives; the parser and generator only ever need the
// shared name plus the fields below, so one tagged struct is simpler than
// a type hierarchy. Which fields are meaningful is determined by
// IsAdjective.
type MonadicConcept struct {
	ID          ConceptID
	Name        TokenString // standard (singular) name
	IsAdjective bool

	// --- CommonNoun fields ---
	Singular, Plural     string
	Subkinds, Superkinds []ConceptID
	SubkindFrequency     map[ConceptID]float64 // edge-annotated relative frequency
	RelevantAdjectives   []ConceptID
	AlternativeSets      []*AlternativeSet
	ImpliedAdjectives    []*ConditionalModifier
	Parts                []PartID
	Properties           []PropertyID
	NameTemplate         []TemplateToken
	DescriptionTemplate  []TemplateToken
	SuppressDescription  bool
	InitialProbability   float64

	// --- Adjective fields ---
	IsSilent       bool
	ReferenceCount int

	ephemeral bool
}

// PartOfSpeech returns a human-readable diagnostic tag, used by
// NameCollision messages.
func (c *MonadicConcept) PartOfSpeech() ReferentKind {
	if c.IsAdjective {
		return KindAdjective
	}
	return KindCommonNoun
}

// IsNamed reports whether tokens exactly matches this concept's standard
// name.
func (c *MonadicConcept) IsNamed(tokens TokenString) bool {
	return c.Name.Equal(tokens)
}
