package imaginarium

import "fmt"

// ReferentKind labels the part-of-speech family a referent belongs to, used
// in diagnostics (NameCollision, UnknownReferent) and returned by
// MonadicConcept.PartOfSpeech().
type ReferentKind string

const (
	KindCommonNoun ReferentKind = "common noun"
	KindProperNoun ReferentKind = "proper noun"
	KindAdjective  ReferentKind = "adjective"
	KindVerb       ReferentKind = "verb"
	KindPart       ReferentKind = "part"
	KindProperty   ReferentKind = "property"
	KindIndividual ReferentKind = "individual"
)

// GrammaticalError reports that an input sentence matched no pattern, or
// crossed a pattern's cut marker and then failed a later constituent.
// Plain() renders terminal text; Rich() renders the same failure as
// markdown, with the sentence in backticks and the token Offset appended.
type GrammaticalError struct {
	Sentence    string // the offending sentence, as authored
	PatternName string // the pattern being attempted when the cut was crossed, if any
	Segment     string // the segment that could not be scanned
	Offset      int    // token offset of the failure within Sentence
}

func (e *GrammaticalError) Error() string { return e.Plain() }

func (e *GrammaticalError) Plain() string {
	if e.PatternName == "" {
		return fmt.Sprintf("no sentence pattern matches: %q", e.Sentence)
	}
	return fmt.Sprintf("pattern %q committed then failed to scan %s in: %q", e.PatternName, e.Segment, e.Sentence)
}

func (e *GrammaticalError) Rich() string {
	return fmt.Sprintf("**grammatical error** in `%s`: %s (near token %d)", e.Sentence, e.Plain(), e.Offset)
}

// NameCollision reports an attempt to add a referent under a name already
// owned by a different referent type.
type NameCollision struct {
	Name         string
	ExistingKind ReferentKind
	AttemptKind  ReferentKind
}

func (e *NameCollision) Error() string { return e.Plain() }

func (e *NameCollision) Plain() string {
	return fmt.Sprintf("%q is already a %s, cannot also be a %s", e.Name, e.ExistingKind, e.AttemptKind)
}

func (e *NameCollision) Rich() string {
	return fmt.Sprintf("**name collision**: `%s` is already a *%s*, cannot also be a *%s*", e.Name, e.ExistingKind, e.AttemptKind)
}

// UnknownReferent reports that a locked ontology would otherwise have
// introduced a new referent.
type UnknownReferent struct {
	Name string
	Kind ReferentKind
}

func (e *UnknownReferent) Error() string { return e.Plain() }

func (e *UnknownReferent) Plain() string {
	return fmt.Sprintf("%q is not a known %s and the ontology is locked", e.Name, e.Kind)
}

func (e *UnknownReferent) Rich() string {
	return fmt.Sprintf("**unknown referent**: `%s` (%s) — ontology is locked", e.Name, e.Kind)
}

// MorphologyUnknown reports that a one-word noun or verb could not be
// inflected by any rule or irregular-table entry.
type MorphologyUnknown struct {
	Token string
}

func (e *MorphologyUnknown) Error() string { return e.Plain() }

func (e *MorphologyUnknown) Plain() string {
	return fmt.Sprintf("don't know how to inflect %q", e.Token)
}

func (e *MorphologyUnknown) Rich() string {
	return fmt.Sprintf("**morphology error**: don't know how to inflect `%s`", e.Token)
}

// Contradiction reports that constraint emission detected a statically
// impossible requirement, e.g. a verb's lower cardinality bound exceeding
// the size of its object domain.
type Contradiction struct {
	Verb   string
	Kinds  []string
	Detail string
}

func (e *Contradiction) Error() string { return e.Plain() }

func (e *Contradiction) Plain() string {
	return fmt.Sprintf("contradiction involving verb %q over kinds %v: %s", e.Verb, e.Kinds, e.Detail)
}

func (e *Contradiction) Rich() string {
	return fmt.Sprintf("**contradiction**: `%s` over %v — %s", e.Verb, e.Kinds, e.Detail)
}

// DefinitionLoad wraps a parser error raised while loading one line of one
// definitions file, with enough context for the driver boundary to report
// file + line + offending input + pattern tried.
type DefinitionLoad struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *DefinitionLoad) Error() string {
	return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *DefinitionLoad) Unwrap() error { return e.Err }
