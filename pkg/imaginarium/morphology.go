package imaginarium

import (
	"strings"

	inflect "github.com/cv/go-inflect/v2"
)

// copulaForms are the forms of "be" the parser and morphology layer treat
// specially: a verb phrase built on one of these is rewritten wholesale
// rather than inflected word-by-word.
var copulaForms = map[string]bool{
	"is": true, "are": true, "be": true, "being": true, "was": true, "were": true,
}

// prepositions is the small closed list consulted when trimming a trailing
// particle off a verb phrase (e.g. "work for", "married to").
var prepositions = map[string]bool{
	"for": true, "to": true, "with": true, "by": true, "of": true,
	"in": true, "on": true, "at": true, "from": true, "about": true,
}

// Morphology holds the (mutable, per-ontology) irregular tables layered on
// top of go-inflect's regular rule engine. Each Ontology owns one.
type Morphology struct {
	irregularPlural   map[string]string
	irregularSingular map[string]string
	irregularPassive  map[string]string
}

// NewMorphology creates a Morphology seeded with the default irregular
// tables.
func NewMorphology() *Morphology {
	m := &Morphology{
		irregularPlural:   make(map[string]string, len(defaultIrregularNounPlurals)),
		irregularSingular: make(map[string]string, len(defaultIrregularNounPlurals)),
		irregularPassive:  make(map[string]string, len(defaultIrregularPassiveParticiples)),
	}
	for s, p := range defaultIrregularNounPlurals {
		m.irregularPlural[s] = p
		m.irregularSingular[p] = s
	}
	for b, pp := range defaultIrregularPassiveParticiples {
		m.irregularPassive[b] = pp
	}
	return m
}

// AddIrregularNoun registers a singular/plural pair that overrides both
// go-inflect's and the default table's predictions.
func (m *Morphology) AddIrregularNoun(singular, plural string) {
	singular, plural = strings.ToLower(singular), strings.ToLower(plural)
	m.irregularPlural[singular] = plural
	m.irregularSingular[plural] = singular
}

// PluralOfNoun returns the plural form of a singular noun phrase. Only the
// head word (the last token) is inflected; leading modifiers pass through
// unchanged. Returns MorphologyUnknown if the head word cannot be
// inflected by the irregular table or go-inflect's rule engine.
func (m *Morphology) PluralOfNoun(sing string) (string, error) {
	words := strings.Fields(sing)
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: sing}
	}
	head := strings.ToLower(words[len(words)-1])
	if p, ok := m.irregularPlural[head]; ok {
		words[len(words)-1] = p
		return strings.Join(words, " "), nil
	}
	p := inflect.PluralNoun(head)
	if p == "" {
		return "", &MorphologyUnknown{Token: sing}
	}
	words[len(words)-1] = p
	return strings.Join(words, " "), nil
}

// SingularOfNoun is the inverse of PluralOfNoun.
func (m *Morphology) SingularOfNoun(plur string) (string, error) {
	words := strings.Fields(plur)
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: plur}
	}
	head := strings.ToLower(words[len(words)-1])
	if s, ok := m.irregularSingular[head]; ok {
		words[len(words)-1] = s
		return strings.Join(words, " "), nil
	}
	s := inflect.SingularNoun(head)
	if s == "" || s == head {
		return "", &MorphologyUnknown{Token: plur}
	}
	words[len(words)-1] = s
	return strings.Join(words, " "), nil
}

// NounAppearsPlural is the heuristic used when a common noun is first
// introduced in a position with no determiner: if the head word is a
// registered irregular plural or go-inflect recognizes it as the plural of
// some other word, treat the introduced form as plural.
func (m *Morphology) NounAppearsPlural(tokens TokenString) bool {
	if tokens.Len() == 0 {
		return false
	}
	head := string(tokens.At(tokens.Len() - 1))
	if _, ok := m.irregularSingular[head]; ok {
		return true
	}
	s := inflect.SingularNoun(head)
	return s != "" && s != head
}

// SingularOfVerb rewrites a verb phrase to subject-singular (third-person)
// form. If the phrase contains a copula, the copula is replaced with "is";
// otherwise the head word is inflected via noun morphology rules, which is
// how English regularly forms third-person-singular verbs ("love"->"loves"
// is the same suffix rule as "glove"->"gloves").
func (m *Morphology) SingularOfVerb(phrase string) (string, error) {
	words := strings.Fields(phrase)
	for i, w := range words {
		if copulaForms[strings.ToLower(w)] {
			words[i] = "is"
			return strings.Join(words, " "), nil
		}
	}
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: phrase}
	}
	head := strings.ToLower(words[0])
	p := inflect.PluralNoun(head)
	if p == "" {
		return "", &MorphologyUnknown{Token: phrase}
	}
	words[0] = p
	return strings.Join(words, " "), nil
}

// PluralOfVerb is the inverse of SingularOfVerb, using go-inflect's verb
// table ("loves"->"love", "is"->"are") on the head word.
func (m *Morphology) PluralOfVerb(phrase string) (string, error) {
	words := strings.Fields(phrase)
	for i, w := range words {
		if copulaForms[strings.ToLower(w)] {
			words[i] = "are"
			return strings.Join(words, " "), nil
		}
	}
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: phrase}
	}
	head := strings.ToLower(words[0])
	s := inflect.PluralVerb(head)
	if s == "" {
		s = inflect.SingularNoun(head)
	}
	if s == "" {
		return "", &MorphologyUnknown{Token: phrase}
	}
	words[0] = s
	return strings.Join(words, " "), nil
}

// GerundsOfVerb enumerates every plausible gerund surface form of a base
// verb (for "love" the list includes "loving", for "hop" "hopping", for
// "marry" "marrying", next to the plain head+"ing" form).
// All forms are installed in the verb trie, because English gerund
// formation has edge cases (doubled final consonant, dropped silent e)
// that are cheap to enumerate but error-prone to pick a single "correct"
// answer for ahead of time.
func (m *Morphology) GerundsOfVerb(base string) []string {
	words := strings.Fields(base)
	if len(words) == 0 {
		return nil
	}
	head := strings.ToLower(words[0])
	rest := words[1:]
	candidates := gerundCandidates(head)
	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool)
	for _, c := range candidates {
		phrase := strings.Join(append([]string{c}, rest...), " ")
		if !seen[phrase] {
			seen[phrase] = true
			out = append(out, phrase)
		}
	}
	return out
}

// gerundCandidates returns the plausible "-ing" forms of a single verb
// head word. go-inflect's participle is always one candidate; the rewrite
// rules below contribute the rest, so every form an author might type ends
// up in the verb trie.
func gerundCandidates(head string) []string {
	if head == "" {
		return nil
	}
	var out []string
	if p := inflect.PresentParticiple(head); p != "" {
		out = append(out, p)
	}
	switch {
	case strings.HasSuffix(head, "ie"):
		// "die" -> "dying"
		out = append(out, head[:len(head)-2]+"ying")
	case strings.HasSuffix(head, "e") && !strings.HasSuffix(head, "ee"):
		// "love" -> "loving"; the doubled-e case ("agree") keeps its e.
		out = append(out, head[:len(head)-1]+"ing")
	}
	if isCVC(head) {
		out = append(out, head+string(head[len(head)-1])+"ing")
	}
	out = append(out, head+"ing")
	return out
}

// isCVC reports whether word ends in a single consonant preceded by a
// single vowel preceded by a consonant (the doubling condition for short
// verbs like "hop"->"hopping").
func isCVC(word string) bool {
	if len(word) < 3 {
		return false
	}
	isVowel := func(b byte) bool { return strings.ContainsRune("aeiou", rune(b)) }
	n := len(word)
	return !isVowel(word[n-1]) && isVowel(word[n-2]) && !isVowel(word[n-3]) && word[n-1] != 'w' && word[n-1] != 'x' && word[n-1] != 'y'
}

// PassiveParticiple returns the passive-participle ("Vpp") form of a base
// verb, consulting the irregular table, then go-inflect's past-participle
// table, then the regular "+ed"/"+d" rule.
func (m *Morphology) PassiveParticiple(base string) (string, error) {
	words := strings.Fields(base)
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: base}
	}
	head := strings.ToLower(words[0])
	if pp, ok := m.irregularPassive[head]; ok {
		words[0] = pp
		return strings.Join(words, " "), nil
	}
	if pp := inflect.PastParticiple(head); pp != "" {
		words[0] = pp
		return strings.Join(words, " "), nil
	}
	switch {
	case strings.HasSuffix(head, "e"):
		words[0] = head + "d"
	case isCVC(head):
		words[0] = head + string(head[len(head)-1]) + "ed"
	default:
		words[0] = head + "ed"
	}
	return strings.Join(words, " "), nil
}

// BaseFormOfGerund inverts a gerund phrase, including particle-final forms
// like "getting married to" (where the particle "to" simply passes
// through untouched and only the head word is uninflected), and strips a
// doubled consonant introduced by the CVC doubling rule.
func (m *Morphology) BaseFormOfGerund(gerund string) (string, error) {
	words := strings.Fields(gerund)
	if len(words) == 0 {
		return "", &MorphologyUnknown{Token: gerund}
	}
	head := strings.ToLower(words[0])
	if !strings.HasSuffix(head, "ing") {
		return "", &MorphologyUnknown{Token: gerund}
	}
	stem := head[:len(head)-3]
	switch {
	case len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] && !strings.ContainsRune("aeiou", rune(stem[len(stem)-1])):
		stem = stem[:len(stem)-1]
	case len(stem) <= 2 && strings.HasSuffix(stem, "y"):
		// Only single-consonant-plus-y stems ("dy", "ly", "ty", "vy") come
		// from an "ie" base ("die", "lie", "tie", "vie") via gerundCandidates'
		// ie->ying rule; longer -y stems ("marry", "study", "copy") are
		// already their own base form and must not be rewritten.
		stem = stem[:len(stem)-1] + "ie"
	default:
		if stem != "" && !strings.HasSuffix(stem, "e") && needsSilentE(stem) {
			stem += "e"
		}
	}
	words[0] = stem
	return strings.Join(words, " "), nil
}

// needsSilentE is a narrow heuristic for verbs whose base form ends in a
// silent e that the "-ing" rule dropped (e.g. "loving" -> "lov" -> "love").
// It is intentionally conservative: it only fires for stems ending in a
// single consonant preceded by a single vowel, which is the common case in
// the authoring vocabulary this grammar targets.
func needsSilentE(stem string) bool {
	n := len(stem)
	if n < 2 {
		return false
	}
	isVowel := func(b byte) bool { return strings.ContainsRune("aeiou", rune(b)) }
	return !isVowel(stem[n-1]) && isVowel(stem[n-2]) && (n < 3 || !isVowel(stem[n-3]))
}
