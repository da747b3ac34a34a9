package imaginarium

import "strings"

// Number records the grammatical number a segment was scanned with, or
// Unknown when nothing in the input settled the question and a feature
// check must resolve it.
type Number int

const (
	NumberUnknown Number = iota
	Singular
	Plural
)

// NP is the result of scanning a noun-phrase segment.
type NP struct {
	// Modifiers are concepts recognized before the head, most specific
	// last excluded (head is separate).
	Modifiers []MonadicConceptLiteral
	// Head is the last recognized monadic concept in the phrase, or
	// InvalidConceptID if the phrase names something not yet in the
	// ontology (a new common noun being introduced).
	Head ConceptID
	// NewName holds the raw text when Head is invalid: the phrase
	// introduces a brand new common noun.
	NewName string

	Number               Number
	ExplicitCount        int // -1 if no determiner/numeral set an explicit count
	BeginsWithDeterminer bool
	RelativeFrequency    float64 // 0 if unset
	Text                 TokenString
}

// negationWords is the closed set recognized as a literal-polarity flip
// prefix on both NP and AP segments.
var negationWords = map[string]bool{"not": true, "non": true, "non-": true}

// scanNP scans a noun phrase starting at the cursor's current position.
// With inList false (as every caller passes it) the phrase stops at ",",
// "and" and "or", so it never consumes a separator; with inList true those
// tokens are not stops and can become part of a new-name span.
func scanNP(o *Ontology, c *Cursor, inList bool, stop func(Token) bool) (NP, bool) {
	mark := c.Save()
	result := NP{Head: InvalidConceptID, ExplicitCount: -1}

	switch tok, ok := c.Peek(); {
	case ok && (tok == "a" || tok == "an"):
		c.Next()
		result.Number = Singular
		result.BeginsWithDeterminer = true
	case ok && tok == "all":
		c.Next()
		result.Number = Plural
	default:
		if n, ok2 := c.ScanInt(); ok2 {
			result.ExplicitCount = n
			if n == 1 {
				result.Number = Singular
			} else {
				result.Number = Plural
			}
		}
	}

	for {
		save := c.Save()
		tok, ok := c.Peek()
		if !ok || stop(tok) {
			break
		}
		if !inList && (tok == "," || tok == "and" || tok == "or") {
			break
		}
		polarity := true
		if negationWords[string(tok)] {
			c.Next()
			polarity = false
			tok, ok = c.Peek()
			if !ok {
				c.Restore(save)
				break
			}
		}
		val, length, found := o.conceptTrie.LongestPrefixMatch(c.tokens, c.pos)
		if !found {
			c.Restore(save)
			break
		}
		for i := 0; i < length; i++ {
			c.Next()
		}
		if result.Head != InvalidConceptID {
			result.Modifiers = append(result.Modifiers, MonadicConceptLiteral{Concept: result.Head, Polarity: true})
		}
		result.Head = val
		if !polarity {
			// A negated head becomes a negated modifier once something
			// else becomes head; if nothing follows, store as-is.
			result.Modifiers = append(result.Modifiers, MonadicConceptLiteral{Concept: val, Polarity: false})
			result.Head = InvalidConceptID
		}
	}

	if result.Head == InvalidConceptID && len(result.Modifiers) == 0 {
		// Nothing recognized: this NP introduces a brand new common noun.
		span := c.ScanTo(func(t Token) bool {
			if stop(t) {
				return true
			}
			if !inList && (t == "," || t == "and" || t == "or") {
				return true
			}
			return t == "("
		})
		if span.Len() == 0 {
			c.Restore(mark)
			return NP{}, false
		}
		result.NewName = span.String()
	}

	if o.conceptTrie.IsPlural(c.tokens.Slice(mark, c.pos)) && result.Number == NumberUnknown {
		result.Number = Plural
	}

	if tok, ok := c.Peek(); ok && tok == "(" {
		save := c.Save()
		c.Next()
		if f, ok := c.ScanFloat(); ok {
			if tok2, ok2 := c.Peek(); ok2 && tok2 == ")" {
				c.Next()
				result.RelativeFrequency = f
			} else {
				c.Restore(save)
			}
		} else if n, ok := c.ScanInt(); ok {
			if tok2, ok2 := c.Peek(); ok2 && tok2 == ")" {
				c.Next()
				result.RelativeFrequency = float64(n)
			} else {
				c.Restore(save)
			}
		} else {
			c.Restore(save)
		}
	}

	result.Text = c.Text(mark)
	return result, true
}

// AP is the result of scanning a single adjective-phrase segment. Like
// NP, it carries either a resolved Literal or, when the phrase
// names an adjective not yet in the ontology, the raw NewName text so the
// pattern action can introduce it (alternative-set statements are how
// adjectives enter the ontology in the first place).
type AP struct {
	Literal           MonadicConceptLiteral
	NewName           string // set when the phrase introduces a new adjective
	Negated           bool   // polarity of NewName once introduced
	RelativeFrequency float64
	Text              TokenString
}

// determinerWords are never the start of an adjective phrase; a scanAP
// fallback that swallowed "a cat" as a new adjective would misparse every
// "X is a Y" sentence.
var determinerWords = map[string]bool{"a": true, "an": true, "the": true, "all": true}

// scanAP scans "[not|non|non-] <adjective> [(freq)]". When the trie has no
// match and the next tokens do not look like a noun phrase (no determiner,
// no known concept, no numeral), the span up to the next list separator
// becomes NewName so the caller can introduce a brand new adjective.
func scanAP(o *Ontology, c *Cursor) (AP, bool) {
	mark := c.Save()
	polarity := true
	if tok, ok := c.Peek(); ok && negationWords[string(tok)] {
		c.Next()
		polarity = false
	}
	val, length, found := o.conceptTrie.LongestPrefixMatch(c.tokens, c.pos)
	if !found {
		if tok, ok := c.Peek(); !ok || determinerWords[string(tok)] || looksLikeCardinal(tok) {
			c.Restore(mark)
			return AP{}, false
		}
		span := c.ScanTo(func(t Token) bool {
			return t == "," || t == "and" || t == "or" || t == "(" || t == `"` ||
				looksLikeCardinal(t) || quantifierWords[string(t)] || t == "each"
		})
		if span.Len() == 0 {
			c.Restore(mark)
			return AP{}, false
		}
		result := AP{NewName: span.String(), Negated: !polarity}
		result.Text = c.Text(mark)
		return result, true
	}
	if !o.ConceptByID(val).IsAdjective {
		c.Restore(mark)
		return AP{}, false
	}
	for i := 0; i < length; i++ {
		c.Next()
	}
	result := AP{Literal: MonadicConceptLiteral{Concept: val, Polarity: polarity}}
	if tok, ok := c.Peek(); ok && tok == "(" {
		save := c.Save()
		c.Next()
		if n, ok := c.ScanInt(); ok {
			if tok2, ok2 := c.Peek(); ok2 && tok2 == ")" {
				c.Next()
				result.RelativeFrequency = float64(n)
			} else {
				c.Restore(save)
			}
		} else {
			c.Restore(save)
		}
	}
	result.Text = c.Text(mark)
	return result, true
}

// scanAPList scans a comma/and/or-separated list of adjective phrases:
// "AP, AP, or AP". An Oxford ", or" / ", and" before the final item is one
// separator, not two.
func scanAPList(o *Ontology, c *Cursor) ([]AP, bool) {
	var out []AP
	for {
		ap, ok := scanAP(o, c)
		if !ok {
			break
		}
		out = append(out, ap)
		save := c.Save()
		if c.MatchLiteral(",") {
			if !c.MatchLiteral("or") {
				c.MatchLiteral("and")
			}
			continue
		}
		if c.MatchLiteral("or") || c.MatchLiteral("and") {
			continue
		}
		c.Restore(save)
		break
	}
	return out, len(out) > 0
}

// scanNPList scans a comma/and/or-separated list of noun phrases, honoring
// each item's own "(N)" frequency suffix (scanNP's own job) and stopping
// each item at the next list separator, mirroring scanAPList for the
// analogous adjective-list grammar.
func scanNPList(o *Ontology, c *Cursor, stop func(Token) bool) ([]NP, bool) {
	var out []NP
	for {
		np, ok := scanNP(o, c, false, stop)
		if !ok {
			break
		}
		out = append(out, np)
		save := c.Save()
		if c.MatchLiteral(",") {
			if !c.MatchLiteral("or") {
				c.MatchLiteral("and")
			}
			continue
		}
		if c.MatchLiteral("or") || c.MatchLiteral("and") {
			continue
		}
		c.Restore(save)
		break
	}
	return out, len(out) > 0
}

// looksLikeCardinal reports whether tok is a bare integer or one of the
// closed-class spelled-out digit words cursor.go's ScanInt recognizes,
// without consuming it.
func looksLikeCardinal(tok Token) bool {
	if _, ok := digitWords[string(tok)]; ok {
		return true
	}
	if len(tok) == 0 {
		return false
	}
	for _, r := range string(tok) {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Quantifier is the scanned result of a quantifying determiner on the
// object side of a verb pattern ("many", "some", "other", "each"). IsOther
// is the sole signal distinguishing "cats can love other cats"
// (anti-reflexive) from "cats can love many cats" (not); nothing else may
// stand in for it.
type Quantifier struct {
	Word    string
	IsOther bool
}

var quantifierWords = map[string]bool{
	"many": true, "some": true, "other": true, "each": true, "any": true, "all": true,
}

func scanQuantifier(c *Cursor) (Quantifier, bool) {
	tok, ok := c.Peek()
	if !ok || !quantifierWords[string(tok)] {
		return Quantifier{}, false
	}
	c.Next()
	return Quantifier{Word: string(tok), IsOther: string(tok) == "other"}, true
}

// isVerbStop reports whether tok looks like the start of a copula or a
// listed-quantifier, the two classes of token that end a verb-segment
// scan.
func isVerbStop(tok Token) bool {
	return copulaForms[string(tok)] || quantifierWords[string(tok)]
}

// VerbPhrase is the result of scanning a verb segment, mirroring NP's
// Head/NewName split: Verb is set when the scanned text already resolves
// to a registered verb under some inflection; otherwise NewName holds the
// raw text so the caller can introduce a brand new verb on first
// mention.
type VerbPhrase struct {
	Verb    *Verb
	NewName string
}

// scanVerb scans a run of tokens not containing a copula or quantifier
// start word, or a token stop reports true for, and resolves it via the
// verb trie under any inflection. A trie miss falls back to the scanned
// span as NewName rather than failing outright, the same way scanNP falls
// back to NewName for an unrecognized common noun.
func scanVerb(o *Ontology, c *Cursor, stop func(Token) bool) (VerbPhrase, bool) {
	mark := c.Save()
	if val, length, found := o.verbTrie.LongestPrefixMatch(c.tokens, c.pos); found {
		for i := 0; i < length; i++ {
			c.Next()
		}
		return VerbPhrase{Verb: o.VerbByID(val)}, true
	}
	span := c.ScanTo(func(t Token) bool { return isVerbStop(t) || stop(t) })
	if span.Len() == 0 {
		c.Restore(mark)
		return VerbPhrase{}, false
	}
	return VerbPhrase{NewName: span.String()}, true
}

// trimTrailingPreposition strips one trailing preposition token from text.
// No pattern calls it; the passive "be Vpp by" form is parsed without it.
func trimTrailingPreposition(text string) string {
	words := strings.Fields(text)
	if len(words) > 0 && prepositions[strings.ToLower(words[len(words)-1])] {
		return strings.Join(words[:len(words)-1], " ")
	}
	return text
}
