// Package imaginarium implements a constraint-based procedural content
// generator: an ontology of nouns, adjectives, verbs, parts and properties
// authored in a restricted subset of English, a pattern-directed parser
// that mutates the ontology from that English, and a generator that
// compiles a requested invention into boolean constraints and renders the
// solved model back into English descriptions.
package imaginarium

import "strings"

// Token is a single lower-cased word or punctuation mark. Token sequences
// are the name of everything in the ontology: common nouns, adjectives,
// verbs, parts, properties and proper nouns are all looked up by the
// sequence of tokens a human would type to refer to them.
type Token string

// TokenString is an immutable, ordered sequence of tokens. Two
// TokenStrings are equal iff they have the same length and every token
// matches, case-insensitively (tokens are always stored lower-cased, so
// comparison reduces to a direct slice comparison).
type TokenString struct {
	tokens []Token
}

// NewTokenString lower-cases and wraps a slice of words into a
// TokenString. The input slice is copied; the result never aliases it.
func NewTokenString(words ...string) TokenString {
	toks := make([]Token, len(words))
	for i, w := range words {
		toks[i] = Token(strings.ToLower(w))
	}
	return TokenString{tokens: toks}
}

// Tokenize splits free text into word and punctuation tokens. Hyphens,
// apostrophes, commas, parentheses and quotes are treated as their own
// tokens; everything else is split on whitespace. Comparison elsewhere is
// always case-insensitive, so the tokens produced here are lower-cased.
func Tokenize(text string) TokenString {
	var toks []Token
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, Token(strings.ToLower(cur.String())))
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		case strings.ContainsRune("-'(),\"", r):
			flush()
			toks = append(toks, Token(strings.ToLower(string(r))))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return TokenString{tokens: toks}
}

// Len returns the number of tokens.
func (ts TokenString) Len() int { return len(ts.tokens) }

// At returns the token at index i.
func (ts TokenString) At(i int) Token { return ts.tokens[i] }

// Tokens returns the underlying tokens as a fresh slice (safe to mutate).
func (ts TokenString) Tokens() []Token {
	out := make([]Token, len(ts.tokens))
	copy(out, ts.tokens)
	return out
}

// Slice returns the sub-sequence [from, to).
func (ts TokenString) Slice(from, to int) TokenString {
	return TokenString{tokens: append([]Token(nil), ts.tokens[from:to]...)}
}

// Equal reports whether two token strings have identical contents.
func (ts TokenString) Equal(other TokenString) bool {
	if len(ts.tokens) != len(other.tokens) {
		return false
	}
	for i, t := range ts.tokens {
		if t != other.tokens[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether ts begins with prefix.
func (ts TokenString) HasPrefix(prefix TokenString) bool {
	if len(prefix.tokens) > len(ts.tokens) {
		return false
	}
	for i, t := range prefix.tokens {
		if ts.tokens[i] != t {
			return false
		}
	}
	return true
}

// String renders the token string as space-joined text, the canonical
// textual form used both for diagnostics and for key() below.
func (ts TokenString) String() string {
	words := make([]string, len(ts.tokens))
	for i, t := range ts.tokens {
		words[i] = string(t)
	}
	return strings.Join(words, " ")
}

// key returns a value usable as a map key for this token string.
func (ts TokenString) key() string { return ts.String() }

// Append returns a new TokenString with extra tokens appended.
func (ts TokenString) Append(more ...Token) TokenString {
	out := make([]Token, 0, len(ts.tokens)+len(more))
	out = append(out, ts.tokens...)
	out = append(out, more...)
	return TokenString{tokens: out}
}

// Join concatenates several token strings.
func Join(parts ...TokenString) TokenString {
	var out []Token
	for _, p := range parts {
		out = append(out, p.tokens...)
	}
	return TokenString{tokens: out}
}
