package imaginarium

import "strconv"

// Cursor is a monotonic index over a token list with explicit save/restore
// of state; all matching is predicate-driven, with no lookahead buffer.
type Cursor struct {
	tokens TokenString
	pos    int
}

// NewCursor creates a cursor positioned at the start of tokens.
func NewCursor(tokens TokenString) *Cursor { return &Cursor{tokens: tokens} }

// Save returns an opaque mark that Restore can return to.
func (c *Cursor) Save() int { return c.pos }

// Restore rewinds the cursor to a mark returned by Save.
func (c *Cursor) Restore(mark int) { c.pos = mark }

// AtEnd reports whether the cursor has consumed every token.
func (c *Cursor) AtEnd() bool { return c.pos >= c.tokens.Len() }

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	if c.AtEnd() {
		return "", false
	}
	return c.tokens.At(c.pos), true
}

// PeekAt returns the token offset tokens ahead of the cursor, if any.
func (c *Cursor) PeekAt(offset int) (Token, bool) {
	i := c.pos + offset
	if i < 0 || i >= c.tokens.Len() {
		return "", false
	}
	return c.tokens.At(i), true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// MatchLiteral consumes a literal run of tokens if they match exactly,
// case-insensitively (tokens are already lower-cased). On mismatch the
// cursor is not advanced.
func (c *Cursor) MatchLiteral(words ...string) bool {
	mark := c.Save()
	for _, w := range words {
		tok, ok := c.Next()
		if !ok || string(tok) != w {
			c.Restore(mark)
			return false
		}
	}
	return true
}

// MatchOneOf consumes the next token if it equals one of options, and
// returns which one.
func (c *Cursor) MatchOneOf(options ...string) (string, bool) {
	tok, ok := c.Peek()
	if !ok {
		return "", false
	}
	for _, opt := range options {
		if string(tok) == opt {
			c.Next()
			return opt, true
		}
	}
	return "", false
}

// ScanTo greedily consumes tokens until predicate(next) is true (or input
// ends), returning the consumed span.
func (c *Cursor) ScanTo(predicate func(Token) bool) TokenString {
	start := c.pos
	for !c.AtEnd() {
		tok, _ := c.Peek()
		if predicate(tok) {
			break
		}
		c.Next()
	}
	return c.tokens.Slice(start, c.pos)
}

// ScanToEnd consumes every remaining token.
func (c *Cursor) ScanToEnd() TokenString {
	return c.ScanTo(func(Token) bool { return false })
}

// Text returns the tokens already consumed between mark and the current
// position.
func (c *Cursor) Text(mark int) TokenString {
	return c.tokens.Slice(mark, c.pos)
}

// digitWords maps the closed list of spelled-out small numbers the NP
// determiner recognizes.
var digitWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// ScanInt consumes an integer literal or one of the closed-class digit
// words.
func (c *Cursor) ScanInt() (int, bool) {
	tok, ok := c.Peek()
	if !ok {
		return 0, false
	}
	if n, ok := digitWords[string(tok)]; ok {
		c.Next()
		return n, true
	}
	if n, err := strconv.Atoi(string(tok)); err == nil {
		c.Next()
		return n, true
	}
	return 0, false
}

// ScanFloat consumes a floating point literal from a single token. The
// tokenizer does not split on '.', so "4.5" arrives as one token; a float
// spread over several tokens is not recognized.
func (c *Cursor) ScanFloat() (float64, bool) {
	tok, ok := c.Peek()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return 0, false
	}
	c.Next()
	return f, true
}

// ScanQuotedText consumes a "…" delimited free-text span. The opening and
// closing quote tokens must both be `"`.
func (c *Cursor) ScanQuotedText() (string, bool) {
	mark := c.Save()
	if tok, ok := c.Peek(); !ok || tok != `"` {
		return "", false
	}
	c.Next()
	span := c.ScanTo(func(t Token) bool { return t == `"` })
	if tok, ok := c.Peek(); !ok || tok != `"` {
		c.Restore(mark)
		return "", false
	}
	c.Next()
	return span.String(), true
}
