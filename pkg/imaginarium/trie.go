package imaginarium

// trieNode is one node of a Trie, keyed token-by-token. A node may hold a
// value (it is the end of some inserted token string) and children keyed
// by the next token.
type trieNode[V any] struct {
	value    V
	hasValue bool
	isPlural bool
	children map[Token]*trieNode[V]
}

func newTrieNode[V any]() *trieNode[V] {
	return &trieNode[V]{children: make(map[Token]*trieNode[V])}
}

// Trie maps TokenString keys to values of type V, supporting longest-prefix
// lookup against a cursor into a larger input sequence. Two tries exist per
// Ontology: the monadic-concept trie (common nouns and adjectives) and the
// verb trie (every inflected surface form of a verb maps to the same verb
// id).
type Trie[V any] struct {
	root *trieNode[V]
	size int
}

// NewTrie creates an empty trie.
func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{root: newTrieNode[V]()}
}

// Len returns the number of distinct keys stored.
func (t *Trie[V]) Len() int { return t.size }

// Insert associates key with value, overwriting any existing value at that
// exact key. Intermediate nodes are created as needed.
func (t *Trie[V]) Insert(key TokenString, value V) {
	n := t.root
	for i := 0; i < key.Len(); i++ {
		tok := key.At(i)
		child, ok := n.children[tok]
		if !ok {
			child = newTrieNode[V]()
			n.children[tok] = child
		}
		n = child
	}
	if !n.hasValue {
		t.size++
	}
	n.value = value
	n.hasValue = true
}

// AnnotateAsPlural marks the stored form at key as plural, used by
// morphology to remember which surface form of a common noun was used
// when it was first introduced.
func (t *Trie[V]) AnnotateAsPlural(key TokenString) {
	n := t.root
	for i := 0; i < key.Len(); i++ {
		child, ok := n.children[key.At(i)]
		if !ok {
			return
		}
		n = child
	}
	if n.hasValue {
		n.isPlural = true
	}
}

// IsPlural reports whether the form stored at key was annotated plural.
func (t *Trie[V]) IsPlural(key TokenString) bool {
	n := t.root
	for i := 0; i < key.Len(); i++ {
		child, ok := n.children[key.At(i)]
		if !ok {
			return false
		}
		n = child
	}
	return n.hasValue && n.isPlural
}

// Lookup returns the value stored at the exact key, if any.
func (t *Trie[V]) Lookup(key TokenString) (V, bool) {
	n := t.root
	for i := 0; i < key.Len(); i++ {
		child, ok := n.children[key.At(i)]
		if !ok {
			var zero V
			return zero, false
		}
		n = child
	}
	if !n.hasValue {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Remove deletes the value stored at key, if present. It does not prune
// now-empty intermediate nodes; they are harmless dead branches and the
// trie is expected to live for the lifetime of one ontology.
func (t *Trie[V]) Remove(key TokenString) {
	n := t.root
	for i := 0; i < key.Len(); i++ {
		child, ok := n.children[key.At(i)]
		if !ok {
			return
		}
		n = child
	}
	if n.hasValue {
		n.hasValue = false
		var zero V
		n.value = zero
		t.size--
	}
}

// LongestPrefixMatch scans tokens starting at position start and returns
// the value and length (in tokens) of the longest key in the trie that is
// a prefix of tokens[start:]. ok is false if no key in the trie matches any
// prefix starting at start.
func (t *Trie[V]) LongestPrefixMatch(tokens TokenString, start int) (value V, length int, ok bool) {
	n := t.root
	bestLen := -1
	var bestVal V
	for i := start; i < tokens.Len(); i++ {
		child, exists := n.children[tokens.At(i)]
		if !exists {
			break
		}
		n = child
		if n.hasValue {
			bestLen = i - start + 1
			bestVal = n.value
		}
	}
	if bestLen < 0 {
		var zero V
		return zero, 0, false
	}
	return bestVal, bestLen, true
}
