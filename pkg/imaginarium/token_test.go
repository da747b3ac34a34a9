package imaginarium

import "testing"

func TestTokenizeSplitsPunctuationAsTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a cat is a kind of person", []string{"a", "cat", "is", "a", "kind", "of", "person"}},
		{"non-aggressive", []string{"non", "-", "aggressive"}},
		{`is identified as "the cat"`, []string{"is", "identified", "as", `"`, "the", "cat", `"`}},
		{"don't", []string{"don", "'", "t"}},
		{"x, y, and z", []string{"x", ",", "y", ",", "and", "z"}},
	}
	for _, tc := range cases {
		got := Tokenize(tc.in)
		if got.Len() != len(tc.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tc.in, got.Tokens(), tc.want)
		}
		for i, w := range tc.want {
			if string(got.At(i)) != w {
				t.Fatalf("Tokenize(%q)[%d] = %q, want %q", tc.in, i, got.At(i), w)
			}
		}
	}
}

func TestTokenizeLowercases(t *testing.T) {
	got := Tokenize("A CAT")
	if got.String() != "a cat" {
		t.Fatalf("got %q, want %q", got.String(), "a cat")
	}
}

func TestTokenStringEqual(t *testing.T) {
	a := NewTokenString("a", "cat")
	b := NewTokenString("A", "Cat")
	c := NewTokenString("a", "dog")
	if !a.Equal(b) {
		t.Fatal("expected case-insensitive equality")
	}
	if a.Equal(c) {
		t.Fatal("expected inequality")
	}
}

func TestTokenStringHasPrefix(t *testing.T) {
	full := NewTokenString("a", "cat", "is", "a", "kind", "of", "person")
	prefix := NewTokenString("a", "cat")
	notPrefix := NewTokenString("a", "dog")
	if !full.HasPrefix(prefix) {
		t.Fatal("expected HasPrefix true")
	}
	if full.HasPrefix(notPrefix) {
		t.Fatal("expected HasPrefix false")
	}
	if prefix.HasPrefix(full) {
		t.Fatal("a shorter string cannot have a longer prefix")
	}
}

func TestTokenStringSliceAndAppend(t *testing.T) {
	ts := NewTokenString("a", "cat", "sat")
	mid := ts.Slice(1, 3)
	if mid.String() != "cat sat" {
		t.Fatalf("got %q", mid.String())
	}
	appended := mid.Append("down")
	if appended.String() != "cat sat down" {
		t.Fatalf("got %q", appended.String())
	}
	// Tokens() must not alias the original's backing array.
	other := ts.Tokens()
	other[0] = "the"
	if ts.At(0) != "a" {
		t.Fatal("Tokens() must return a copy")
	}
}

func TestJoin(t *testing.T) {
	got := Join(NewTokenString("a", "cat"), NewTokenString("is", "happy"))
	if got.String() != "a cat is happy" {
		t.Fatalf("got %q", got.String())
	}
}
