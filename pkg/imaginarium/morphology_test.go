package imaginarium

import "testing"

func TestMorphologyRoundTripRegularNouns(t *testing.T) {
	m := NewMorphology()
	regulars := []string{"cat", "dog", "employee", "employer", "box", "city"}
	for _, sing := range regulars {
		plural, err := m.PluralOfNoun(sing)
		if err != nil {
			t.Fatalf("PluralOfNoun(%q): %v", sing, err)
		}
		back, err := m.SingularOfNoun(plural)
		if err != nil {
			t.Fatalf("SingularOfNoun(%q): %v", plural, err)
		}
		if back != sing {
			t.Fatalf("round trip %q -> %q -> %q, want %q", sing, plural, back, sing)
		}
	}
}

func TestMorphologyIrregularNounsRoundTrip(t *testing.T) {
	m := NewMorphology()
	pairs := map[string]string{
		"person": "people",
		"child":  "children",
		"man":    "men",
		"woman":  "women",
	}
	for sing, plural := range pairs {
		got, err := m.PluralOfNoun(sing)
		if err != nil || got != plural {
			t.Fatalf("PluralOfNoun(%q) = %q, %v; want %q", sing, got, err, plural)
		}
		back, err := m.SingularOfNoun(plural)
		if err != nil || back != sing {
			t.Fatalf("SingularOfNoun(%q) = %q, %v; want %q", plural, back, err, sing)
		}
	}
}

func TestMorphologyAddIrregularNoun(t *testing.T) {
	m := NewMorphology()
	m.AddIrregularNoun("octopus", "octopi")
	plural, err := m.PluralOfNoun("octopus")
	if err != nil || plural != "octopi" {
		t.Fatalf("PluralOfNoun(octopus) = %q, %v", plural, err)
	}
	sing, err := m.SingularOfNoun("octopi")
	if err != nil || sing != "octopus" {
		t.Fatalf("SingularOfNoun(octopi) = %q, %v", sing, err)
	}
}

func TestMorphologyOnlyHeadWordInflected(t *testing.T) {
	m := NewMorphology()
	plural, err := m.PluralOfNoun("black cat")
	if err != nil {
		t.Fatal(err)
	}
	if plural != "black cats" {
		t.Fatalf("got %q, want %q", plural, "black cats")
	}
}

func TestSingularPluralOfVerbCopula(t *testing.T) {
	m := NewMorphology()
	third, err := m.SingularOfVerb("be married to")
	if err != nil {
		t.Fatal(err)
	}
	if third != "is married to" {
		t.Fatalf("got %q", third)
	}
	plural, err := m.PluralOfVerb("is married to")
	if err != nil {
		t.Fatal(err)
	}
	if plural != "are married to" {
		t.Fatalf("got %q", plural)
	}
}

func TestPluralOfVerbNonCopula(t *testing.T) {
	m := NewMorphology()
	plural, err := m.PluralOfVerb("loves")
	if err != nil {
		t.Fatal(err)
	}
	if plural != "love" {
		t.Fatalf("got %q, want %q", plural, "love")
	}
}

func TestTrimTrailingPreposition(t *testing.T) {
	if got := trimTrailingPreposition("worked for"); got != "worked" {
		t.Fatalf("got %q, want %q", got, "worked")
	}
	if got := trimTrailingPreposition("loved"); got != "loved" {
		t.Fatalf("got %q, want %q", got, "loved")
	}
}

func TestSingularOfVerbNonCopula(t *testing.T) {
	m := NewMorphology()
	third, err := m.SingularOfVerb("love")
	if err != nil {
		t.Fatal(err)
	}
	if third != "loves" {
		t.Fatalf("got %q, want %q", third, "loves")
	}
}

func TestGerundsOfVerbEnumeratesCandidates(t *testing.T) {
	m := NewMorphology()
	gerunds := m.GerundsOfVerb("love")
	if !containsString(gerunds, "loving") {
		t.Fatalf("GerundsOfVerb(love) = %v, want to contain %q", gerunds, "loving")
	}
	gerundsHop := m.GerundsOfVerb("hop")
	if !containsString(gerundsHop, "hopping") {
		t.Fatalf("GerundsOfVerb(hop) = %v, want to contain %q", gerundsHop, "hopping")
	}
}

func TestGerundsOfVerbWithParticle(t *testing.T) {
	m := NewMorphology()
	gerunds := m.GerundsOfVerb("marry to")
	if !containsString(gerunds, "marrying to") {
		t.Fatalf("GerundsOfVerb(marry to) = %v, want to contain %q", gerunds, "marrying to")
	}
}

func TestPassiveParticipleIrregularAndRegular(t *testing.T) {
	m := NewMorphology()
	pp, err := m.PassiveParticiple("love")
	if err != nil || pp != "loved" {
		t.Fatalf("PassiveParticiple(love) = %q, %v", pp, err)
	}
	pp2, err := m.PassiveParticiple("see")
	if err != nil || pp2 != "seen" {
		t.Fatalf("PassiveParticiple(see) = %q, %v", pp2, err)
	}
	pp3, err := m.PassiveParticiple("hop")
	if err != nil || pp3 != "hopped" {
		t.Fatalf("PassiveParticiple(hop) = %q, %v", pp3, err)
	}
}

func TestBaseFormOfGerundInvertsGerunds(t *testing.T) {
	m := NewMorphology()
	cases := map[string]string{
		"loving":      "love",
		"hopping":     "hop",
		"marrying to": "marry to",
	}
	for gerund, want := range cases {
		got, err := m.BaseFormOfGerund(gerund)
		if err != nil {
			t.Fatalf("BaseFormOfGerund(%q): %v", gerund, err)
		}
		if got != want {
			t.Fatalf("BaseFormOfGerund(%q) = %q, want %q", gerund, got, want)
		}
	}
}

func TestMorphologyUnknownOnUnanalyzableWord(t *testing.T) {
	m := NewMorphology()
	if _, err := m.PluralOfNoun(""); err == nil {
		t.Fatal("expected MorphologyUnknown for empty input")
	}
	if _, err := m.BaseFormOfGerund("cat"); err == nil {
		t.Fatal("expected MorphologyUnknown for a non-gerund")
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
