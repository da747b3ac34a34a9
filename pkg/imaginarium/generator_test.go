package imaginarium

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastOpts() GenerateOptions {
	return GenerateOptions{Retries: 5, Timeout: 2 * time.Second}
}

func TestGenerateSubkindExclusivity(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	cat, _ := o.AddCommonNoun("cat", "cats")
	dog, _ := o.AddCommonNoun("dog", "dogs")
	if err := o.DeclareSuperkind(cat.ID, animal.ID); err != nil {
		t.Fatal(err)
	}
	if err := o.DeclareSuperkind(dog.ID, animal.ID); err != nil {
		t.Fatal(err)
	}

	inv, err := Generate(o, animal.ID, nil, 1, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	ind := inv.Individuals()[0]
	if !inv.IsA(ind, animal.ID) {
		t.Fatal("expected the generated individual to be an animal")
	}
	isCat, isDog := inv.IsA(ind, cat.ID), inv.IsA(ind, dog.ID)
	if isCat == isDog {
		t.Fatalf("expected exactly one of cat/dog, got cat=%v dog=%v", isCat, isDog)
	}
}

func TestGenerateSubkindFrequencyBiasesChoice(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	cat, _ := o.AddCommonNoun("cat", "cats")
	dog, _ := o.AddCommonNoun("dog", "dogs")
	o.DeclareSuperkind(cat.ID, animal.ID)
	o.DeclareSuperkind(dog.ID, animal.ID)
	// Cats are declared nine times as common as dogs: across many
	// independent single-individual generations, cats must come up far more
	// often than dogs.
	o.SetSubkindFrequency(animal.ID, cat.ID, 9)
	o.SetSubkindFrequency(animal.ID, dog.ID, 1)

	catCount := 0
	const trials = 30
	for i := 0; i < trials; i++ {
		inv, err := Generate(o, animal.ID, nil, 1, fastOpts())
		if err != nil {
			t.Fatal(err)
		}
		if inv.IsA(inv.Individuals()[0], cat.ID) {
			catCount++
		}
	}
	if catCount < trials/2 {
		t.Fatalf("cat chosen %d/%d times, expected the heavily-weighted subkind to dominate", catCount, trials)
	}
}

func TestGenerateReflexiveVerbHoldsForEveryIndividual(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	resembles, err := o.AddVerb("resemble")
	if err != nil {
		t.Fatal(err)
	}
	resembles.IsReflexive = true
	resembles.AddShape(VerbShape{SubjectKind: cat.ID, ObjectKind: cat.ID})

	inv, err := Generate(o, cat.ID, nil, 3, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range inv.Individuals() {
		if !inv.IsA(ind, cat.ID) {
			continue
		}
		if !inv.Holds(resembles, ind, ind) {
			t.Fatalf("expected %q to resemble itself", inv.NameString(ind))
		}
	}
}

func TestGenerateAntiReflexiveVerbNeverHolds(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	fights, err := o.AddVerb("fight")
	if err != nil {
		t.Fatal(err)
	}
	fights.IsAntiReflexive = true
	fights.AddShape(VerbShape{SubjectKind: cat.ID, ObjectKind: cat.ID})

	inv, err := Generate(o, cat.ID, nil, 3, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range inv.Individuals() {
		if !inv.IsA(ind, cat.ID) {
			continue
		}
		if inv.Holds(fights, ind, ind) {
			t.Fatalf("expected %q never to fight itself", inv.NameString(ind))
		}
	}
}

func TestGenerateVerbCardinalityExact(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	toy, _ := o.AddCommonNoun("toy", "toys")
	o.AddPart(cat, "toy", 5, toy.ID, nil)

	owns, err := o.AddVerb("own")
	if err != nil {
		t.Fatal(err)
	}
	owns.AddShape(VerbShape{SubjectKind: cat.ID, ObjectKind: toy.ID})
	owns.ObjectLower, owns.ObjectUpper = 2, 2

	inv, err := Generate(o, cat.ID, nil, 1, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	theCat := inv.Individuals()[0]
	count := 0
	for _, ind := range inv.Individuals() {
		if inv.IsA(ind, toy.ID) && inv.Holds(owns, theCat, ind) {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("cat owns %d toys, want exactly 2", count)
	}
}

func TestGenerateVerbCardinalityContradictionWhenDomainTooSmall(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	toy, _ := o.AddCommonNoun("toy", "toys")
	o.AddPart(cat, "toy", 1, toy.ID, nil)

	owns, err := o.AddVerb("own")
	if err != nil {
		t.Fatal(err)
	}
	owns.AddShape(VerbShape{SubjectKind: cat.ID, ObjectKind: toy.ID})
	owns.ObjectLower, owns.ObjectUpper = 2, 2 // only 1 toy exists per cat

	_, err = Generate(o, cat.ID, nil, 1, fastOpts())
	if err == nil {
		t.Fatal("expected a Contradiction when the object domain is smaller than the lower bound")
	}
	if _, ok := err.(*Contradiction); !ok {
		t.Fatalf("got %T (%v), want *Contradiction", err, err)
	}
}

func TestGeneratePartNaming(t *testing.T) {
	o := NewOntology()
	face, _ := o.AddCommonNoun("face", "faces")
	eye, _ := o.AddCommonNoun("eye", "eyes")
	o.AddPart(face, "eye", 2, eye.ID, nil)

	inv, err := Generate(o, face.ID, nil, 1, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	var theFace *Individual
	for _, ind := range inv.Individuals() {
		if inv.IsA(ind, face.ID) {
			theFace = ind
		}
	}
	if theFace == nil {
		t.Fatal("expected a face individual")
	}
	for _, child := range theFace.Parts {
		for _, eyeInd := range child {
			if got := inv.NameString(eyeInd); got != "the face's eye" {
				t.Fatalf("NameString(eye) = %q, want %q", got, "the face's eye")
			}
		}
	}
}

func TestGenerateAlternativeSetExactlyOne(t *testing.T) {
	o := NewOntology()
	shirt, _ := o.AddCommonNoun("shirt", "shirts")
	red, _ := o.AddAdjective("red")
	blue, _ := o.AddAdjective("blue")
	green, _ := o.AddAdjective("green")
	shirt.AlternativeSets = append(shirt.AlternativeSets, &AlternativeSet{
		Alternatives: []MonadicConceptLiteral{
			{Concept: red.ID, Polarity: true},
			{Concept: blue.ID, Polarity: true},
			{Concept: green.ID, Polarity: true},
		},
		MinCount: 1,
		MaxCount: 1,
	})

	inv, err := Generate(o, shirt.ID, nil, 4, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range inv.Individuals() {
		if !inv.IsA(ind, shirt.ID) {
			continue
		}
		count := 0
		for _, c := range []*MonadicConcept{red, blue, green} {
			if inv.IsA(ind, c.ID) {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("shirt %q has %d colors true, want exactly 1", inv.NameString(ind), count)
		}
	}
}

func TestGenerateSymmetricVerb(t *testing.T) {
	o := NewOntology()
	person, _ := o.AddCommonNoun("person", "people")
	marriedTo, err := o.AddVerb("marry")
	if err != nil {
		t.Fatal(err)
	}
	marriedTo.IsSymmetric = true
	marriedTo.AddShape(VerbShape{SubjectKind: person.ID, ObjectKind: person.ID})

	inv, err := Generate(o, person.ID, nil, 4, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	people := make([]*Individual, 0, 4)
	for _, ind := range inv.Individuals() {
		if inv.IsA(ind, person.ID) {
			people = append(people, ind)
		}
	}
	for _, a := range people {
		for _, b := range people {
			if a == b {
				continue
			}
			if inv.Holds(marriedTo, a, b) != inv.Holds(marriedTo, b, a) {
				t.Fatalf("symmetric verb must hold both ways or neither for %q/%q", inv.NameString(a), inv.NameString(b))
			}
		}
	}
}

func TestGeneratePermanentIndividualsParticipate(t *testing.T) {
	o := NewOntology()
	person, _ := o.AddCommonNoun("person", "people")
	alice, err := o.PermanentIndividual([]ConceptID{person.ID}, "Alice")
	if err != nil {
		t.Fatal(err)
	}

	inv, err := Generate(o, person.ID, nil, 1, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, ind := range inv.Individuals() {
		if ind.ID() == alice.ID() {
			found = true
			if !inv.IsA(ind, person.ID) {
				t.Fatal("expected the permanent individual to be a person in this invention")
			}
		}
	}
	if !found {
		t.Fatal("expected the permanent individual Alice to appear in the invention")
	}
}

// The tests below drive the full pipeline: statements through
// ParseAndExecute, then Generate, then Invention queries.

func loadStatements(t *testing.T, o *Ontology, statements ...string) {
	t.Helper()
	pc := NewParseContext(o, "")
	for _, s := range statements {
		require.NoError(t, ParseAndExecute(pc, s), "statement %q", s)
	}
}

func TestEndToEndCatSubkinds(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o,
		"a cat is a kind of person.",
		"a persian is a kind of cat.",
		"a tabby is a kind of cat.",
		"a siamese is a kind of cat.",
	)
	cat, _ := o.Concept(Tokenize("cat"))

	inv, err := Generate(o, cat.ID, nil, 1, fastOpts())
	require.NoError(t, err)
	ind := inv.Individuals()[0]
	require.True(t, inv.IsA(ind, cat.ID), "expected a cat")
	count := 0
	for _, name := range []string{"persian", "tabby", "siamese"} {
		sub, _ := o.Concept(Tokenize(name))
		if inv.IsA(ind, sub.ID) {
			count++
		}
	}
	require.Equal(t, 1, count, "exactly one subkind must hold")
}

func TestEndToEndRelativeFrequencies(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o, "persian, tabby (10), and siamese are kinds of cat.")
	cat, _ := o.Concept(Tokenize("cat"))
	tabby, _ := o.Concept(Tokenize("tabby"))

	tabbies := 0
	const trials = 60
	for i := 0; i < trials; i++ {
		inv, err := Generate(o, cat.ID, nil, 1, fastOpts())
		require.NoError(t, err)
		if inv.IsA(inv.Individuals()[0], tabby.ID) {
			tabbies++
		}
	}
	require.Greater(t, tabbies, trials/2,
		"the (10)-weighted subkind must dominate across %d generations", trials)
}

func TestEndToEndReflexiveLove(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o, "people must love themselves.")
	person, ok := o.Concept(Tokenize("person"))
	require.True(t, ok, "'people' must introduce the common noun person")
	love, _ := o.Verb(Tokenize("love"))

	inv, err := Generate(o, person.ID, nil, 10, fastOpts())
	require.NoError(t, err)
	for _, ind := range inv.Individuals() {
		require.True(t, inv.Holds(love, ind, ind), "%s must love itself", inv.NameString(ind))
	}
}

func TestEndToEndEmploymentCardinality(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o,
		"employee and employer are kinds of person.",
		"an employee must work for one employer.",
		"an employer must be worked for by at least two employees.",
	)
	person, _ := o.Concept(Tokenize("person"))
	employee, _ := o.Concept(Tokenize("employee"))
	employer, _ := o.Concept(Tokenize("employer"))
	workFor, ok := o.Verb(Tokenize("work for"))
	require.True(t, ok, "expected the verb 'work for'")

	inv, err := Generate(o, person.ID, nil, 4, fastOpts())
	require.NoError(t, err)
	for _, ind := range inv.Individuals() {
		switch {
		case inv.IsA(ind, employee.ID):
			count := 0
			for _, other := range inv.Individuals() {
				if inv.IsA(other, employer.ID) && inv.Holds(workFor, ind, other) {
					count++
				}
			}
			require.Equal(t, 1, count, "employee %s must work for exactly one employer", inv.NameString(ind))
		case inv.IsA(ind, employer.ID):
			count := 0
			for _, other := range inv.Individuals() {
				if inv.IsA(other, employee.ID) && inv.Holds(workFor, other, ind) {
					count++
				}
			}
			require.GreaterOrEqual(t, count, 2, "employer %s needs at least two employees", inv.NameString(ind))
		}
	}
}

func TestEndToEndFacePartNaming(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o,
		"A face has eyes.",
		"A face has a mouth.",
		"A face has a nose.",
		"A face has hair.",
	)
	face, _ := o.Concept(Tokenize("face"))

	inv, err := Generate(o, face.ID, nil, 1, fastOpts())
	require.NoError(t, err)
	theFace := inv.Individuals()[0]
	got := make(map[string]bool)
	for _, children := range theFace.Parts {
		for _, child := range children {
			got[inv.NameString(child)] = true
		}
	}
	for _, want := range []string{"the face's eye", "the face's mouth", "the face's nose", "the face's hair"} {
		require.True(t, got[want], "part names = %v, missing %q", got, want)
	}
}

func TestEndToEndOverlappingAlternativeBounds(t *testing.T) {
	o := NewOntology()
	loadStatements(t, o,
		"x, y, and z are kinds of thing.",
		"a x is between 4 and 5 of b, c, d, e, f, or g.",
		"a y is between 1 and 2 of b, c, d, e, f, or g.",
		"a z is any 3 of b, c, d, e, f, or g.",
	)
	thing, _ := o.Concept(Tokenize("thing"))
	bounds := map[string][2]int{"x": {4, 5}, "y": {1, 2}, "z": {3, 3}}

	inv, err := Generate(o, thing.ID, nil, 12, fastOpts())
	require.NoError(t, err)
	for _, ind := range inv.Individuals() {
		var subkind string
		for name := range bounds {
			sub, _ := o.Concept(Tokenize(name))
			if inv.IsA(ind, sub.ID) {
				subkind = name
			}
		}
		require.NotEmpty(t, subkind, "%s is none of x/y/z", inv.NameString(ind))
		count := 0
		for _, adjName := range []string{"b", "c", "d", "e", "f", "g"} {
			adj, _ := o.Concept(Tokenize(adjName))
			if inv.IsA(ind, adj.ID) {
				count++
			}
		}
		lo, hi := bounds[subkind][0], bounds[subkind][1]
		require.GreaterOrEqual(t, count, lo, "%s (%s) adjective count", inv.NameString(ind), subkind)
		require.LessOrEqual(t, count, hi, "%s (%s) adjective count", inv.NameString(ind), subkind)
	}
}

func TestGenerateLockedOntologyStillGenerates(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	o.Lock()

	inv, err := Generate(o, cat.ID, nil, 2, fastOpts())
	if err != nil {
		t.Fatal(err)
	}
	if len(inv.Individuals()) < 2 {
		t.Fatalf("expected at least 2 individuals, got %d", len(inv.Individuals()))
	}
}
