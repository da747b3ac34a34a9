package imaginarium

import "testing"

func TestAddCommonNounIsIdempotentByName(t *testing.T) {
	o := NewOntology()
	a, err := o.AddCommonNoun("cat", "cats")
	if err != nil {
		t.Fatal(err)
	}
	b, err := o.AddCommonNoun("cat", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != b.ID {
		t.Fatalf("AddCommonNoun(cat) twice produced distinct concepts: %v, %v", a.ID, b.ID)
	}
}

func TestAddCommonNounCollidesWithAdjective(t *testing.T) {
	o := NewOntology()
	if _, err := o.AddAdjective("happy"); err != nil {
		t.Fatal(err)
	}
	_, err := o.AddCommonNoun("happy", "")
	if err == nil {
		t.Fatal("expected NameCollision")
	}
	if _, ok := err.(*NameCollision); !ok {
		t.Fatalf("got %T, want *NameCollision", err)
	}
}

func TestAddAdjectiveCollidesWithCommonNoun(t *testing.T) {
	o := NewOntology()
	if _, err := o.AddCommonNoun("cat", "cats"); err != nil {
		t.Fatal(err)
	}
	_, err := o.AddAdjective("cat")
	if _, ok := err.(*NameCollision); !ok {
		t.Fatalf("got %v (%T), want *NameCollision", err, err)
	}
}

func TestLockPreventsNewReferentsButAllowsExistingFacts(t *testing.T) {
	o := NewOntology()
	cat, err := o.AddCommonNoun("cat", "cats")
	if err != nil {
		t.Fatal(err)
	}
	o.Lock()
	if !o.IsLocked() {
		t.Fatal("expected IsLocked true")
	}

	if _, err := o.AddCommonNoun("dog", "dogs"); err == nil {
		t.Fatal("expected UnknownReferent when introducing a new common noun on a locked ontology")
	} else if _, ok := err.(*UnknownReferent); !ok {
		t.Fatalf("got %T, want *UnknownReferent", err)
	}

	// Re-adding an already-known referent (attaching a fact) must still
	// succeed: AddCommonNoun("cat", ...) resolves to the existing concept
	// before checkIntroduce is ever consulted.
	again, err := o.AddCommonNoun("cat", "")
	if err != nil {
		t.Fatalf("re-adding a known common noun on a locked ontology should succeed: %v", err)
	}
	if again.ID != cat.ID {
		t.Fatal("expected the same concept back")
	}
}

func TestDeclareSuperkindIsIdempotentAndRejectsCycles(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	cat, _ := o.AddCommonNoun("cat", "cats")

	if err := o.DeclareSuperkind(cat.ID, animal.ID); err != nil {
		t.Fatal(err)
	}
	// idempotent: declaring it again is a no-op, not an error.
	if err := o.DeclareSuperkind(cat.ID, animal.ID); err != nil {
		t.Fatalf("expected idempotent DeclareSuperkind, got %v", err)
	}
	if !o.IsSubkindOf(cat.ID, animal.ID) {
		t.Fatal("expected cat to be a subkind of animal")
	}

	// cycle: animal already descends from... nothing, but declaring animal
	// as a subkind of cat would close a cycle the other way.
	if err := o.DeclareSuperkind(animal.ID, cat.ID); err == nil {
		t.Fatal("expected a cycle rejection")
	} else if _, ok := err.(*Contradiction); !ok {
		t.Fatalf("got %T, want *Contradiction", err)
	}

	// a kind cannot be its own superkind.
	if err := o.DeclareSuperkind(cat.ID, cat.ID); err == nil {
		t.Fatal("expected rejection of a kind declared as its own superkind")
	}
}

func TestIsASubsumesTransitively(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	mammal, _ := o.AddCommonNoun("mammal", "mammals")
	cat, _ := o.AddCommonNoun("cat", "cats")
	o.DeclareSuperkind(mammal.ID, animal.ID)
	o.DeclareSuperkind(cat.ID, mammal.ID)

	if !o.IsA(cat.ID, animal.ID) {
		t.Fatal("expected cat IsA animal transitively")
	}
	if !o.IsA(cat.ID, cat.ID) {
		t.Fatal("IsA must be reflexive")
	}
	if o.IsA(animal.ID, cat.ID) {
		t.Fatal("animal must not be an instance of cat")
	}
}

func TestLeastUpperBoundFindsNearestCommonAncestor(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	mammal, _ := o.AddCommonNoun("mammal", "mammals")
	bird, _ := o.AddCommonNoun("bird", "birds")
	cat, _ := o.AddCommonNoun("cat", "cats")
	dog, _ := o.AddCommonNoun("dog", "dogs")
	o.DeclareSuperkind(mammal.ID, animal.ID)
	o.DeclareSuperkind(bird.ID, animal.ID)
	o.DeclareSuperkind(cat.ID, mammal.ID)
	o.DeclareSuperkind(dog.ID, mammal.ID)

	if lub := o.LeastUpperBound(cat.ID, dog.ID); lub != mammal.ID {
		t.Fatalf("LeastUpperBound(cat, dog) = %v, want mammal", lub)
	}
	if lub := o.LeastUpperBound(cat.ID, bird.ID); lub != animal.ID {
		t.Fatalf("LeastUpperBound(cat, bird) = %v, want animal", lub)
	}
	if lub := o.LeastUpperBound(cat.ID, cat.ID); lub != cat.ID {
		t.Fatalf("LeastUpperBound(cat, cat) = %v, want cat", lub)
	}
}

func TestLeastUpperBoundNoCommonAncestor(t *testing.T) {
	o := NewOntology()
	a, _ := o.AddCommonNoun("rock", "rocks")
	b, _ := o.AddCommonNoun("cloud", "clouds")
	if lub := o.LeastUpperBound(a.ID, b.ID); lub != InvalidConceptID {
		t.Fatalf("LeastUpperBound = %v, want InvalidConceptID", lub)
	}
}

func TestPermanentIndividualIsReusedByName(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	a, err := o.PermanentIndividual([]ConceptID{cat.ID}, "Whiskers")
	if err != nil {
		t.Fatal(err)
	}
	b, err := o.PermanentIndividual([]ConceptID{cat.ID}, "Whiskers")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID() != b.ID() {
		t.Fatal("expected the same individual for the same proper noun")
	}
	if len(o.PermanentIndividuals()) != 1 {
		t.Fatalf("PermanentIndividuals() = %d, want 1", len(o.PermanentIndividuals()))
	}
}

func TestEphemeralIndividualIsNotRegistered(t *testing.T) {
	o := NewOntology()
	cat, _ := o.AddCommonNoun("cat", "cats")
	ind := o.EphemeralIndividual([]ConceptID{cat.ID}, "an ephemeral cat")
	if !ind.Ephemeral {
		t.Fatal("expected Ephemeral true")
	}
	if len(o.PermanentIndividuals()) != 0 {
		t.Fatal("ephemeral individuals must not be registered as permanent")
	}
}

func TestAddKindNormalizesToMostSpecific(t *testing.T) {
	o := NewOntology()
	animal, _ := o.AddCommonNoun("animal", "animals")
	mammal, _ := o.AddCommonNoun("mammal", "mammals")
	cat, _ := o.AddCommonNoun("cat", "cats")
	o.DeclareSuperkind(mammal.ID, animal.ID)
	o.DeclareSuperkind(cat.ID, mammal.ID)

	ind := o.EphemeralIndividual([]ConceptID{animal.ID}, "x")
	if len(ind.Kinds) != 1 || ind.Kinds[0] != animal.ID {
		t.Fatalf("Kinds = %v, want [animal]", ind.Kinds)
	}

	// Asserting the more specific "cat" must replace the dominated "animal"
	// entry rather than sit alongside it.
	ind.addKind(o, cat.ID)
	if len(ind.Kinds) != 1 || ind.Kinds[0] != cat.ID {
		t.Fatalf("Kinds = %v, want [cat]", ind.Kinds)
	}

	// Asserting a dominated kind afterwards must be a no-op.
	ind.addKind(o, animal.ID)
	if len(ind.Kinds) != 1 || ind.Kinds[0] != cat.ID {
		t.Fatalf("Kinds = %v, want [cat] (dominated assertion ignored)", ind.Kinds)
	}
}

func TestAddModifierLaterAssertionWins(t *testing.T) {
	o := NewOntology()
	happy, _ := o.AddAdjective("happy")
	cat, _ := o.AddCommonNoun("cat", "cats")
	ind := o.EphemeralIndividual([]ConceptID{cat.ID}, "x")

	ind.AddModifier(MonadicConceptLiteral{Concept: happy.ID, Polarity: true})
	if !ind.HasModifier(MonadicConceptLiteral{Concept: happy.ID, Polarity: true}) {
		t.Fatal("expected happy asserted")
	}
	ind.AddModifier(MonadicConceptLiteral{Concept: happy.ID, Polarity: false})
	if ind.HasModifier(MonadicConceptLiteral{Concept: happy.ID, Polarity: true}) {
		t.Fatal("later negation must replace the earlier assertion")
	}
	if !ind.HasModifier(MonadicConceptLiteral{Concept: happy.ID, Polarity: false}) {
		t.Fatal("expected happy negated after re-assertion")
	}
	if len(ind.Modifiers) != 1 {
		t.Fatalf("Modifiers = %v, want a single entry (replaced, not appended)", ind.Modifiers)
	}
}

func TestEraseConceptsResetsToEmptyUnlocked(t *testing.T) {
	o := NewOntology()
	o.AddCommonNoun("cat", "cats")
	o.Lock()
	o.EraseConcepts()
	if o.IsLocked() {
		t.Fatal("expected unlocked after EraseConcepts")
	}
	if _, ok := o.Concept(Tokenize("cat")); ok {
		t.Fatal("expected cat gone after EraseConcepts")
	}
}
