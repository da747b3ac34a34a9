package imaginarium

import "strings"

// This file builds the ordered sentence-pattern table.
// Patterns are tried in the order they are registered by init() below;
// ParseAndExecute (parser.go) runs the first one whose Action reports a
// match. Each Action restores nothing itself on a clean non-match — the
// cursor it was handed is fresh per pattern (see ParseAndExecute) — and
// returns a *GrammaticalError only once it has crossed a commitment point
// analogous to a committed-choice cut.
// Ordering matters: the verb-referencing patterns (density, mutual
// exclusion, implies, way-of) come before the adjective-introducing "is"
// patterns so "love is rare" reaches the verb table while the verb is
// known, and the reflexive/symmetric pattern comes before the quantifier
// pattern so "each other" is never half-eaten as a quantifier plus a brand
// new noun "other".

func init() {
	Patterns = append(Patterns,
		Pattern{Name: "subkind", Action: patSubkind},
		Pattern{Name: "plural/singular override", Action: patFormOverride},
		Pattern{Name: "verb density", Action: patVerbDensity},
		Pattern{Name: "verb mutual exclusion", Action: patVerbMutualExclusion},
		Pattern{Name: "verb implies", Action: patVerbImplies},
		Pattern{Name: "verb way of", Action: patVerbWayOf},
		Pattern{Name: "identified/described as", Action: patIdentifiedDescribedAs},
		Pattern{Name: "suppress mention", Action: patSuppressMention},
		Pattern{Name: "bounded alternatives", Action: patBoundedAlternatives},
		Pattern{Name: "required alternatives", Action: patRequiredAlternatives},
		Pattern{Name: "optional alternatives", Action: patOptionalAlternatives},
		Pattern{Name: "proper noun", Action: patProperNoun},
		Pattern{Name: "implied adjective", Action: patImpliedAdjective},
		Pattern{Name: "part declaration", Action: patPartDeclaration},
		Pattern{Name: "numeric property", Action: patNumericProperty},
		Pattern{Name: "menu property", Action: patMenuProperty},
		Pattern{Name: "verb cardinality", Action: patVerbCardinality},
		Pattern{Name: "reflexive/symmetric", Action: patReflexiveSymmetric},
		Pattern{Name: "verb quantifier", Action: patVerbQuantifier},
		Pattern{Name: "test existence", Action: patTestExistence},
		Pattern{Name: "button", Action: patButton},
		Pattern{Name: "metadata", Action: patMetadata},
	)
}

// --- helpers -------------------------------------------------------------

// resolveOrIntroduceCommonNoun returns the common noun np resolved to, or
// introduces a brand new one from np.NewName, best-effort loading that
// noun's per-referent definitions file once it exists. A
// new name whose head word morphology recognizes as plural ("eyes",
// "people") is introduced under its singular form with the typed form
// registered as the plural.
func resolveOrIntroduceCommonNoun(pc *ParseContext, np NP) (*MonadicConcept, error) {
	o := pc.Ontology
	if np.Head != InvalidConceptID {
		c := o.ConceptByID(np.Head)
		if c == nil || c.IsAdjective {
			return nil, &GrammaticalError{Segment: "noun phrase"}
		}
		return c, nil
	}
	singular, plural := np.NewName, ""
	if o.Morphology().NounAppearsPlural(Tokenize(np.NewName)) {
		if s, err := o.Morphology().SingularOfNoun(np.NewName); err == nil {
			singular, plural = s, np.NewName
		}
	}
	c, err := o.AddCommonNoun(singular, plural)
	if err != nil {
		return nil, err
	}
	maybeLoadReferentFile(pc, c.Singular)
	return c, nil
}

// resolveOrIntroduceAdjective returns the literal ap resolved to, or
// introduces a brand new adjective from ap.NewName.
func resolveOrIntroduceAdjective(pc *ParseContext, ap AP) (MonadicConceptLiteral, error) {
	if ap.NewName == "" {
		return ap.Literal, nil
	}
	adj, err := pc.Ontology.AddAdjective(ap.NewName)
	if err != nil {
		return MonadicConceptLiteral{}, err
	}
	return MonadicConceptLiteral{Concept: adj.ID, Polarity: !ap.Negated}, nil
}

// resolveOrIntroduceVerb returns the verb vp resolved to, or introduces a
// brand new one from vp.NewName, mirroring resolveOrIntroduceCommonNoun for
// the verb side of the grammar.
func resolveOrIntroduceVerb(pc *ParseContext, vp VerbPhrase) (*Verb, error) {
	if vp.Verb != nil {
		return vp.Verb, nil
	}
	return pc.Ontology.AddVerb(vp.NewName)
}

func endOfInput(c *Cursor) bool { return c.AtEnd() }

func never(Token) bool { return false }

// --- subkind ---------------------------------------------------------

// "NP is a kind of NP." / "NP(plural) are kinds of NP." / a comma/and/or
// separated list of either form on the subkind side: "NP, NP, and NP are
// kinds of NP."
func patSubkind(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	subs, ok := scanNPList(o, c, func(t Token) bool { return t == "is" || t == "are" })
	if !ok {
		return false, nil
	}
	switch {
	case c.MatchLiteral("is", "a", "kind", "of"):
	case c.MatchLiteral("are", "kinds", "of"):
	default:
		return false, nil
	}
	super, ok := scanNP(o, c, false, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	superC, err := resolveOrIntroduceCommonNoun(pc, super)
	if err != nil {
		return true, err
	}
	for _, sub := range subs {
		subC, err := resolveOrIntroduceCommonNoun(pc, sub)
		if err != nil {
			return true, err
		}
		if err := o.DeclareSuperkind(subC.ID, superC.ID); err != nil {
			return true, err
		}
		if sub.RelativeFrequency > 0 {
			o.SetSubkindFrequency(superC.ID, subC.ID, sub.RelativeFrequency)
		}
	}
	return true, nil
}

// "the plural of NP is NP." / "the singular of NP is NP."
func patFormOverride(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	var wantPlural bool
	switch {
	case c.MatchLiteral("the", "plural", "of"):
		wantPlural = true
	case c.MatchLiteral("the", "singular", "of"):
		wantPlural = false
	default:
		return false, nil
	}
	target, ok := scanNP(o, c, false, func(t Token) bool { return t == "is" })
	if !ok || !c.MatchLiteral("is") {
		return false, nil
	}
	form, ok := scanNP(o, c, false, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	targetC, err := resolveOrIntroduceCommonNoun(pc, target)
	if err != nil {
		return true, err
	}
	if wantPlural {
		targetC.Plural = form.Text.String()
		o.conceptTrie.Insert(form.Text, targetC.ID)
		o.conceptTrie.AnnotateAsPlural(form.Text)
	} else {
		targetC.Singular = form.Text.String()
		o.conceptTrie.Insert(form.Text, targetC.ID)
	}
	if targetC.Singular != "" && targetC.Plural != "" {
		o.Morphology().AddIrregularNoun(targetC.Singular, targetC.Plural)
	}
	return true, nil
}

// --- verb algebra ----------------------------------------------------

// "V is rare." / "V is common." The verb must already exist: an unknown
// subject here is far more likely an adjective statement ("a cat is rare")
// than a fresh verb, and those patterns run later.
func patVerbDensity(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	vp, ok := scanVerb(o, c, never)
	if !ok || vp.Verb == nil || !c.MatchLiteral("is") {
		return false, nil
	}
	var density float64
	switch {
	case c.MatchLiteral("rare"):
		density = 0.1
	case c.MatchLiteral("common"):
		density = 0.9
	default:
		return false, nil
	}
	if !endOfInput(c) {
		return false, nil
	}
	vp.Verb.Density = density
	return true, nil
}

// "V and V are mutually exclusive."
func patVerbMutualExclusion(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	vp1, ok := scanVerb(o, c, func(t Token) bool { return t == "and" })
	if !ok || vp1.Verb == nil || !c.MatchLiteral("and") {
		return false, nil
	}
	vp2, ok := scanVerb(o, c, never)
	if !ok || !c.MatchLiteral("are", "mutually", "exclusive") || !endOfInput(c) {
		return false, nil
	}
	v1 := vp1.Verb
	v2, err := resolveOrIntroduceVerb(pc, vp2)
	if err != nil {
		return true, err
	}
	v1.MutualExclusions = append(v1.MutualExclusions, v2.ID)
	v2.MutualExclusions = append(v2.MutualExclusions, v1.ID)
	return true, nil
}

// "V implies V." (generalization).
func patVerbImplies(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	vp1, ok := scanVerb(o, c, func(t Token) bool { return t == "implies" })
	if !ok || vp1.Verb == nil || !c.MatchLiteral("implies") {
		return false, nil
	}
	vp2, ok := scanVerb(o, c, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	v2, err := resolveOrIntroduceVerb(pc, vp2)
	if err != nil {
		return true, err
	}
	vp1.Verb.Generalizations = append(vp1.Verb.Generalizations, v2.ID)
	return true, nil
}

// "V is a way of V." (super-species link).
func patVerbWayOf(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	vp1, ok := scanVerb(o, c, never)
	if !ok || vp1.Verb == nil || !c.MatchLiteral("is", "a", "way", "of") {
		return false, nil
	}
	vp2, ok := scanVerb(o, c, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	v1 := vp1.Verb
	v2, err := resolveOrIntroduceVerb(pc, vp2)
	if err != nil {
		return true, err
	}
	v1.Superspecies = append(v1.Superspecies, v2.ID)
	v2.Subspecies = append(v2.Subspecies, v1.ID)
	return true, nil
}

// --- templates and suppression ---------------------------------------

// "NP is identified as \"Text\"." / "NP is described as \"Text\"."
func patIdentifiedDescribedAs(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "is" })
	if !ok || !c.MatchLiteral("is") {
		return false, nil
	}
	var isName bool
	switch {
	case c.MatchLiteral("identified", "as"):
		isName = true
	case c.MatchLiteral("described", "as"):
		isName = false
	default:
		return false, nil
	}
	// Past this point the sentence has committed to this pattern: a
	// missing quoted string is a grammatical error, not a
	// silent fall-through to the next pattern.
	text, ok := c.ScanQuotedText()
	if !ok {
		return true, &GrammaticalError{Segment: "quoted text", PatternName: "identified/described as"}
	}
	if !endOfInput(c) {
		return true, &GrammaticalError{Segment: "end of sentence", PatternName: "identified/described as"}
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	if isName {
		subj.NameTemplate = ParseTemplate(text)
	} else {
		subj.DescriptionTemplate = ParseTemplate(text)
	}
	return true, nil
}

// "Do not mention being AP." / "Do not print NP."
func patSuppressMention(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	if !c.MatchLiteral("do", "not") {
		return false, nil
	}
	switch {
	case c.MatchLiteral("mention", "being"):
		ap, ok := scanAP(o, c)
		if !ok || !endOfInput(c) {
			return true, &GrammaticalError{Segment: "adjective", PatternName: "suppress mention"}
		}
		lit, err := resolveOrIntroduceAdjective(pc, ap)
		if err != nil {
			return true, err
		}
		o.ConceptByID(lit.Concept).IsSilent = true
		return true, nil
	case c.MatchLiteral("print"):
		np, ok := scanNP(o, c, false, never)
		if !ok || !endOfInput(c) {
			return true, &GrammaticalError{Segment: "noun phrase", PatternName: "suppress mention"}
		}
		subj, err := resolveOrIntroduceCommonNoun(pc, np)
		if err != nil {
			return true, err
		}
		subj.SuppressDescription = true
		return true, nil
	}
	return false, nil
}

// --- alternative sets --------------------------------------------------

// "NP is any Int of AP, ..." / "NP is between Int and Int of AP, ..." /
// "NP can be at most Int of AP, ..."
func patBoundedAlternatives(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "is" || t == "can" })
	if !ok {
		return false, nil
	}
	var min, max int
	switch {
	case c.MatchLiteral("is", "any"):
		n, ok := c.ScanInt()
		if !ok || !c.MatchLiteral("of") {
			return false, nil
		}
		min, max = n, n
	case c.MatchLiteral("is", "between"):
		lo, ok := c.ScanInt()
		if !ok || !c.MatchLiteral("and") {
			return false, nil
		}
		hi, ok := c.ScanInt()
		if !ok || !c.MatchLiteral("of") {
			return false, nil
		}
		min, max = lo, hi
	case c.MatchLiteral("can", "be", "at", "most"):
		n, ok := c.ScanInt()
		if !ok || !c.MatchLiteral("of") {
			return false, nil
		}
		min, max = 0, n
	default:
		return false, nil
	}
	aps, ok := scanAPList(o, c)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	return true, attachAlternativeSet(pc, subj, aps, min, max, false)
}

// "NP are AP, AP, or AP." (required: exactly one).
func patRequiredAlternatives(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "are" })
	if !ok || !c.MatchLiteral("are") {
		return false, nil
	}
	aps, ok := scanAPList(o, c)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	return true, attachAlternativeSet(pc, subj, aps, 1, 1, true)
}

// "NP can be AP, AP, or AP." (optional: at most one).
func patOptionalAlternatives(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "can" })
	if !ok || !c.MatchLiteral("can", "be") {
		return false, nil
	}
	aps, ok := scanAPList(o, c)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	return true, attachAlternativeSet(pc, subj, aps, 0, 1, false)
}

// attachAlternativeSet resolves every AP (introducing new adjectives),
// bumps each adjective's reference count, and appends the resulting
// AlternativeSet to subj.
func attachAlternativeSet(pc *ParseContext, subj *MonadicConcept, aps []AP, min, max int, allowPre bool) error {
	o := pc.Ontology
	as := &AlternativeSet{MinCount: min, MaxCount: max, AllowPreInitialization: allowPre}
	for _, ap := range aps {
		lit, err := resolveOrIntroduceAdjective(pc, ap)
		if err != nil {
			return err
		}
		as.Alternatives = append(as.Alternatives, lit)
		as.Frequencies = append(as.Frequencies, ap.RelativeFrequency)
		o.ConceptByID(lit.Concept).ReferenceCount++
		subj.RelevantAdjectives = appendUniqueConcept(subj.RelevantAdjectives, lit.Concept)
	}
	subj.AlternativeSets = append(subj.AlternativeSets, as)
	return nil
}

// --- proper nouns and implied adjectives ------------------------------

// "X is a NP." — X names nothing in the ontology and carries no
// determiner, so it binds a proper noun to a permanent individual of the
// named kind. Repeating the statement with another kind adds that kind to
// the same individual.
func patProperNoun(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	subj, ok := scanNP(o, c, false, func(t Token) bool { return t == "is" })
	if !ok || subj.Head != InvalidConceptID || subj.NewName == "" || subj.BeginsWithDeterminer {
		return false, nil
	}
	if !c.MatchLiteral("is") {
		return false, nil
	}
	if !c.MatchLiteral("a") && !c.MatchLiteral("an") {
		return false, nil
	}
	// "X is a way of Y" is a verb statement even when X has not been
	// declared yet; it must not mint a proper noun named X.
	if tok, ok := c.Peek(); ok && tok == "way" {
		if next, ok2 := c.PeekAt(1); ok2 && next == "of" {
			return false, nil
		}
	}
	np, ok := scanNP(o, c, false, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	kind, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	_, err = o.PermanentIndividual([]ConceptID{kind.ID}, subj.NewName)
	if err != nil {
		return true, err
	}
	return true, nil
}

// "NP is AP." / "NP is always AP." (unconditional implied adjective: the
// condition list is empty, so the generator's clause reduces to "kind ->
// modifier"). When the subject is an existing proper noun, the adjective
// attaches to that permanent individual instead.
func patImpliedAdjective(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "is" })
	if !ok || !c.MatchLiteral("is") {
		return false, nil
	}
	c.MatchLiteral("always")
	ap, ok := scanAP(o, c)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	lit, err := resolveOrIntroduceAdjective(pc, ap)
	if err != nil {
		return true, err
	}
	if np.Head == InvalidConceptID && np.NewName != "" {
		if ind, found := o.ProperNoun(Tokenize(np.NewName)); found {
			ind.AddModifier(lit)
			return true, nil
		}
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	subj.ImpliedAdjectives = append(subj.ImpliedAdjectives, &ConditionalModifier{Modifier: lit})
	subj.RelevantAdjectives = appendUniqueConcept(subj.RelevantAdjectives, lit.Concept)
	return true, nil
}

func appendUniqueConcept(list []ConceptID, id ConceptID) []ConceptID {
	for _, x := range list {
		if x == id {
			return list
		}
	}
	return append(list, id)
}

// --- parts ---------------------------------------------------------------

// "NP has Int NP called their Text." / "NP has NP called their Text." /
// "NP has Int NP." / "NP has NP."
func patPartDeclaration(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	owner, ok := scanNP(o, c, false, func(t Token) bool { return t == "has" })
	if !ok || !c.MatchLiteral("has") {
		return false, nil
	}
	count := 1
	if n, ok := c.ScanInt(); ok {
		count = n
	}
	partNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "called" })
	if !ok {
		return false, nil
	}
	calledName := ""
	if c.MatchLiteral("called", "their") {
		text := c.ScanToEnd()
		calledName = text.String()
		if calledName == "" {
			return true, &GrammaticalError{Segment: "name text", PatternName: "part declaration"}
		}
	} else if !endOfInput(c) {
		return false, nil
	}
	ownerC, err := resolveOrIntroduceCommonNoun(pc, owner)
	if err != nil {
		return true, err
	}
	partC, err := resolveOrIntroduceCommonNoun(pc, partNP)
	if err != nil {
		return true, err
	}
	name := calledName
	if name == "" {
		name = partC.Singular
	}
	o.AddPart(ownerC, name, count, partC.ID, partNP.Modifiers)
	return true, nil
}

// --- properties ------------------------------------------------------

// "NP have NP between Float and Float." (interval property) / "NP have NP
// from ListName." (menu property whose values come from "<ListName>.txt"
// in the definitions directory, one value per line).
func patNumericProperty(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	owner, ok := scanNP(o, c, false, func(t Token) bool { return t == "have" })
	if !ok || !c.MatchLiteral("have") {
		return false, nil
	}
	propNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "between" || t == "from" })
	if !ok {
		return false, nil
	}
	switch {
	case c.MatchLiteral("between"):
		lo, ok := c.ScanFloat()
		if !ok || !c.MatchLiteral("and") {
			return true, &GrammaticalError{Segment: "interval", PatternName: "numeric property"}
		}
		hi, ok := c.ScanFloat()
		if !ok || !endOfInput(c) {
			return true, &GrammaticalError{Segment: "interval", PatternName: "numeric property"}
		}
		ownerC, err := resolveOrIntroduceCommonNoun(pc, owner)
		if err != nil {
			return true, err
		}
		prop := findOrAddProperty(o, ownerC, propNP.Text.String(), PropertyInterval)
		prop.Intervals = append(prop.Intervals, IntervalRule{Min: lo, Max: hi})
		return true, nil
	case c.MatchLiteral("from"):
		listName := c.ScanToEnd().String()
		if listName == "" {
			return true, &GrammaticalError{Segment: "list name", PatternName: "numeric property"}
		}
		ownerC, err := resolveOrIntroduceCommonNoun(pc, owner)
		if err != nil {
			return true, err
		}
		prop := findOrAddProperty(o, ownerC, propNP.Text.String(), PropertyMenu)
		rule := MenuRule{ListSource: listName}
		if values, found := loadListFile(pc, listName); found {
			rule.Values = values
		}
		prop.Menus = append(prop.Menus, rule)
		return true, nil
	}
	return false, nil
}

// "NP have NP as X, Y, or Z." (menu property with inline values).
func patMenuProperty(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	owner, ok := scanNP(o, c, false, func(t Token) bool { return t == "have" })
	if !ok || !c.MatchLiteral("have") {
		return false, nil
	}
	propNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "as" })
	if !ok || !c.MatchLiteral("as") {
		return false, nil
	}
	rest := c.ScanToEnd().String()
	values := splitCommaOrList(rest)
	if len(values) == 0 {
		return false, nil
	}
	ownerC, err := resolveOrIntroduceCommonNoun(pc, owner)
	if err != nil {
		return true, err
	}
	prop := findOrAddProperty(o, ownerC, propNP.Text.String(), PropertyMenu)
	prop.Menus = append(prop.Menus, MenuRule{Values: values})
	return true, nil
}

func splitCommaOrList(text string) []string {
	text = strings.ReplaceAll(text, " or ", ", ")
	text = strings.ReplaceAll(text, " and ", ", ")
	var out []string
	for _, part := range strings.Split(text, ",") {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func findOrAddProperty(o *Ontology, owner *MonadicConcept, name string, typ PropertyType) *Property {
	for _, pid := range owner.Properties {
		p := o.PropertyByID(pid)
		if p != nil && p.Name.String() == name {
			return p
		}
	}
	return o.AddProperty(owner, name, typ)
}

// --- verb cardinality ------------------------------------------------

// "NP can V up to Int NP." / "NP can V at most Int NP." / "NP must V at
// least Int NP." / "NP must V between Int and Int NP." / "NP must V Int
// NP." and passive variants "NP must be Vpp by at least Int NP." (etc).
func patVerbCardinality(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	subjNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "can" || t == "must" })
	if !ok {
		return false, nil
	}
	var required bool
	switch {
	case c.MatchLiteral("can"):
		required = false
	case c.MatchLiteral("must"):
		required = true
	default:
		return false, nil
	}
	passive := c.MatchLiteral("be")

	vp, ok := scanVerb(o, c, func(t Token) bool {
		return t == "by" || t == "up" || t == "at" || t == "between" || looksLikeCardinal(t)
	})
	if !ok {
		return false, nil
	}

	if passive {
		if !c.MatchLiteral("by") {
			return false, nil
		}
	}

	lower, upper, ok := scanBoundPhrase(c, required)
	if !ok {
		return false, nil
	}
	objNP, ok := scanNP(o, c, false, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	subjC, err := resolveOrIntroduceCommonNoun(pc, subjNP)
	if err != nil {
		return true, err
	}
	objC, err := resolveOrIntroduceCommonNoun(pc, objNP)
	if err != nil {
		return true, err
	}
	v, err := resolveOrIntroduceVerb(pc, vp)
	if err != nil {
		return true, err
	}
	if passive {
		// "NP(object role) must be Vpp by <bound> NP(subject role)": the
		// bound counts subjects per object, i.e. the verb's subject bound.
		v.AddShape(VerbShape{SubjectKind: objC.ID, SubjectModifiers: objNP.Modifiers, ObjectKind: subjC.ID, ObjectModifiers: subjNP.Modifiers})
		applyBound(&v.SubjectLower, &v.SubjectUpper, lower, upper)
	} else {
		v.AddShape(VerbShape{SubjectKind: subjC.ID, SubjectModifiers: subjNP.Modifiers, ObjectKind: objC.ID, ObjectModifiers: objNP.Modifiers})
		applyBound(&v.ObjectLower, &v.ObjectUpper, lower, upper)
	}
	return true, nil
}

// scanBoundPhrase scans one of "up to N" / "at most N" / "at least N" /
// "between N and N", returning (lower, upper). required is used only to
// pick the default lower bound of "up to N" (0 for "can", 1 for "must");
// "at most N" always has lower bound 0.
func scanBoundPhrase(c *Cursor, required bool) (lower, upper int, ok bool) {
	defaultLower := 0
	if required {
		defaultLower = 1
	}
	switch {
	case c.MatchLiteral("up", "to"):
		n, ok2 := c.ScanInt()
		if !ok2 {
			return 0, 0, false
		}
		return defaultLower, n, true
	case c.MatchLiteral("at", "most"):
		n, ok2 := c.ScanInt()
		if !ok2 {
			return 0, 0, false
		}
		return 0, n, true
	case c.MatchLiteral("at", "least"):
		n, ok2 := c.ScanInt()
		if !ok2 {
			return 0, 0, false
		}
		return n, Unbounded, true
	case c.MatchLiteral("between"):
		lo, ok2 := c.ScanInt()
		if !ok2 || !c.MatchLiteral("and") {
			return 0, 0, false
		}
		hi, ok3 := c.ScanInt()
		if !ok3 {
			return 0, 0, false
		}
		return lo, hi, true
	}
	// A bare digit with no "up to"/"at least"/etc. phrase names an exact
	// cardinality, e.g. "an employee must work for one employer."
	if n, ok2 := c.ScanInt(); ok2 {
		return n, n, true
	}
	return 0, 0, false
}

func applyBound(lowerField, upperField *int, lower, upper int) {
	*lowerField = lower
	*upperField = upper
}

// --- reflexivity, symmetry, quantifiers ---------------------------------

// "NP cannot V themselves." / "NP must V themselves." / "NP cannot V each
// other." / "NP can V each other."
func patReflexiveSymmetric(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	subjNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "cannot" || t == "must" || t == "can" })
	if !ok {
		return false, nil
	}
	var negative bool
	switch {
	case c.MatchLiteral("cannot"):
		negative = true
	case c.MatchLiteral("must"):
		negative = false
	case c.MatchLiteral("can"):
		negative = false
	default:
		return false, nil
	}
	// "people can be married to each other": the copula plus participle is
	// one verb phrase; a new verb introduced this way keeps "be" in its
	// base form so morphology swaps in is/are/being correctly.
	copular := c.MatchLiteral("be")
	vp, ok := scanVerb(o, c, func(t Token) bool { return t == "themselves" })
	if !ok {
		return false, nil
	}
	if copular && vp.NewName != "" {
		vp.NewName = "be " + vp.NewName
	}
	var isThemselves, isEachOther bool
	switch {
	case c.MatchLiteral("themselves"):
		isThemselves = true
	case c.MatchLiteral("each", "other"):
		isEachOther = true
	default:
		return false, nil
	}
	if !endOfInput(c) {
		return false, nil
	}
	subjC, err := resolveOrIntroduceCommonNoun(pc, subjNP)
	if err != nil {
		return true, err
	}
	v, err := resolveOrIntroduceVerb(pc, vp)
	if err != nil {
		return true, err
	}
	v.AddShape(VerbShape{SubjectKind: subjC.ID, ObjectKind: subjC.ID})
	switch {
	case isThemselves && negative:
		v.IsAntiReflexive = true
	case isThemselves && !negative:
		v.IsReflexive = true
	case isEachOther && negative:
		v.IsAntiSymmetric = true
	case isEachOther && !negative:
		v.IsSymmetric = true
	}
	return true, nil
}

// "NP can V Quantifier NP." / "NP must V Quantifier NP." — the
// anti-reflexive "other" quantifier is signaled only by the IsOther bit,
// never by a textual heuristic.
func patVerbQuantifier(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	subjNP, ok := scanNP(o, c, false, func(t Token) bool { return t == "can" || t == "must" })
	if !ok {
		return false, nil
	}
	if !c.MatchLiteral("can") && !c.MatchLiteral("must") {
		return false, nil
	}
	vp, ok := scanVerb(o, c, never)
	if !ok {
		return false, nil
	}
	q, ok := scanQuantifier(c)
	if !ok {
		return false, nil
	}
	objNP, ok := scanNP(o, c, false, never)
	if !ok || !endOfInput(c) {
		return false, nil
	}
	subjC, err := resolveOrIntroduceCommonNoun(pc, subjNP)
	if err != nil {
		return true, err
	}
	objC, err := resolveOrIntroduceCommonNoun(pc, objNP)
	if err != nil {
		return true, err
	}
	v, err := resolveOrIntroduceVerb(pc, vp)
	if err != nil {
		return true, err
	}
	v.AddShape(VerbShape{SubjectKind: subjC.ID, SubjectModifiers: subjNP.Modifiers, ObjectKind: objC.ID, ObjectModifiers: objNP.Modifiers})
	if q.IsOther {
		v.IsAntiReflexive = true
	}
	return true, nil
}

// --- tests -----------------------------------------------------------

// "NP should exist." / "NP should not exist." / "every kind of NP should
// exist."
func patTestExistence(pc *ParseContext, c *Cursor) (bool, error) {
	o := pc.Ontology
	everyKindOf := c.MatchLiteral("every", "kind", "of")
	np, ok := scanNP(o, c, false, func(t Token) bool { return t == "should" })
	if !ok || !c.MatchLiteral("should") {
		return false, nil
	}
	shouldExist := true
	if c.MatchLiteral("not", "exist") {
		shouldExist = false
	} else if !c.MatchLiteral("exist") {
		return false, nil
	}
	if !endOfInput(c) {
		return false, nil
	}
	subj, err := resolveOrIntroduceCommonNoun(pc, np)
	if err != nil {
		return true, err
	}
	if everyKindOf {
		for _, sub := range subj.Subkinds {
			o.AddTest(sub, nil, shouldExist, "", "")
		}
		return true, nil
	}
	o.AddTest(subj.ID, np.Modifiers, shouldExist, "", "")
	return true, nil
}

// --- button / metadata ------------------------------------------------

// "pressing \"Text\" means \"Text\"." (delegated to the REPL collaborator;
// this package only records the binding).
func patButton(pc *ParseContext, c *Cursor) (bool, error) {
	if !c.MatchLiteral("pressing") {
		return false, nil
	}
	label, ok := c.ScanQuotedText()
	if !ok || !c.MatchLiteral("means") {
		return false, nil
	}
	command, ok := c.ScanQuotedText()
	if !ok || !endOfInput(c) {
		return true, &GrammaticalError{Segment: "quoted command", PatternName: "button"}
	}
	pc.Ontology.AddButton(label, command)
	return true, nil
}

// "author: Text." / "description: Text." / "instructions: Text."
func patMetadata(pc *ParseContext, c *Cursor) (bool, error) {
	var field string
	switch {
	case c.MatchLiteral("author:"):
		field = "author"
	case c.MatchLiteral("description:"):
		field = "description"
	case c.MatchLiteral("instructions:"):
		field = "instructions"
	default:
		return false, nil
	}
	text := c.ScanToEnd().String()
	switch field {
	case "author":
		pc.Ontology.SetAuthor(text)
	case "description":
		pc.Ontology.SetDescription(text)
	case "instructions":
		pc.Ontology.SetInstructions(text)
	}
	return true, nil
}
