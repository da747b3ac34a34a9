package imaginarium

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Invention wraps a solved Problem: individuals plus truth assignments,
// queryable via IsA/Holds/Relationships and rendered to English via
// NameString/Description. Every per-invention cache here
// (descCache, nameCache) is scoped to this struct rather than to the
// shared Individual: a permanent individual appearing in two Inventions
// must not have one's cached description leak into the other.
type Invention struct {
	id       uuid.UUID
	ontology *Ontology

	individuals []*Individual
	solution    *Solution

	conceptVar   map[int64]map[ConceptID]BoolVar
	holdsVar     map[VerbID]map[int64]map[int64]BoolVar
	menuVars     map[int64]map[PropertyID][]menuBinding
	intervalVals map[int64]map[PropertyID]float64

	descCache map[int64]string
	nameCache map[int64]string
}

// ID returns this invention run's stable identifier.
func (inv *Invention) ID() uuid.UUID { return inv.id }

// Individuals returns every individual in this invention, in the
// generator's insertion order.
func (inv *Invention) Individuals() []*Individual { return inv.individuals }

// IsA reports whether kind holds of ind in this invention's solution. If
// kind was never in ind's candidate domain (the generator never allocated
// a variable for it), it can never hold, and no solver query is made.
func (inv *Invention) IsA(ind *Individual, kind ConceptID) bool {
	v, ok := inv.conceptVar[ind.id][kind]
	if !ok {
		return false
	}
	return inv.solution.Value(Lit(v))
}

// Holds reports whether Holds(v, i1, i2) is true in this invention.
func (inv *Invention) Holds(v *Verb, i1, i2 *Individual) bool {
	bv, ok := inv.holdsVar[v.ID][i1.id][i2.id]
	if !ok {
		return false
	}
	return inv.solution.Value(Lit(bv))
}

// Relationship is one true (verb, subject, object) triple surfaced by
// Relationships.
type Relationship struct {
	Verb    *Verb
	Subject *Individual
	Object  *Individual
}

// Relationships iterates every (v, i1, i2) true in the solution,
// deduplicating symmetric pairs by the id order i1 <= i2.
func (inv *Invention) Relationships() []Relationship {
	var out []Relationship
	for vid, bySubj := range inv.holdsVar {
		v := inv.ontology.VerbByID(vid)
		if v == nil {
			continue
		}
		for subjID, byObj := range bySubj {
			for objID, bv := range byObj {
				if !inv.solution.Value(Lit(bv)) {
					continue
				}
				if v.IsSymmetric && subjID > objID {
					continue // the (obj,subj) form already covers this pair
				}
				s := findIndividual(inv.individuals, subjID)
				o := findIndividual(inv.individuals, objID)
				if s == nil || o == nil {
					continue
				}
				out = append(out, Relationship{Verb: v, Subject: s, Object: o})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject.id != out[j].Subject.id {
			return out[i].Subject.id < out[j].Subject.id
		}
		if out[i].Verb.ID != out[j].Verb.ID {
			return out[i].Verb.ID < out[j].Verb.ID
		}
		return out[i].Object.id < out[j].Object.id
	})
	return out
}

// MostSpecificNouns returns every kind true of ind that is not dominated
// by another also-true kind: used to decide which kind's
// DescriptionTemplate applies.
func (inv *Invention) MostSpecificNouns(ind *Individual) []ConceptID {
	var trueKinds []ConceptID
	for k := range inv.conceptVar[ind.id] {
		c := inv.ontology.ConceptByID(k)
		if c == nil || c.IsAdjective {
			continue
		}
		if inv.IsA(ind, k) {
			trueKinds = append(trueKinds, k)
		}
	}
	var out []ConceptID
	for _, k := range trueKinds {
		dominated := false
		for _, other := range trueKinds {
			if other != k && inv.ontology.IsSubkindOf(other, k) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AdjectivesDescribing returns every adjective true of ind (explicit
// modifier or alternative-set member) that is not marked silent.
func (inv *Invention) AdjectivesDescribing(ind *Individual) []ConceptID {
	var out []ConceptID
	for k := range inv.conceptVar[ind.id] {
		c := inv.ontology.ConceptByID(k)
		if c == nil || !c.IsAdjective || c.IsSilent {
			continue
		}
		if inv.IsA(ind, k) {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PropertyValue returns the rendered string value of property p on ind:
// the chosen menu value, or the formatted representative interval value.
func (inv *Invention) PropertyValue(ind *Individual, p *Property) (string, bool) {
	if bindings, ok := inv.menuVars[ind.id][p.ID]; ok {
		for _, b := range bindings {
			if inv.solution.Value(Lit(b.Var)) {
				return b.Value, true
			}
		}
		return "", false
	}
	if val, ok := inv.intervalVals[ind.id][p.ID]; ok {
		return formatFloat(val), true
	}
	return "", false
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

// NameString renders ind's display name. Precedence: (1) a property
// literally called "name"; (2) a
// NameTemplate found walking up the kind lattice; (3) "container's part"
// if ind is a part; (4) ind's proper name, if it has one; (5) the raw name
// tokens. Cached per-invention.
func (inv *Invention) NameString(ind *Individual) string {
	if s, ok := inv.nameCache[ind.id]; ok {
		return s
	}
	s := inv.computeNameString(ind, make(map[int64]bool))
	inv.nameCache[ind.id] = s
	return s
}

func (inv *Invention) computeNameString(ind *Individual, visiting map[int64]bool) string {
	if visiting[ind.id] {
		return ind.Name.String() // recursion guard
	}
	visiting[ind.id] = true

	for _, pid := range allPropertyIDs(inv.ontology, ind) {
		p := inv.ontology.PropertyByID(pid)
		if p != nil && p.Name.String() == "name" {
			if v, ok := inv.PropertyValue(ind, p); ok {
				return v
			}
		}
	}
	if tmpl := inv.findNameTemplate(ind); tmpl != nil {
		return inv.renderTemplate(ind, tmpl, visiting)
	}
	if ind.Container != nil {
		part := inv.ontology.PartByID(ind.ContainerPart)
		if part != nil {
			return inv.computeNameString(ind.Container, visiting) + "'s " + part.Name.String()
		}
	}
	if ind.ProperName != "" {
		return ind.ProperName
	}
	return ind.Name.String()
}

// findNameTemplate walks from ind's most specific true kind up through
// superkinds looking for the first NameTemplate set.
func (inv *Invention) findNameTemplate(ind *Individual) []TemplateToken {
	for _, k := range inv.MostSpecificNouns(ind) {
		if t := walkUpForTemplate(inv.ontology, k, func(c *MonadicConcept) []TemplateToken { return c.NameTemplate }); t != nil {
			return t
		}
	}
	return nil
}

func walkUpForTemplate(o *Ontology, k ConceptID, get func(*MonadicConcept) []TemplateToken) []TemplateToken {
	seen := make(map[ConceptID]bool)
	queue := []ConceptID{k}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		c := o.ConceptByID(cur)
		if c == nil {
			continue
		}
		if t := get(c); len(t) > 0 {
			return t
		}
		queue = append(queue, c.Superkinds...)
	}
	return nil
}

// allPropertyIDs collects every Property attached to any kind true of ind.
func allPropertyIDs(o *Ontology, ind *Individual) []PropertyID {
	var out []PropertyID
	seen := make(map[ConceptID]bool)
	queue := append([]ConceptID(nil), ind.Kinds...)
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if seen[k] {
			continue
		}
		seen[k] = true
		c := o.ConceptByID(k)
		if c == nil {
			continue
		}
		out = append(out, c.Properties...)
		queue = append(queue, c.Superkinds...)
	}
	return out
}

// Description renders ind's description using the DescriptionTemplate
// found by walking up from its most specific true kind (falling back to a
// default template: "[ContainerAndPart] [ProperNameIfDefined] is a
// [Modifiers] [Noun] [AllProperties]"). Cached per-invention.
func (inv *Invention) Description(ind *Individual) string {
	if s, ok := inv.descCache[ind.id]; ok {
		return s
	}
	var tmpl []TemplateToken
	var chosenKind ConceptID = InvalidConceptID
	for _, k := range inv.MostSpecificNouns(ind) {
		if t := walkUpForTemplate(inv.ontology, k, func(c *MonadicConcept) []TemplateToken {
			if c.SuppressDescription {
				return []TemplateToken{{Kind: TemplateWord, Word: ""}}
			}
			return c.DescriptionTemplate
		}); t != nil {
			tmpl = t
			chosenKind = k
			break
		}
	}
	if chosenKind == InvalidConceptID && len(inv.MostSpecificNouns(ind)) > 0 {
		chosenKind = inv.MostSpecificNouns(ind)[0]
	}
	if c := inv.ontology.ConceptByID(chosenKind); c != nil && c.SuppressDescription {
		inv.descCache[ind.id] = ""
		return ""
	}
	if len(tmpl) == 0 {
		tmpl = defaultDescriptionTemplate()
	}
	s := inv.renderTemplate(ind, tmpl, make(map[int64]bool))
	inv.descCache[ind.id] = s
	return s
}

func defaultDescriptionTemplate() []TemplateToken {
	return ParseTemplate("[ContainerAndPart] [ProperNameIfDefined] is a [Modifiers] [Noun] [AllProperties]")
}

// renderTemplate is a small closed interpreter: a fixed set of
// meta-directives, falling through to a property or part name lookup on
// the chosen kind.
func (inv *Invention) renderTemplate(ind *Individual, tmpl []TemplateToken, visiting map[int64]bool) string {
	var words []string
	usedProperties := make(map[PropertyID]bool)
	for _, tok := range tmpl {
		switch tok.Kind {
		case TemplateWord:
			words = append(words, tok.Word)
		case TemplateDirective:
			words = append(words, inv.renderDirective(ind, tok.Directive, visiting, usedProperties)...)
		}
	}
	return renderTemplateWords(words)
}

func (inv *Invention) renderDirective(ind *Individual, directive string, visiting map[int64]bool, used map[PropertyID]bool) []string {
	switch directive {
	case "Container":
		if ind.Container != nil {
			return []string{inv.computeNameString(ind.Container, visiting) + "'s"}
		}
		return nil
	case "ContainerAndPart":
		if ind.Container != nil {
			part := inv.ontology.PartByID(ind.ContainerPart)
			if part != nil {
				return []string{inv.computeNameString(ind.Container, visiting) + "'s " + part.Name.String()}
			}
		}
		return nil
	case "NameString":
		return []string{inv.computeNameString(ind, visiting)}
	case "ProperNameIfDefined":
		if ind.ProperName != "" {
			return []string{ind.ProperName}
		}
		return nil
	case "Modifiers":
		var out []string
		for _, a := range inv.AdjectivesDescribing(ind) {
			c := inv.ontology.ConceptByID(a)
			if c != nil {
				out = append(out, c.Name.String())
			}
		}
		return out
	case "Noun":
		nouns := inv.MostSpecificNouns(ind)
		if len(nouns) == 0 {
			return nil
		}
		c := inv.ontology.ConceptByID(nouns[0])
		if c == nil {
			return nil
		}
		return []string{c.Singular}
	case "AllProperties":
		var out []string
		for _, pid := range allPropertyIDs(inv.ontology, ind) {
			if used[pid] {
				continue
			}
			p := inv.ontology.PropertyByID(pid)
			if p == nil || p.Name.String() == "name" {
				continue
			}
			if v, ok := inv.PropertyValue(ind, p); ok {
				out = append(out, v)
			}
		}
		return out
	default:
		// Fall through to a property or part name lookup on the chosen
		// kind.
		for _, pid := range allPropertyIDs(inv.ontology, ind) {
			p := inv.ontology.PropertyByID(pid)
			if p != nil && p.Name.String() == directive {
				used[pid] = true
				if v, ok := inv.PropertyValue(ind, p); ok {
					return []string{v}
				}
			}
		}
		for pid, children := range ind.Parts {
			part := inv.ontology.PartByID(pid)
			if part != nil && part.Name.String() == directive && len(children) > 0 {
				return []string{inv.computeNameString(children[0], visiting)}
			}
		}
		return nil
	}
}
