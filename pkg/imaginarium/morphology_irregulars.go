package imaginarium

// defaultIrregularNounPlurals holds noun pairs that no suffix-rewrite rule
// predicts correctly. go-inflect's own irregular table covers common
// English nouns; this table adds ontology-authoring vocabulary and lets
// authors extend the set via Morphology.AddIrregularNoun or "the plural of
// NP is NP" statements.
var defaultIrregularNounPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"mouse":  "mice",
	"goose":  "geese",
	"tooth":  "teeth",
	"foot":   "feet",
}

// defaultIrregularPassiveParticiples overrides the regular "+ed" passive
// participle rule for irregular verbs common in "must be Vpp by" patterns.
var defaultIrregularPassiveParticiples = map[string]string{
	"love":  "loved",
	"work":  "worked",
	"marry": "married",
	"own":   "owned",
	"know":  "known",
	"see":   "seen",
	"give":  "given",
	"eat":   "eaten",
	"wear":  "worn",
}
