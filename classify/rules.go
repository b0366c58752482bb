package classify

import "japaneseannotate/model"

// Rule maps a primary tag and optional refinements to a label. Sub and
// SubSub match the first and second sub-tag; a matched sub-tag is consumed
// and not reported in Classification.Remaining. ConjugationType, when set,
// matches entries whose conjugation type starts with any of the prefixes.
type Rule struct {
	POS             model.POS
	Sub             string
	SubSub          string
	ConjugationType []string
	Label           string
}

var (
	godan   = []string{"五段", "godan", "five-step", "five step"}
	ichidan = []string{"一段", "ichidan", "one-step", "one step"}
	suru    = []string{"サ変", "suru"}
	kuru    = []string{"カ変", "kuru"}
)

// DefaultRules is the decision table used by Default. Order matters: the
// first matching rule wins, so refinements precede their bare category.
var DefaultRules = []Rule{
	{POS: model.Noun, Sub: "general-adjectival-noun", Label: "Universal Adjectival Noun"},
	{POS: model.Noun, Sub: "common", SubSub: "adjectival-noun-possible", Label: "Universal Adjectival Noun"},
	{POS: model.Noun, Sub: "adjectival-noun-stem", Label: "Adjectival Noun"},
	{POS: model.Noun, Sub: "suru-verb-stem", Label: "Verbal Noun"},
	{POS: model.Noun, Sub: "proper", Label: "Proper Noun"},
	{POS: model.Noun, Sub: "pronoun", Label: "Pronoun"},
	{POS: model.Noun, Sub: "numeral", Label: "Numeral"},
	{POS: model.Noun, Label: "Noun"},

	{POS: model.Particle, Sub: "case-marking", SubSub: "general", Label: "Universal Case-Marking Particle"},
	{POS: model.Particle, Sub: "case-marking", Label: "Case-Marking Particle"},
	{POS: model.Particle, Sub: "binding", Label: "Binding Particle"},
	{POS: model.Particle, Sub: "adverbial", Label: "Adverbial Particle"},
	{POS: model.Particle, Sub: "conjunctive", Label: "Conjunctive Particle"},
	{POS: model.Particle, Sub: "sentence-final", Label: "Sentence-Ending Particle"},
	{POS: model.Particle, Sub: "attributive", Label: "Attributive Particle"},
	{POS: model.Particle, Sub: "parallel", Label: "Parallel Particle"},
	{POS: model.Particle, Label: "Particle"},

	{POS: model.Verb, ConjugationType: godan, Label: "Godan Verb"},
	{POS: model.Verb, ConjugationType: ichidan, Label: "Ichidan Verb"},
	{POS: model.Verb, ConjugationType: suru, Label: "Suru Verb"},
	{POS: model.Verb, ConjugationType: kuru, Label: "Kuru Verb"},
	{POS: model.Verb, Label: "Verb"},

	{POS: model.BoundAuxiliary, Label: "Bound Auxiliary"},
	{POS: model.Adjective, Label: "I-Adjective"},
	{POS: model.Adverb, Label: "Adverb"},
	{POS: model.Prefix, Label: "Prefix"},
	{POS: model.PrenounAdjectival, Label: "Pre-noun Adjectival"},
	{POS: model.Symbol, Label: "Symbol"},
	{POS: model.Filler, Label: "Filler"},
}

// form maps a conjugation form (IPADIC or English) to its qualifier.
type form struct {
	prefixes []string
	label    string
}

var forms = []form{
	{[]string{"基本形", "basic form", "basic"}, "Basic Form"},
	{[]string{"連用", "continuing form", "continuative form", "continuing", "continuative"}, "Continuing Form"},
	{[]string{"未然", "imperfective form", "irrealis"}, "Imperfective Form"},
	{[]string{"仮定", "hypothetical form", "conditional form"}, "Hypothetical Form"},
	{[]string{"命令", "imperative form", "imperative"}, "Imperative Form"},
	{[]string{"連体", "attributive form"}, "Attributive Form"},
}
