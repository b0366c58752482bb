package model

import "strings"

// POS is the coarse part-of-speech category of a lexicon entry.
type POS int

const (
	Other POS = iota
	Noun
	Particle
	Symbol
	Filler
	BoundAuxiliary
	Verb
	Adjective
	Adverb
	Prefix
	PrenounAdjectival

	// NumPOS is the number of POS categories.
	NumPOS
)

var posNames = [NumPOS]string{
	Other:             "Other",
	Noun:              "Noun",
	Particle:          "Particle",
	Symbol:            "Symbol",
	Filler:            "Filler",
	BoundAuxiliary:    "BoundAuxiliary",
	Verb:              "Verb",
	Adjective:         "Adjective",
	Adverb:            "Adverb",
	Prefix:            "Prefix",
	PrenounAdjectival: "PrenounAdjectival",
}

// rawPOS maps IPADIC / UniDic primary tags onto categories.
var rawPOS = map[string]POS{
	"名詞":   Noun,
	"助詞":   Particle,
	"記号":   Symbol,
	"補助記号": Symbol,
	"フィラー": Filler,
	"助動詞":  BoundAuxiliary,
	"動詞":   Verb,
	"形容詞":  Adjective,
	"副詞":   Adverb,
	"接頭詞":  Prefix,
	"接頭辞":  Prefix,
	"連体詞":  PrenounAdjectival,
}

func (p POS) String() string {
	if p < 0 || p >= NumPOS {
		return "Other"
	}
	return posNames[p]
}

// ParsePOS resolves an English category name or a Japanese dictionary tag.
// The second result is false when the tag is not one of the known categories.
func ParsePOS(tag string) (POS, bool) {
	if p, ok := rawPOS[tag]; ok {
		return p, true
	}
	norm := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(tag))
	for i, name := range posNames {
		if i == int(Other) {
			continue
		}
		if strings.ToLower(name) == norm {
			return POS(i), true
		}
	}
	return Other, false
}

// LexiconEntry is one candidate morpheme of the lexicon. Entries are
// immutable once the lexicon is loaded and are shared between tokens.
type LexiconEntry struct {
	Surface         string   `json:"surface"`
	Reading         string   `json:"reading,omitempty"`
	Pronunciation   string   `json:"pronunciation,omitempty"`
	POS             POS      `json:"pos"`
	RawPOS          string   `json:"raw_pos,omitempty"`
	SubTags         []string `json:"sub_tags,omitempty"`
	ConjugationType string   `json:"conjugation_type,omitempty"`
	ConjugationForm string   `json:"conjugation_form,omitempty"`
	BaseForm        string   `json:"base_form,omitempty"`
	Cost            int      `json:"cost"`
	LeftID          int      `json:"left_id,omitempty"`
	RightID         int      `json:"right_id,omitempty"`
}

// Token represents a token / morpheme produced by the tokenizer.
// Start and End are byte offsets into the tokenized text.
type Token struct {
	Surface       string        `json:"surface"`
	Start         int           `json:"start"`
	End           int           `json:"end"`
	Entry         *LexiconEntry `json:"entry,omitempty"`
	Reading       string        `json:"reading,omitempty"`
	Pronunciation string        `json:"pronunciation,omitempty"`
	BaseForm      string        `json:"base_form,omitempty"`
	Unknown       bool          `json:"unknown,omitempty"`
	Auxiliaries   []Token       `json:"auxiliaries,omitempty"`
	Conjugation   string        `json:"conjugation,omitempty"`
}

// POS returns the category of the resolved entry.
func (t Token) POS() POS {
	if t.Entry == nil {
		return Other
	}
	return t.Entry.POS
}

// Classification is the display category derived from a token.
type Classification struct {
	Label     string   `json:"label"`
	Qualifier string   `json:"qualifier,omitempty"`
	Remaining []string `json:"remaining,omitempty"`
}

// Display joins the label and its qualifier, e.g. "Godan Verb - Basic Form".
func (c Classification) Display() string {
	if c.Qualifier == "" {
		return c.Label
	}
	return c.Label + " " + c.Qualifier
}
