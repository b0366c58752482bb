package dictionary

import "strings"

// subTags maps IPADIC / UniDic refinement tags to the slugs the classifier
// matches on. Tags not listed are kept verbatim.
var subTags = map[string]string{
	"一般":     "general",
	"形容動詞語幹": "adjectival-noun-stem",
	"普通名詞":   "common",
	"形状詞可能":  "adjectival-noun-possible",
	"固有名詞":   "proper",
	"代名詞":    "pronoun",
	"数":      "numeral",
	"数詞":     "numeral",
	"サ変接続":   "suru-verb-stem",
	"サ変可能":   "suru-verb-stem",
	"副詞可能":   "adverbial-possible",
	"係助詞":    "binding",
	"格助詞":    "case-marking",
	"副助詞":    "adverbial",
	"接続助詞":   "conjunctive",
	"終助詞":    "sentence-final",
	"連体化":    "attributive",
	"準体助詞":   "nominalizing",
	"並立助詞":   "parallel",
	"自立":     "independent",
	"非自立":    "dependent",
	"非自立可能":  "dependent",
	"接尾":     "suffix",
	"句点":     "period",
	"読点":     "comma",
	"空白":     "space",
	"括弧開":    "open-bracket",
	"括弧閉":    "close-bracket",
	"人名":     "person",
	"地域":     "region",
	"地名":     "region",
	"組織":     "organization",
	"姓":      "surname",
	"名":      "given-name",
	"国":      "country",
	"特殊":     "special",
	"引用":     "quotation",
	"連語":     "compound",
}

// normalizeSubTags drops "*" placeholders, translates known tags and keeps
// at most three refinements.
func normalizeSubTags(raw []string) []string {
	var out []string
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || t == "*" {
			continue
		}
		if slug, ok := subTags[t]; ok {
			t = slug
		}
		out = append(out, t)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// field returns "" for the "*" placeholder.
func field(s string) string {
	s = strings.TrimSpace(s)
	if s == "*" {
		return ""
	}
	return s
}
