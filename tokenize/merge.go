package tokenize

import (
	"strings"

	"japaneseannotate/model"
)

// MergeAuxiliaries scans tokens and merges verb or adjective + auxiliary
// sequences into a single token. Followers are bound auxiliaries and
// dependent or suffix verbs; they are kept in Auxiliaries and their base
// forms decide the Conjugation label.
func MergeAuxiliaries(tokens []model.Token) []model.Token {
	var out []model.Token
	i := 0
	for i < len(tokens) {
		tk := tokens[i]
		if p := tk.POS(); p != model.Verb && p != model.Adjective {
			out = append(out, tk)
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && isFollower(tokens[j]) {
			j++
		}
		if j == i+1 {
			out = append(out, tk)
			i++
			continue
		}
		auxs := append([]model.Token(nil), tokens[i+1:j]...)
		merged := tk
		var surface, reading, pron strings.Builder
		surface.WriteString(tk.Surface)
		reading.WriteString(tk.Reading)
		pron.WriteString(tk.Pronunciation)
		lemmas := make([]string, 0, len(auxs))
		for _, aux := range auxs {
			surface.WriteString(aux.Surface)
			reading.WriteString(aux.Reading)
			pron.WriteString(aux.Pronunciation)
			lemmas = append(lemmas, aux.BaseForm)
		}
		merged.Surface = surface.String()
		merged.Reading = reading.String()
		merged.Pronunciation = pron.String()
		merged.End = auxs[len(auxs)-1].End
		merged.Auxiliaries = auxs
		merged.Conjugation = conjugationLabel(lemmas)
		out = append(out, merged)
		i = j
	}
	return out
}

func isFollower(t model.Token) bool {
	switch t.POS() {
	case model.BoundAuxiliary:
		return true
	case model.Verb:
		sub := t.Entry.SubTags
		return len(sub) > 0 && (sub[0] == "dependent" || sub[0] == "suffix")
	}
	return false
}

// conjugationLabel maps auxiliary lemma sequences to a human-readable conjugation label.
func conjugationLabel(auxs []string) string {
	switch strings.Join(auxs, "+") {
	case "ます":
		return "polite"
	case "た", "だ":
		return "past"
	case "ます+た":
		return "polite past"
	case "ない", "ぬ", "ん":
		return "negative"
	case "ます+ん", "ます+ぬ":
		return "polite negative"
	case "れる", "られる":
		return "passive"
	case "せる", "させる":
		return "causative"
	case "たい":
		return "desiderative"
	}
	return ""
}
