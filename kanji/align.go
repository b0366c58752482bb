package kanji

import (
	"sort"
	"strings"

	"japaneseannotate/kana"
)

// Pair is one kanji and the part of the reading aligned to it.
type Pair struct {
	Kanji   string
	Reading string
}

// Align splits reading across the kanji of run, one Pair per rune, using
// kanjidic2 readings. run is expected to contain only kanji; reading may be
// in either kana script. Longer readings are tried first; when no listed
// reading fits the final kanji, it takes whatever reading is left. ok is
// false when no alignment covers the whole reading.
func (r *Readings) Align(run, reading string) ([]Pair, bool) {
	if r == nil || run == "" {
		return nil, false
	}
	runes := []rune(run)
	target := kana.ToHiragana(reading)
	pairs := make([]Pair, len(runes))
	if !r.align(runes, 0, target, pairs) {
		return nil, false
	}
	return pairs, true
}

func (r *Readings) align(runes []rune, i int, rest string, pairs []Pair) bool {
	if i == len(runes) {
		return rest == ""
	}
	k := runes[i]
	var cands []string
	for _, raw := range r.Get(k) {
		cands = append(cands, Variants(raw, i == 0)...)
	}
	if k == '々' && i > 0 {
		prev := pairs[i-1].Reading
		cands = append(cands, prev)
		cands = append(cands, RendakuForms(prev)...)
	}
	sort.SliceStable(cands, func(a, b int) bool { return len(cands[a]) > len(cands[b]) })
	for _, c := range cands {
		if c == "" || !strings.HasPrefix(rest, c) {
			continue
		}
		pairs[i] = Pair{Kanji: string(k), Reading: c}
		if r.align(runes, i+1, rest[len(c):], pairs) {
			return true
		}
	}
	if i == len(runes)-1 && rest != "" {
		pairs[i] = Pair{Kanji: string(k), Reading: rest}
		return true
	}
	return false
}
