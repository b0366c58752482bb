package tokenize

import (
	"unicode/utf8"

	"golang.org/x/text/width"

	"japaneseannotate/dictionary"
	"japaneseannotate/kana"
	"japaneseannotate/model"
)

// UnknownTag is the raw tag of tokens no lexicon entry matched.
const UnknownTag = "unknown"

// DefaultUnknownCost is the cost of a synthesized single-character edge.
const DefaultUnknownCost = 10000

// Tokenizer segments text against a Lexicon. It holds no per-call state and
// may be shared by any number of goroutines.
type Tokenizer struct {
	lex         *dictionary.Lexicon
	unknownCost int
	foldWidth   bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithUnknownCost sets the cost of unknown-character edges.
func WithUnknownCost(c int) Option {
	return func(t *Tokenizer) { t.unknownCost = c }
}

// WithWidthFolding widens half-width katakana and symbols before lexicon
// lookup. Token offsets and surfaces still refer to the original text.
func WithWidthFolding() Option {
	return func(t *Tokenizer) { t.foldWidth = true }
}

// New returns a tokenizer over lex.
func New(lex *dictionary.Lexicon, opts ...Option) *Tokenizer {
	t := &Tokenizer{lex: lex, unknownCost: DefaultUnknownCost}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Lexicon returns the lexicon the tokenizer reads from.
func (t *Tokenizer) Lexicon() *dictionary.Lexicon { return t.lex }

// Tokenize returns the minimum-cost segmentation of text. The surfaces of
// the result concatenate back to text exactly; it never fails.
func (t *Tokenizer) Tokenize(text string) []model.Token {
	if text == "" {
		return nil
	}
	src, toSrc, toText := text, []int(nil), []int(nil)
	if t.foldWidth {
		src, toSrc, toText = fold(text)
	}
	l := newLattice(len(text))
	for p := 0; p < len(text); {
		size, valid := step(text, p)
		if l.reachable(p) {
			if !valid {
				l.add(p, p+size, t.unknown(text[p:p+size]), true, t.lex)
			} else {
				q := p
				if toSrc != nil {
					q = toSrc[p]
				}
				cands := t.lex.Candidates(src[q:])
				for _, e := range cands {
					end := q + len(e.Surface)
					if toText != nil {
						end = toText[end]
					}
					l.add(p, end, e, false, t.lex)
				}
				if len(cands) == 0 {
					l.add(p, p+size, t.unknown(text[p:p+size]), true, t.lex)
				}
			}
		}
		p += size
	}
	path := l.best(t.lex)
	out := make([]model.Token, 0, len(path))
	for _, nd := range path {
		out = append(out, newToken(text, nd))
	}
	return out
}

func (t *Tokenizer) unknown(surface string) *model.LexiconEntry {
	return &model.LexiconEntry{
		Surface: surface,
		POS:     model.Other,
		RawPOS:  UnknownTag,
		Cost:    t.unknownCost,
	}
}

// step returns the width of the unit starting at p. A run of bytes that do
// not decode as UTF-8 is one invalid unit.
func step(s string, p int) (int, bool) {
	r, size := utf8.DecodeRuneInString(s[p:])
	if r != utf8.RuneError || size > 1 {
		return size, true
	}
	q := p + 1
	for q < len(s) {
		r, size = utf8.DecodeRuneInString(s[q:])
		if r != utf8.RuneError || size > 1 {
			break
		}
		q++
	}
	return q - p, false
}

// fold widens half-width runes of text and returns the folded string with
// byte offset maps in both directions, defined on rune boundaries.
func fold(text string) (string, []int, []int) {
	buf := make([]byte, 0, len(text)+len(text)/2)
	toSrc := make([]int, len(text)+1)
	var toText []int
	for p := 0; p < len(text); {
		size, valid := step(text, p)
		toSrc[p] = len(buf)
		for len(toText) <= len(buf) {
			toText = append(toText, 0)
		}
		toText[len(buf)] = p
		if !valid {
			buf = append(buf, text[p:p+size]...)
			p += size
			continue
		}
		r, _ := utf8.DecodeRuneInString(text[p:])
		if w := width.LookupRune(r); w.Kind() == width.EastAsianHalfwidth && w.Wide() != 0 {
			r = w.Wide()
		}
		buf = utf8.AppendRune(buf, r)
		p += size
	}
	toSrc[len(text)] = len(buf)
	for len(toText) <= len(buf) {
		toText = append(toText, 0)
	}
	toText[len(buf)] = len(text)
	return string(buf), toSrc, toText
}

func newToken(text string, nd *node) model.Token {
	surface := text[nd.start:nd.end]
	e := nd.entry
	reading := e.Reading
	if reading == "" && kana.AllKana(surface) {
		reading = surface
	}
	pron := e.Pronunciation
	if pron == "" {
		pron = reading
	}
	base := e.BaseForm
	if base == "" {
		base = surface
	}
	return model.Token{
		Surface:       surface,
		Start:         nd.start,
		End:           nd.end,
		Entry:         e,
		Reading:       reading,
		Pronunciation: pron,
		BaseForm:      base,
		Unknown:       nd.unknown,
	}
}
