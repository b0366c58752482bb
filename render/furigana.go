package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"japaneseannotate/kana"
	"japaneseannotate/kanji"
	"japaneseannotate/model"
)

// Mode selects how readings are written into the text.
type Mode int

const (
	// Ruby writes <ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>.
	Ruby Mode = iota
	// Okurigana writes 漢字(かんじ).
	Okurigana
	// Bracket writes [漢字|かんじ].
	Bracket
)

func (m Mode) String() string {
	switch m {
	case Okurigana:
		return "okurigana"
	case Bracket:
		return "bracket"
	}
	return "ruby"
}

// ParseMode accepts "ruby" (or "furigana"), "okurigana" and "bracket".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ruby", "furigana":
		return Ruby, nil
	case "okurigana":
		return Okurigana, nil
	case "bracket":
		return Bracket, nil
	}
	return Ruby, fmt.Errorf("unknown furigana mode %q", s)
}

// Options controls furigana rendering.
type Options struct {
	Mode   Mode
	Script kana.Script
	// Kanji, when set, splits multi-kanji runs into one annotation per
	// kanji if the readings align completely.
	Kanji *kanji.Readings
}

// Segment is a piece of text and the reading printed over it. Reading is
// empty for text that needs no annotation.
type Segment struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
}

// Segments aligns each token's reading with the kanji it contains. Kana
// inside a token (okurigana) is left unannotated when it can be matched in
// the reading; otherwise the whole token carries the reading.
func Segments(tokens []model.Token, opts Options) []Segment {
	var out []Segment
	for _, tk := range tokens {
		if !kana.ContainsKanji(tk.Surface) || tk.Reading == "" ||
			kana.ToHiragana(tk.Reading) == kana.ToHiragana(tk.Surface) {
			out = append(out, Segment{Text: tk.Surface})
			continue
		}
		for _, s := range split(tk.Surface, tk.Reading, opts.Kanji) {
			if s.Reading != "" {
				s.Reading = kana.Convert(s.Reading, opts.Script)
			}
			out = append(out, s)
		}
	}
	return out
}

type run struct {
	text  string
	kanji bool
}

func runs(s string) []run {
	var out []run
	for _, r := range s {
		k := kana.IsKanji(r)
		if n := len(out); n > 0 && out[n-1].kanji == k {
			out[n-1].text += string(r)
			continue
		}
		out = append(out, run{text: string(r), kanji: k})
	}
	return out
}

func split(surface, reading string, kr *kanji.Readings) []Segment {
	rs := runs(surface)
	hira := kana.ToHiragana(reading)
	var pat strings.Builder
	pat.WriteString("^")
	for _, r := range rs {
		if r.kanji {
			pat.WriteString("(.+?)")
		} else {
			pat.WriteString(regexp.QuoteMeta(kana.ToHiragana(r.text)))
		}
	}
	pat.WriteString("$")
	re, err := regexp.Compile(pat.String())
	if err != nil {
		return []Segment{{Text: surface, Reading: hira}}
	}
	m := re.FindStringSubmatch(hira)
	if m == nil {
		return []Segment{{Text: surface, Reading: hira}}
	}
	var out []Segment
	g := 1
	for _, r := range rs {
		if !r.kanji {
			out = append(out, Segment{Text: r.text})
			continue
		}
		out = append(out, perKanji(r.text, m[g], kr)...)
		g++
	}
	return out
}

func perKanji(run, reading string, kr *kanji.Readings) []Segment {
	if kr != nil && len([]rune(run)) > 1 {
		if pairs, ok := kr.Align(run, reading); ok {
			out := make([]Segment, len(pairs))
			for i, p := range pairs {
				out[i] = Segment{Text: p.Kanji, Reading: p.Reading}
			}
			return out
		}
	}
	return []Segment{{Text: run, Reading: reading}}
}

// Format writes segments in the given mode. Ruby output is HTML: all text
// is escaped, so Strip can tell its own markup from markup in the input.
func Format(segs []Segment, mode Mode) string {
	var b strings.Builder
	for _, s := range segs {
		if mode == Ruby {
			s.Text, s.Reading = html.EscapeString(s.Text), html.EscapeString(s.Reading)
		}
		if s.Reading == "" {
			b.WriteString(s.Text)
			continue
		}
		switch mode {
		case Okurigana:
			b.WriteString(s.Text + "(" + s.Reading + ")")
		case Bracket:
			b.WriteString("[" + s.Text + "|" + s.Reading + "]")
		default:
			b.WriteString("<ruby>" + s.Text + "<rp>(</rp><rt>" + s.Reading + "</rt><rp>)</rp></ruby>")
		}
	}
	return b.String()
}

// Plain concatenates segment text, dropping every reading.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Furigana renders tokens with inline reading annotations.
func Furigana(tokens []model.Token, opts Options) string {
	return Format(Segments(tokens, opts), opts.Mode)
}

var (
	rubyReading = regexp.MustCompile(`<rp>\(</rp><rt>[^<]*</rt><rp>\)</rp>`)
	rubyTag     = regexp.MustCompile(`</?ruby>`)
)

// Strip removes ruby annotations written by Format in Ruby mode and
// unescapes the remaining text.
func Strip(s string) string {
	return html.UnescapeString(rubyTag.ReplaceAllString(rubyReading.ReplaceAllString(s, ""), ""))
}
