package kanji

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"japaneseannotate/kana"
)

// Readings maps kanji to their on/kun readings as listed by kanjidic2.
// A Readings value is read-only after loading.
type Readings struct {
	m map[rune][]string
}

type kanjidic2Kanji struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// LoadKanjidic2 parses kanjidic2.xml and builds kanji→readings map
func LoadKanjidic2(path string) (*Readings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kanjidic2: %w", err)
	}
	defer f.Close()
	r, err := ParseKanjidic2(f)
	if err != nil {
		return nil, fmt.Errorf("parse kanjidic2 %s: %w", path, err)
	}
	zap.S().Infow("kanjidic2 loaded", "path", path, "kanji", r.Len())
	return r, nil
}

// ParseKanjidic2 reads kanjidic2 XML. Only <character> elements are
// decoded, so the surrounding wrapper and header are skipped.
func ParseKanjidic2(r io.Reader) (*Readings, error) {
	out := &Readings{m: make(map[rune][]string)}
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var k kanjidic2Kanji
		if err := d.DecodeElement(&k, &se); err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(k.Literal) != 1 {
			continue
		}
		var readings []string
		for _, group := range k.ReadingMeaning.RMGroup {
			for _, rd := range group.Reading {
				if rd.Type == "ja_on" || rd.Type == "ja_kun" {
					readings = append(readings, rd.Value)
				}
			}
		}
		kr, _ := utf8.DecodeRuneInString(k.Literal)
		out.m[kr] = readings
	}
	return out, nil
}

// NewReadings builds a Readings value from an in-memory table.
func NewReadings(m map[rune][]string) *Readings {
	cp := make(map[rune][]string, len(m))
	for k, v := range m {
		cp[k] = append([]string(nil), v...)
	}
	return &Readings{m: cp}
}

// Get returns the raw kanjidic2 readings for r.
func (r *Readings) Get(k rune) []string {
	if r == nil {
		return nil
	}
	return r.m[k]
}

// Len returns the number of kanji entries loaded
func (r *Readings) Len() int {
	if r == nil {
		return 0
	}
	return len(r.m)
}

// NormalizeReading removes the okurigana dot and affix dashes and converts
// katakana to hiragana, so "い.り" becomes "いり" and "カ" becomes "か".
func NormalizeReading(s string) string {
	s = strings.NewReplacer(".", "", "-", "").Replace(s)
	return kana.ToHiragana(strings.TrimSpace(s))
}

// Variants returns the hiragana forms a kanjidic2 reading can take inside a
// word: the full reading, the stem before the okurigana dot, and, when the
// kanji is not word-initial, voiced (rendaku) and geminated forms.
func Variants(raw string, initial bool) []string {
	var base []string
	add := func(list *[]string, v string) {
		if v == "" {
			return
		}
		for _, e := range *list {
			if e == v {
				return
			}
		}
		*list = append(*list, v)
	}
	add(&base, NormalizeReading(raw))
	if i := strings.IndexRune(raw, '.'); i >= 0 {
		add(&base, NormalizeReading(raw[:i]))
	}
	out := append([]string(nil), base...)
	for _, v := range base {
		if !initial {
			for _, rv := range RendakuForms(v) {
				add(&out, rv)
			}
		}
		add(&out, GeminateForm(v))
	}
	return out
}

var rendaku = map[rune][]rune{
	'か': {'が'}, 'き': {'ぎ'}, 'く': {'ぐ'}, 'け': {'げ'}, 'こ': {'ご'},
	'さ': {'ざ'}, 'し': {'じ'}, 'す': {'ず'}, 'せ': {'ぜ'}, 'そ': {'ぞ'},
	'た': {'だ'}, 'ち': {'ぢ', 'じ'}, 'つ': {'づ', 'ず'}, 'て': {'で'}, 'と': {'ど'},
	'は': {'ば', 'ぱ'}, 'ひ': {'び', 'ぴ'}, 'ふ': {'ぶ', 'ぷ'}, 'へ': {'べ', 'ぺ'}, 'ほ': {'ぼ', 'ぽ'},
}

// RendakuForms returns the voiced variants of a reading's first mora.
func RendakuForms(v string) []string {
	r, size := utf8.DecodeRuneInString(v)
	var out []string
	for _, voiced := range rendaku[r] {
		out = append(out, string(voiced)+v[size:])
	}
	return out
}

// GeminateForm replaces a final く/き/ち/つ with っ (学+校 → がっこう).
// It returns "" when the reading cannot geminate.
func GeminateForm(v string) string {
	r, size := utf8.DecodeLastRuneInString(v)
	switch r {
	case 'く', 'き', 'ち', 'つ':
		if len(v) == size {
			return ""
		}
		return v[:len(v)-size] + "っ"
	}
	return ""
}
