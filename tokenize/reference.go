package tokenize

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"japaneseannotate/dictionary"
	"japaneseannotate/model"
)

// Reference segments text with the kagome tokenizer. It is used to
// cross-check Tokenizer output against an independent implementation.
type Reference struct {
	kg *tokenizer.Tokenizer
}

// NewReference builds a kagome tokenizer over the named bundled system
// dictionary, "ipa" or "uni".
func NewReference(system string) (*Reference, error) {
	var d *dict.Dict
	switch system {
	case "", "ipa":
		d = ipa.Dict()
	case "uni":
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown reference dictionary %q", system)
	}
	// omit BOS/EOS so only real morphemes come back
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome tokenizer: %w", err)
	}
	return &Reference{kg: kg}, nil
}

// Tokenize converts kagome tokens into model tokens with byte offsets.
func (r *Reference) Tokenize(text string) []model.Token {
	ktoks := r.kg.Tokenize(text)
	out := make([]model.Token, 0, len(ktoks))
	cursor := 0
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		start := cursor
		if i := strings.Index(text[cursor:], kt.Surface); i >= 0 {
			start = cursor + i
		}
		end := start + len(kt.Surface)
		cursor = end

		pos := kt.POS()
		primary := ""
		if len(pos) > 0 {
			primary = pos[0]
			pos = pos[1:]
		}
		lemma, _ := kt.BaseForm()
		reading, _ := kt.Reading()
		pron, _ := kt.Pronunciation()
		infType, _ := kt.InflectionalType()
		infForm, _ := kt.InflectionalForm()
		e := dictionary.NewEntry(kt.Surface, reading, pron, primary, pos, infType, infForm, lemma, 0)

		t := model.Token{
			Surface:       kt.Surface,
			Start:         start,
			End:           end,
			Entry:         &e,
			Reading:       e.Reading,
			Pronunciation: e.Pronunciation,
			BaseForm:      e.BaseForm,
			Unknown:       kt.Class == tokenizer.UNKNOWN,
		}
		if t.Pronunciation == "" {
			t.Pronunciation = t.Reading
		}
		if t.BaseForm == "" {
			t.BaseForm = kt.Surface
		}
		out = append(out, t)
	}
	return out
}

// Surfaces lists token surfaces in order.
func Surfaces(tokens []model.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Surface
	}
	return out
}
