package render

import (
	"strings"

	"japaneseannotate/kana"
	"japaneseannotate/lookup"
	"japaneseannotate/model"
)

// Row is one line of the morphology breakdown.
type Row struct {
	Surface   string `json:"surface"`
	BasicForm string `json:"basic_form"`
	Label     string `json:"label"`
	Reading   string `json:"reading"`
	Link      string `json:"link"`
	Detail    string `json:"detail,omitempty"`
}

// TableOptions controls row construction.
type TableOptions struct {
	Script   kana.Script
	LinkBase string
}

// Table builds one row per token. classes[i] must be the classification of
// tokens[i]; a short classes slice leaves the remaining labels as "Other".
func Table(tokens []model.Token, classes []model.Classification, opts TableOptions) []Row {
	rows := make([]Row, 0, len(tokens))
	for i, tk := range tokens {
		c := model.Classification{Label: model.Other.String()}
		if i < len(classes) {
			c = classes[i]
		}
		reading := tk.Pronunciation
		if reading == "" {
			reading = tk.Reading
		}
		base := tk.BaseForm
		if base == "" {
			base = tk.Surface
		}
		rows = append(rows, Row{
			Surface:   tk.Surface,
			BasicForm: base,
			Label:     c.Display(),
			Reading:   kana.Convert(reading, opts.Script),
			Link:      lookup.Link(opts.LinkBase, tk.Surface),
			Detail:    detail(tk, c),
		})
	}
	return rows
}

func detail(tk model.Token, c model.Classification) string {
	parts := append([]string(nil), c.Remaining...)
	if tk.Conjugation != "" {
		parts = append(parts, tk.Conjugation)
	}
	return strings.Join(parts, ", ")
}

var cell = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// Markdown renders rows as a markdown table. Rows whose surface is only
// whitespace are skipped. details adds a column with the unconsumed
// sub-tags and auxiliary conjugation.
func Markdown(rows []Row, details bool) string {
	var b strings.Builder
	b.WriteString("Basic Form | Type | Reading | Jisho")
	if details {
		b.WriteString(" | Details")
	}
	b.WriteString("\n----|----|----|----")
	if details {
		b.WriteString("|----")
	}
	b.WriteString("\n")
	for _, r := range rows {
		if strings.TrimSpace(r.Surface) == "" {
			continue
		}
		b.WriteString(cell.Replace(r.BasicForm))
		b.WriteString(" | ")
		b.WriteString(cell.Replace(r.Label))
		b.WriteString(" | ")
		b.WriteString(cell.Replace(r.Reading))
		b.WriteString(" | [")
		b.WriteString(strings.NewReplacer("[", `\[`, "]", `\]`).Replace(cell.Replace(r.Surface)))
		b.WriteString("](")
		b.WriteString(r.Link)
		b.WriteString(")")
		if details {
			b.WriteString(" | ")
			b.WriteString(cell.Replace(r.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
