package analyze

import "japaneseannotate/model"

type ClauseType string

const (
	MainClause        ClauseType = "main"
	SubordinateClause ClauseType = "subordinate"
)

// Clause is a run of tokens between clause punctuation. Start and End are
// token indices, End exclusive and not including the punctuation itself.
type Clause struct {
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Type       ClauseType `json:"type"`
	Connective string     `json:"connective,omitempty"`
}

var connectives = map[string]bool{
	"が":   true,
	"ので":  true,
	"から":  true,
	"けど":  true,
	"けれど": true,
	"そして": true,
	"と":   true,
	"て":   true,
	"で":   true,
}

// Clauses splits tokens at "。", "、" and their ASCII-width counterparts. A
// clause ending in a connective particle is subordinate to the next one.
func Clauses(tokens []model.Token) []Clause {
	var out []Clause
	start := 0
	closeAt := func(end int) {
		c := Clause{Start: start, End: end, Type: MainClause}
		if end > start {
			if prev := tokens[end-1].Surface; connectives[prev] {
				c.Connective = prev
				c.Type = SubordinateClause
			}
		}
		out = append(out, c)
	}
	for i, tk := range tokens {
		switch tk.Surface {
		case "。", "、", "．", "，":
			closeAt(i)
			start = i + 1
		}
	}
	if start < len(tokens) {
		closeAt(len(tokens))
	}
	return out
}
