package classify

import (
	"strings"

	"japaneseannotate/model"
)

// Classifier labels tokens from an ordered rule table. It is stateless
// after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules. The slice is copied.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier { return New(DefaultRules) }

// Classify returns the display category of tok. It never fails: tokens no
// rule matches are labelled with their raw tag, and tokens without any tag
// with the POS name.
func (c *Classifier) Classify(tok model.Token) model.Classification {
	e := tok.Entry
	if e == nil {
		return model.Classification{Label: model.Other.String()}
	}
	sub := e.SubTags
	for _, r := range c.rules {
		consumed, ok := r.match(e)
		if !ok {
			continue
		}
		return model.Classification{
			Label:     r.Label,
			Qualifier: qualifier(e),
			Remaining: remaining(sub, consumed),
		}
	}
	label := e.RawPOS
	if label == "" {
		label = e.POS.String()
	}
	return model.Classification{Label: label, Remaining: remaining(sub, 0)}
}

// match reports whether r applies to e and how many leading sub-tags it
// consumes.
func (r Rule) match(e *model.LexiconEntry) (int, bool) {
	if r.POS != e.POS {
		return 0, false
	}
	if e.POS == model.Other {
		return 0, false
	}
	n := 0
	if r.Sub != "" {
		if len(e.SubTags) < 1 || e.SubTags[0] != r.Sub {
			return 0, false
		}
		n = 1
	}
	if r.SubSub != "" {
		if len(e.SubTags) < 2 || e.SubTags[1] != r.SubSub {
			return 0, false
		}
		n = 2
	}
	if len(r.ConjugationType) > 0 && !hasPrefix(e.ConjugationType, r.ConjugationType) {
		return 0, false
	}
	return n, true
}

func remaining(sub []string, consumed int) []string {
	if consumed >= len(sub) {
		return nil
	}
	return append([]string(nil), sub[consumed:]...)
}

// qualifier renders the conjugation form of inflecting categories.
func qualifier(e *model.LexiconEntry) string {
	switch e.POS {
	case model.Verb, model.BoundAuxiliary, model.Adjective:
	default:
		return ""
	}
	f := strings.TrimSpace(e.ConjugationForm)
	if f == "" {
		return ""
	}
	for _, fm := range forms {
		if hasPrefix(f, fm.prefixes) {
			return "- " + fm.label
		}
	}
	return "- " + f
}

func hasPrefix(s string, prefixes []string) bool {
	ls := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(ls, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
