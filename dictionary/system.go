package dictionary

import (
	"github.com/ikawaha/kagome-dict/dict"

	"japaneseannotate/model"
)

// FromSystem wraps a kagome system dictionary. Candidate lookup goes
// through the dictionary's prefix index and transitions use its connection
// matrix. Features are read in IPADIC order:
// pos1..pos4 from the POS table, then ctype, cform, base, reading, pron.
func FromSystem(name string, d *dict.Dict) *Lexicon {
	return &Lexicon{name: name, idx: &systemIndex{d: d}}
}

type systemIndex struct {
	d *dict.Dict
}

func (s *systemIndex) prefix(in string) []*model.LexiconEntry {
	lens, ids := s.d.Index.CommonPrefixSearch(in)
	var out []*model.LexiconEntry
	for i, l := range lens {
		for _, id := range ids[i] {
			out = append(out, s.entry(id, in[:l]))
		}
	}
	return out
}

func (s *systemIndex) exact(in string) []*model.LexiconEntry {
	var out []*model.LexiconEntry
	for _, id := range s.d.Index.Search(in) {
		out = append(out, s.entry(id, in))
	}
	return out
}

// entry materializes morph id. Entries are built per lookup, never shared
// mutable state.
func (s *systemIndex) entry(id int, surface string) *model.LexiconEntry {
	m := s.d.Morphs[id]
	var pos []string
	if id < len(s.d.POSTable.POSs) {
		for _, p := range s.d.POSTable.POSs[id] {
			pos = append(pos, s.d.POSTable.NameList[p])
		}
	}
	var contents []string
	if id < len(s.d.Contents) {
		contents = s.d.Contents[id]
	}
	at := func(xs []string, i int) string {
		if i < len(xs) {
			return xs[i]
		}
		return ""
	}
	e := NewEntry(surface, field(at(contents, 3)), field(at(contents, 4)), at(pos, 0), tail(pos),
		at(contents, 0), at(contents, 1), at(contents, 2), int(m.Weight))
	e.LeftID, e.RightID = int(m.LeftID), int(m.RightID)
	return &e
}

func tail(xs []string) []string {
	if len(xs) < 2 {
		return nil
	}
	return xs[1:]
}

func (s *systemIndex) connection(prev, next *model.LexiconEntry) int {
	right, left := 0, 0
	if prev != nil {
		right = prev.RightID
	}
	if next != nil {
		left = next.LeftID
	}
	return int(s.d.Connection.At(right, left))
}

func (s *systemIndex) size() int { return len(s.d.Morphs) }
