package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"japaneseannotate/model"
)

// ErrEmpty is returned when a lexicon asset holds no usable entries.
var ErrEmpty = errors.New("lexicon has no entries")

// LoadError reports a dictionary asset that could not be loaded. It keeps
// the path so callers can decide whether to retry with another asset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dictionary %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// index is the storage behind a Lexicon.
type index interface {
	prefix(s string) []*model.LexiconEntry
	exact(s string) []*model.LexiconEntry
	connection(prev, next *model.LexiconEntry) int
	size() int
}

// Lexicon is an immutable dictionary of morphological entries. All methods
// are safe for concurrent use; nothing can be written after loading.
type Lexicon struct {
	name string
	idx  index
}

// Name identifies the asset the lexicon was loaded from.
func (l *Lexicon) Name() string { return l.name }

// Len returns the number of entries.
func (l *Lexicon) Len() int { return l.idx.size() }

// Candidates returns every entry whose surface form is a prefix of s,
// ordered by ascending cost. Equal costs put the longer surface first.
func (l *Lexicon) Candidates(s string) []*model.LexiconEntry {
	if s == "" {
		return nil
	}
	out := l.idx.prefix(s)
	sortCandidates(out)
	return out
}

// Lookup returns the entries whose surface form is exactly s.
func (l *Lexicon) Lookup(s string) []*model.LexiconEntry {
	if s == "" {
		return nil
	}
	out := l.idx.exact(s)
	sortCandidates(out)
	return out
}

// Connection returns the transition cost between two adjacent entries. A
// nil prev stands for the beginning of the text, a nil next for its end.
func (l *Lexicon) Connection(prev, next *model.LexiconEntry) int {
	return l.idx.connection(prev, next)
}

func sortCandidates(es []*model.LexiconEntry) {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].Cost != es[j].Cost {
			return es[i].Cost < es[j].Cost
		}
		return len(es[i].Surface) > len(es[j].Surface)
	})
}

// New builds an in-memory lexicon from entries using the given POS
// connection table (DefaultConnections when nil).
func New(name string, entries []model.LexiconEntry, conn *ConnectionTable) (*Lexicon, error) {
	if conn == nil {
		conn = DefaultConnections()
	}
	t := &tableIndex{entries: make(map[string][]*model.LexiconEntry), conn: conn}
	for i := range entries {
		e := entries[i]
		if e.Surface == "" || !utf8.ValidString(e.Surface) {
			return nil, fmt.Errorf("entry %d: invalid surface %q", i, e.Surface)
		}
		t.add(&e)
	}
	if t.n == 0 {
		return nil, ErrEmpty
	}
	return &Lexicon{name: name, idx: t}, nil
}

// tableIndex keys entries by surface; prefix search probes every rune
// boundary up to the longest surface.
type tableIndex struct {
	entries map[string][]*model.LexiconEntry
	maxLen  int
	n       int
	conn    *ConnectionTable
}

func (t *tableIndex) add(e *model.LexiconEntry) {
	t.entries[e.Surface] = append(t.entries[e.Surface], e)
	if len(e.Surface) > t.maxLen {
		t.maxLen = len(e.Surface)
	}
	t.n++
}

func (t *tableIndex) prefix(s string) []*model.LexiconEntry {
	var out []*model.LexiconEntry
	for i, r := range s {
		end := i + utf8.RuneLen(r)
		if r == utf8.RuneError {
			break
		}
		if end > t.maxLen {
			break
		}
		out = append(out, t.entries[s[:end]]...)
	}
	return out
}

func (t *tableIndex) exact(s string) []*model.LexiconEntry {
	return append([]*model.LexiconEntry(nil), t.entries[s]...)
}

func (t *tableIndex) connection(prev, next *model.LexiconEntry) int {
	p, n := Boundary, Boundary
	if prev != nil {
		p = prev.POS
	}
	if next != nil {
		n = next.POS
	}
	return t.conn.Cost(p, n)
}

func (t *tableIndex) size() int { return t.n }
