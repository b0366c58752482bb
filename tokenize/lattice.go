package tokenize

import (
	"japaneseannotate/dictionary"
	"japaneseannotate/model"
)

// node is one candidate morpheme spanning [start, end). cost is the best
// total cost of any path from the beginning of the text through the node.
type node struct {
	start, end int
	entry      *model.LexiconEntry
	unknown    bool
	cost       int
	prev       *node
}

// lattice indexes nodes by end offset. It lives for a single Tokenize call.
type lattice struct {
	bos   *node
	endAt [][]*node
}

func newLattice(n int) *lattice {
	l := &lattice{bos: &node{}, endAt: make([][]*node, n+1)}
	l.endAt[0] = []*node{l.bos}
	return l
}

func (l *lattice) reachable(p int) bool {
	return len(l.endAt[p]) > 0
}

// add links a node for e over [start, end) to its cheapest predecessor.
// Nodes are added in increasing start order, so every predecessor ending
// at start is already final.
func (l *lattice) add(start, end int, e *model.LexiconEntry, unknown bool, lex *dictionary.Lexicon) {
	nd := &node{start: start, end: end, entry: e, unknown: unknown}
	var best *node
	bestCost := 0
	for _, prev := range l.endAt[start] {
		c := prev.cost + lex.Connection(prev.entryOrNil(), e)
		if best == nil || c < bestCost || (c == bestCost && prefer(prev, best)) {
			best, bestCost = prev, c
		}
	}
	nd.prev = best
	nd.cost = bestCost + e.Cost
	l.endAt[end] = append(l.endAt[end], nd)
}

// best returns the minimum-cost path through the whole text, BOS excluded.
func (l *lattice) best(lex *dictionary.Lexicon) []*node {
	last := l.endAt[len(l.endAt)-1]
	var best *node
	bestCost := 0
	for _, nd := range last {
		c := nd.cost + lex.Connection(nd.entry, nil)
		if best == nil || c < bestCost || (c == bestCost && prefer(nd, best)) {
			best, bestCost = nd, c
		}
	}
	var path []*node
	for nd := best; nd != nil && nd != l.bos; nd = nd.prev {
		path = append(path, nd)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (n *node) entryOrNil() *model.LexiconEntry {
	if n.start == 0 && n.end == 0 {
		return nil
	}
	return n.entry
}

// prefer breaks a cost tie between two paths ending at the same offset:
// at the first offset where they diverge, the longer span wins. Only the
// part of the two chains after their last shared node is walked.
func prefer(a, b *node) bool {
	var ea, eb []int
	for a != b {
		switch {
		case a.end > b.end:
			ea = append(ea, a.end)
			a = a.prev
		case b.end > a.end:
			eb = append(eb, b.end)
			b = b.prev
		default:
			ea = append(ea, a.end)
			eb = append(eb, b.end)
			a, b = a.prev, b.prev
		}
	}
	// ea and eb hold the diverging suffixes, latest offset first
	for i, j := len(ea)-1, len(eb)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if ea[i] != eb[j] {
			return ea[i] > eb[j]
		}
	}
	return false
}
