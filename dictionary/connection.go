package dictionary

import "japaneseannotate/model"

// Boundary is the pseudo category for the beginning and end of the text.
const Boundary = model.NumPOS

// ConnectionTable holds transition costs between POS categories for
// lexicons that carry no connection matrix of their own. Pairs that are not
// set cost zero.
type ConnectionTable struct {
	costs [model.NumPOS + 1][model.NumPOS + 1]int
}

// NewConnectionTable returns a table where every transition costs zero.
func NewConnectionTable() *ConnectionTable {
	return &ConnectionTable{}
}

// Set assigns the cost of moving from category prev to category next.
func (c *ConnectionTable) Set(prev, next model.POS, cost int) *ConnectionTable {
	c.costs[clampPOS(prev)][clampPOS(next)] = cost
	return c
}

// Cost returns the transition cost from prev to next.
func (c *ConnectionTable) Cost(prev, next model.POS) int {
	return c.costs[clampPOS(prev)][clampPOS(next)]
}

func clampPOS(p model.POS) model.POS {
	if p < 0 || p > Boundary {
		return model.Other
	}
	return p
}

// DefaultConnections is a coarse grammar of Japanese adjacency: particles
// and auxiliaries do not open a sentence, content words take particles,
// verbs and adjectives take auxiliaries.
func DefaultConnections() *ConnectionTable {
	c := NewConnectionTable()
	c.Set(Boundary, model.Particle, 800)
	c.Set(Boundary, model.BoundAuxiliary, 800)
	c.Set(model.Prefix, Boundary, 800)
	c.Set(model.Particle, model.Particle, 300)
	c.Set(model.BoundAuxiliary, model.Particle, 100)
	c.Set(model.Noun, model.Particle, -100)
	c.Set(model.Noun, model.Noun, 100)
	c.Set(model.Noun, model.BoundAuxiliary, -50)
	c.Set(model.Verb, model.BoundAuxiliary, -200)
	c.Set(model.Verb, model.Particle, -50)
	c.Set(model.Adjective, model.BoundAuxiliary, -100)
	c.Set(model.Adjective, model.Noun, -50)
	c.Set(model.PrenounAdjectival, model.Noun, -150)
	c.Set(model.Prefix, model.Noun, -200)
	c.Set(model.Adverb, model.Verb, -50)
	return c
}
