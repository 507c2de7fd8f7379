package concept

import (
	"fmt"
	"slices"
	"strings"
)

// Graph holds the concept collection with precomputed indices for
// relationship queries. Concepts are stored by value; mutations go through
// Replace so the graph and its callers cannot hold diverging copies.
type Graph struct {
	concepts   []Concept
	byID       map[string]*Concept
	dependents map[string][]string
}

// NewGraph constructs a graph from a slice of concepts.
// Duplicate IDs and self-referencing dependencies are construction errors.
// Cycles between distinct concepts are tolerated; dependencies feed
// question context only and never gate access.
func NewGraph(concepts []Concept) (*Graph, error) {
	g := &Graph{
		concepts:   slices.Clone(concepts),
		byID:       make(map[string]*Concept, len(concepts)),
		dependents: make(map[string][]string),
	}

	var errs []string
	for i := range g.concepts {
		c := &g.concepts[i]
		if _, dup := g.byID[c.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
			continue
		}
		g.byID[c.ID] = c
	}

	for i := range g.concepts {
		c := &g.concepts[i]
		for _, dep := range c.Dependencies {
			if dep == c.ID {
				errs = append(errs, fmt.Sprintf("concept %q depends on itself", c.ID))
				continue
			}
			g.dependents[dep] = append(g.dependents[dep], c.ID)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("concept graph construction failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return g, nil
}

// ByID returns a concept by ID, or an error if not found. Lookups never
// return a zero-value concept: operating on the wrong concept silently is
// worse than failing loudly.
func (g *Graph) ByID(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// All returns every concept in insertion order.
func (g *Graph) All() []Concept {
	return slices.Clone(g.concepts)
}

// Len returns the number of concepts in the graph.
func (g *Graph) Len() int {
	return len(g.concepts)
}

// RelatedTitles returns the titles of every concept that is either a
// prerequisite of the given concept or depends on it. Order is not
// guaranteed. Unknown dependency IDs are skipped: the extractor may emit
// references the learner's document never defined.
func (g *Graph) RelatedTitles(id string) []string {
	c, ok := g.byID[id]
	if !ok {
		return nil
	}

	var titles []string
	for _, dep := range c.Dependencies {
		if p, ok := g.byID[dep]; ok {
			titles = append(titles, p.Title)
		}
	}
	for _, depID := range g.dependents[id] {
		if d, ok := g.byID[depID]; ok {
			titles = append(titles, d.Title)
		}
	}
	return titles
}

// Replace writes an updated concept value back into the graph.
// The orchestrator computes new concept values without touching shared
// state; the graph owner applies them here.
func (g *Graph) Replace(c Concept) error {
	existing, ok := g.byID[c.ID]
	if !ok {
		return fmt.Errorf("concept not found: %q", c.ID)
	}
	*existing = c
	return nil
}

// MasteredCount returns the number of concepts at Reasoning.
func (g *Graph) MasteredCount() int {
	n := 0
	for i := range g.concepts {
		if g.concepts[i].Level == Reasoning {
			n++
		}
	}
	return n
}
