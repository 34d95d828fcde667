/*
 * dotadb
 *
 * Copyright 2026 The dotadb Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package match implements the pattern-matching iterator: given a pattern of
named vertex and edge slots with intrinsic constraints, it enumerates every
tuple of storage handles that simultaneously satisfies those constraints,
advancing odometer-style over the concatenation of vertex then edge slots.
*/
package match

import (
	"errors"
	"fmt"
)

/*
AttributeConstraint requires a vertex slot's named attribute to equal a
literal value.
*/
type AttributeConstraint struct {
	Name  string
	Value string
}

/*
VertexSlot is one named position in a pattern's vertex sequence, with its
conjunctive label and attribute constraints.
*/
type VertexSlot struct {
	Name       string
	Labels     []string
	Attributes []AttributeConstraint
}

/*
EdgeSlot is one named position in a pattern's edge sequence. Source and
Destination are indices into the pattern's Vertices slice.
*/
type EdgeSlot struct {
	Name        string
	Source      int
	Destination int
	Label       string
	HasLabel    bool
}

/*
Pattern is the validated (V, E) pair described in spec §4.2: an ordered
vertex slot sequence and an ordered edge slot sequence, whose endpoint
indices are known to be in range and whose names are known to be unique.
*/
type Pattern struct {
	Vertices []VertexSlot
	Edges    []EdgeSlot
}

/*
Pattern construction errors (spec §7, Semantic).
*/
var (
	ErrDuplicateName     = errors.New("duplicate slot name")
	ErrUndefinedEndpoint = errors.New("edge endpoint references an undefined vertex slot")
)

/*
NewPattern validates slot-name uniqueness (across vertices and edges
together) and that every edge's endpoint indices fall within the vertex
slice, then returns the pattern. Higher-level resolution of textual
endpoint references (a bare name vs. an endpoint that introduces a new
slot) happens one layer up, in the request dispatcher that builds the
VertexSlot/EdgeSlot values passed in here.
*/
func NewPattern(vertices []VertexSlot, edges []EdgeSlot) (*Pattern, error) {
	seen := make(map[string]bool, len(vertices)+len(edges))

	for _, v := range vertices {
		if v.Name == "" {
			continue
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, v.Name)
		}
		seen[v.Name] = true
	}

	for _, e := range edges {
		if e.Name == "" {
			continue
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
	}

	for _, e := range edges {
		if e.Source < 0 || e.Source >= len(vertices) || e.Destination < 0 || e.Destination >= len(vertices) {
			return nil, fmt.Errorf("%w: edge %q", ErrUndefinedEndpoint, e.Name)
		}
	}

	return &Pattern{Vertices: vertices, Edges: edges}, nil
}

/*
IndexOfName resolves a slot name to its position in the combined
Vertices++Edges slot space (vertex slots first), matching the namespace
sharing rule in spec §9 ("Cross-entity naming").
*/
func (p *Pattern) IndexOfName(name string) (index int, isVertex bool, ok bool) {
	for i, v := range p.Vertices {
		if v.Name == name {
			return i, true, true
		}
	}
	for i, e := range p.Edges {
		if e.Name == name {
			return len(p.Vertices) + i, false, true
		}
	}
	return 0, false, false
}
