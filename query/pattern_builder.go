/*
 * dotadb
 *
 * Copyright 2026 The dotadb Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"fmt"
	"sort"

	"github.com/krotik/dotadb/match"
)

/*
BuildPattern resolves a wire-level MatchSpec into a match.Pattern,
applying the bare-vs-defining endpoint rule (spec §4.2): an endpoint with
no labels and no attributes is a bare reference to a previously defined
vertex name; an endpoint carrying labels or attributes introduces a new
vertex slot under that name, and reusing an already-defined name that way
is rejected. A nil spec (no MATCH clause at all) yields a nil pattern.
*/
func BuildPattern(ms *MatchSpec) (*match.Pattern, error) {
	if ms == nil {
		return nil, nil
	}

	var vertices []match.VertexSlot
	index := make(map[string]int, len(ms.Vertices))

	for _, vs := range ms.Vertices {
		if vs.Name != "" {
			if _, exists := index[vs.Name]; exists {
				return nil, fmt.Errorf("%w: %q", ErrRedefinedVertex, vs.Name)
			}
			index[vs.Name] = len(vertices)
		}
		vertices = append(vertices, toVertexSlot(vs))
	}

	resolveEndpoint := func(ep EndpointSpec) (int, error) {
		bare := len(ep.Labels) == 0 && len(ep.Attributes) == 0

		if bare {
			idx, exists := index[ep.Name]
			if !exists {
				return 0, ErrUndefinedVertexName
			}
			return idx, nil
		}

		if _, exists := index[ep.Name]; exists {
			return 0, fmt.Errorf("%w: %q", ErrRedefinedVertex, ep.Name)
		}

		idx := len(vertices)
		index[ep.Name] = idx
		vertices = append(vertices, toVertexSlot(ep.VertexSpec))
		return idx, nil
	}

	var edges []match.EdgeSlot
	for _, es := range ms.Edges {
		srcIdx, err := resolveEndpoint(es.Source)
		if err != nil {
			return nil, err
		}
		dstIdx, err := resolveEndpoint(es.Destination)
		if err != nil {
			return nil, err
		}

		edges = append(edges, match.EdgeSlot{
			Name:        es.Name,
			Source:      srcIdx,
			Destination: dstIdx,
			Label:       es.Label,
			HasLabel:    es.HasLabel,
		})
	}

	return match.NewPattern(vertices, edges)
}

/*
toVertexSlot converts a wire VertexSpec into a match.VertexSlot, sorting
attribute constraints by name so construction is deterministic despite
Go's randomized map iteration order.
*/
func toVertexSlot(vs VertexSpec) match.VertexSlot {
	var attrs []match.AttributeConstraint
	for name, value := range vs.Attributes {
		attrs = append(attrs, match.AttributeConstraint{Name: name, Value: value})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })

	return match.VertexSlot{Name: vs.Name, Labels: vs.Labels, Attributes: attrs}
}
