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
	"github.com/krotik/dotadb/match"
	"github.com/krotik/dotadb/storage"
)

/*
dispatchCreate implements CREATE, with or without a preceding MATCH
(spec §4.4). Without MATCH, req.Create is itself a pattern: its own
vertex and edge entities are created fresh, in order, and an edge's bare
endpoints refer to vertices created earlier in the same list. With
MATCH, req.Create may only contain edges, each naming vertices bound by
the MATCH pattern, and one set of those edges is created per match.
*/
func dispatchCreate(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	if req.Create == nil {
		return errorResponse(ErrBadRequest), nil
	}

	if pattern == nil {
		return createWithoutMatch(s, req.Create)
	}
	return createWithMatch(s, pattern, req)
}

func createWithoutMatch(s *storage.Storage, create *MatchSpec) (*Response, error) {
	template, err := BuildPattern(create)
	if err != nil {
		return errorResponse(err), nil
	}

	vertices := make([]storage.VertexHandle, len(template.Vertices))
	for i, vs := range template.Vertices {
		h, err := s.CreateVertex()
		if err != nil {
			return nil, err
		}
		for _, label := range vs.Labels {
			if err := s.VertexAddLabel(h, label); err != nil {
				return nil, err
			}
		}
		for _, attr := range vs.Attributes {
			if err := s.VertexSetAttribute(h, attr.Name, attr.Value); err != nil {
				return nil, err
			}
		}
		vertices[i] = h
	}

	for _, es := range template.Edges {
		h, err := s.CreateEdge()
		if err != nil {
			return nil, err
		}
		if err := s.EdgeSetSource(h, vertices[es.Source]); err != nil {
			return nil, err
		}
		if err := s.EdgeSetDestination(h, vertices[es.Destination]); err != nil {
			return nil, err
		}
		if es.HasLabel {
			if err := s.EdgeSetLabel(h, es.Label); err != nil {
				return nil, err
			}
		}
	}

	return amountResponse(uint64(len(vertices) + len(template.Edges))), nil
}

/*
createEdgeTemplate is one edge to stamp out per match: its endpoints
resolved to indices in the MATCH pattern's vertex slots, not the CREATE
list's own (empty) vertex slots.
*/
type createEdgeTemplate struct {
	source      int
	destination int
	label       string
	hasLabel    bool
}

func resolveCreateEdges(pattern *match.Pattern, create *MatchSpec) ([]createEdgeTemplate, error) {
	if len(create.Vertices) > 0 {
		return nil, ErrCreateVerticesWithMatch
	}

	templates := make([]createEdgeTemplate, 0, len(create.Edges))
	for _, es := range create.Edges {
		srcIdx, srcIsVertex, ok := pattern.IndexOfName(es.Source.Name)
		if !ok || !srcIsVertex {
			return nil, ErrUndefinedVertexName
		}
		dstIdx, dstIsVertex, ok := pattern.IndexOfName(es.Destination.Name)
		if !ok || !dstIsVertex {
			return nil, ErrUndefinedVertexName
		}

		templates = append(templates, createEdgeTemplate{
			source:      srcIdx,
			destination: dstIdx,
			label:       es.Label,
			hasLabel:    es.HasLabel,
		})
	}

	return templates, nil
}

func createWithMatch(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	templates, err := resolveCreateEdges(pattern, req.Create)
	if err != nil {
		return errorResponse(err), nil
	}

	it, err := match.NewIterator(s, pattern)
	if err != nil {
		return nil, err
	}

	var created uint64
	for {
		outcome, err := it.Next()
		if err != nil {
			return nil, err
		}
		if outcome == match.Exhausted {
			break
		}

		ok, err := evalWhere(s, pattern, it, req.Where)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		for _, t := range templates {
			h, err := s.CreateEdge()
			if err != nil {
				return nil, err
			}
			if err := s.EdgeSetSource(h, it.Vertex(t.source)); err != nil {
				return nil, err
			}
			if err := s.EdgeSetDestination(h, it.Vertex(t.destination)); err != nil {
				return nil, err
			}
			if t.hasLabel {
				if err := s.EdgeSetLabel(h, t.label); err != nil {
					return nil, err
				}
			}
			created++
		}
	}

	return amountResponse(created), nil
}
