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
dispatchDelete implements DELETE (spec §4.4). It runs in two passes so
the whole request fails or succeeds atomically: first it collects, across
every match passing WHERE, the distinct vertices and edges named for
deletion; then, before dropping anything, it verifies that no edge left
in the store after this operation's own edge deletions would still
reference one of those vertices (spec's "operation-wide error" — an edge
being deleted in this same request does not count against its
endpoints). Only once every vertex passes that check are the collected
edges and vertices actually dropped.
*/
func dispatchDelete(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	if pattern == nil {
		return errorResponse(ErrNeedsMatch), nil
	}
	if err := validateNames(pattern, req.Names); err != nil {
		return errorResponse(err), nil
	}

	it, err := match.NewIterator(s, pattern)
	if err != nil {
		return nil, err
	}

	vertices := make(map[uint64]storage.VertexHandle)
	edges := make(map[uint64]storage.EdgeHandle)

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

		for _, name := range req.Names {
			idx, isVertex, _ := pattern.IndexOfName(name)
			if isVertex {
				h := it.Vertex(idx)
				vertices[h.Offset] = h
			} else {
				h := it.Edge(idx - len(pattern.Vertices))
				edges[h.Offset] = h
			}
		}
	}

	if len(vertices) > 0 {
		if err := checkNoIncidentEdges(s, vertices, edges); err != nil {
			if err == ErrIncidentEdges {
				return errorResponse(err), nil
			}
			return nil, err
		}
	}

	var dropped uint64

	for _, h := range edges {
		if err := s.EdgeDrop(h); err != nil {
			return nil, err
		}
		dropped++
	}

	for _, h := range vertices {
		if err := s.VertexDrop(h); err != nil {
			return nil, err
		}
		dropped++
	}

	return amountResponse(dropped), nil
}

/*
checkNoIncidentEdges scans every edge reachable in the store and fails
with ErrIncidentEdges if one not already marked for deletion still
references one of the vertices marked for deletion.
*/
func checkNoIncidentEdges(s *storage.Storage, vertices map[uint64]storage.VertexHandle, toDelete map[uint64]storage.EdgeHandle) error {
	for h, err := s.FirstEdge(); ; h, err = s.EdgeNext(h) {
		if err != nil {
			return err
		}
		if !h.Valid() {
			return nil
		}
		if _, deleting := toDelete[h.Offset]; deleting {
			continue
		}

		source, err := s.EdgeGetSource(h)
		if err != nil {
			return err
		}
		if _, marked := vertices[source.Offset]; marked {
			return ErrIncidentEdges
		}

		destination, err := s.EdgeGetDestination(h)
		if err != nil {
			return err
		}
		if _, marked := vertices[destination.Offset]; marked {
			return ErrIncidentEdges
		}
	}
}
