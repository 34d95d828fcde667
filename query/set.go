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

	"github.com/krotik/dotadb/match"
	"github.com/krotik/dotadb/storage"
)

/*
dispatchSet implements SET (spec §4.4): requires a preceding MATCH, and
applies every change to every match that passes WHERE, reporting the
total number of changes applied.
*/
func dispatchSet(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	if pattern == nil {
		return errorResponse(ErrNeedsMatch), nil
	}
	if err := validateChanges(pattern, req.Changes); err != nil {
		return errorResponse(err), nil
	}
	for _, c := range req.Changes {
		if c.Kind != SetAttribute && c.Kind != AddLabel {
			return errorResponse(ErrBadRequest), nil
		}
	}

	it, err := match.NewIterator(s, pattern)
	if err != nil {
		return nil, err
	}

	var applied uint64
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

		for _, c := range req.Changes {
			if err := applySetChange(s, pattern, it, c); err != nil {
				return nil, err
			}
			applied++
		}
	}

	return amountResponse(applied), nil
}

func applySetChange(s *storage.Storage, pattern *match.Pattern, it *match.Iterator, c Change) error {
	idx, isVertex, _ := pattern.IndexOfName(c.Name)

	switch c.Kind {
	case SetAttribute:
		return s.VertexSetAttribute(it.Vertex(idx), c.Attr, c.Value)

	case AddLabel:
		if isVertex {
			return s.VertexAddLabel(it.Vertex(idx), c.Label)
		}
		return s.EdgeSetLabel(it.Edge(idx-len(pattern.Vertices)), c.Label)
	}

	return fmt.Errorf("set does not support change kind %d", c.Kind)
}
