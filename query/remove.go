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
dispatchRemove implements REMOVE (spec §4.4): the mirror image of SET,
unsetting attributes and labels instead of setting them.
*/
func dispatchRemove(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	if pattern == nil {
		return errorResponse(ErrNeedsMatch), nil
	}
	if err := validateChanges(pattern, req.Changes); err != nil {
		return errorResponse(err), nil
	}
	for _, c := range req.Changes {
		if c.Kind != RemoveAttribute && c.Kind != RemoveLabel {
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
			if err := applyRemoveChange(s, pattern, it, c); err != nil {
				return nil, err
			}
			applied++
		}
	}

	return amountResponse(applied), nil
}

func applyRemoveChange(s *storage.Storage, pattern *match.Pattern, it *match.Iterator, c Change) error {
	idx, isVertex, _ := pattern.IndexOfName(c.Name)

	switch c.Kind {
	case RemoveAttribute:
		return s.VertexRemoveAttribute(it.Vertex(idx), c.Attr)

	case RemoveLabel:
		if isVertex {
			return s.VertexRemoveLabel(it.Vertex(idx), c.Label)
		}
		return s.EdgeRemoveLabel(it.Edge(idx-len(pattern.Vertices)), c.Label)
	}

	return fmt.Errorf("remove does not support change kind %d", c.Kind)
}
