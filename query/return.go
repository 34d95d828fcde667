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
defaultLimit and maxLimit bound RETURN's row count (spec §4.4): a
request that never sets a limit gets defaultLimit rows; one that asks
for more than maxLimit is rejected outright rather than silently capped.
*/
const (
	defaultLimit = 10
	maxLimit     = 1000
)

/*
dispatchReturn implements RETURN (spec §4.4): projects named vertices, or
one of their attributes, for every match passing WHERE, honoring Skip
(applied after WHERE, before Limit) and Limit. Rows are emitted in
iterator order.
*/
func dispatchReturn(s *storage.Storage, pattern *match.Pattern, req *Request) (*Response, error) {
	if pattern == nil {
		return errorResponse(ErrNeedsMatch), nil
	}
	if err := validateProjections(pattern, req.Projections); err != nil {
		return errorResponse(err), nil
	}

	limit := defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > maxLimit {
		return errorResponse(ErrLimitExceeded), nil
	}

	it, err := match.NewIterator(s, pattern)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(req.Projections))
	for i, p := range req.Projections {
		if p.HasAttr {
			columns[i] = p.Name + "." + p.Attr
		} else {
			columns[i] = p.Name
		}
	}

	var rows [][]Cell
	skipped := 0

	for len(rows) < limit {
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

		if skipped < req.Skip {
			skipped++
			continue
		}

		row, err := projectRow(s, pattern, it, req.Projections)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Response{Table: &Table{Columns: columns, Rows: rows}}, nil
}

func projectRow(s *storage.Storage, pattern *match.Pattern, it *match.Iterator, projections []Projection) ([]Cell, error) {
	row := make([]Cell, len(projections))

	for i, p := range projections {
		idx, _, _ := pattern.IndexOfName(p.Name)
		v := it.Vertex(idx)

		if !p.HasAttr {
			vv, err := renderVertex(s, v)
			if err != nil {
				return nil, err
			}
			row[i] = Cell{Vertex: vv}
			continue
		}

		value, found, err := s.VertexGetAttribute(v, p.Attr)
		if err != nil {
			return nil, err
		}
		if !found {
			row[i] = Cell{Null: true}
			continue
		}
		row[i] = Cell{Scalar: value}
	}

	return row, nil
}

/*
renderVertex collects a vertex's full current entity value: every label
it carries and every attribute that currently has a value set.
*/
func renderVertex(s *storage.Storage, v storage.VertexHandle) (*VertexValue, error) {
	var labels []string
	for h, err := s.FirstLabel(v); ; h, err = s.LabelNext(h) {
		if err != nil {
			return nil, err
		}
		if !h.Valid() {
			break
		}
		label, err := s.LabelGet(h)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	attributes := make(map[string]string)
	for h, err := s.FirstAttribute(v); ; h, err = s.AttributeNext(h) {
		if err != nil {
			return nil, err
		}
		if !h.Valid() {
			break
		}
		name, value, ok, err := s.AttributeGet(h)
		if err != nil {
			return nil, err
		}
		if ok {
			attributes[name] = value
		}
	}

	return &VertexValue{Labels: labels, Attributes: attributes}, nil
}
