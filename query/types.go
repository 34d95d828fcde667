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
Package query implements the request dispatcher: it builds a match.Pattern
from a decoded request, validates an optional WHERE filter against it,
drives a match.Iterator, and applies the requested mutation or projection
(spec §4.4). It is the only layer that knows about all five operators;
storage, match and filter are combined here but never depend back on it.
*/
package query

import "github.com/krotik/dotadb/filter"

/*
Operator is one of the five request operators a Request may carry.
*/
type Operator int

const (
	Create Operator = iota
	Set
	Remove
	Delete
	Return
)

/*
VertexSpec describes one vertex entity as it appears in a MATCH pattern or
a CREATE entity list: an optional name and conjunctive label/attribute
constraints (for MATCH) or initial values (for CREATE).
*/
type VertexSpec struct {
	Name       string
	Labels     []string
	Attributes map[string]string
}

/*
EndpointSpec is an edge's reference to one of its vertices. A Name with no
Labels and no Attributes is a bare reference to a previously defined slot;
a Name accompanied by Labels/Attributes introduces a new slot with those
constraints (spec §4.2, §9).
*/
type EndpointSpec struct {
	VertexSpec
}

/*
EdgeSpec describes one edge entity.
*/
type EdgeSpec struct {
	Name        string
	Source      EndpointSpec
	Destination EndpointSpec
	Label       string
	HasLabel    bool
}

/*
MatchSpec is the unvalidated form of a pattern (or a CREATE entity list,
which is structurally identical): an ordered list of vertex entities and
an ordered list of edge entities, exactly as carried on the wire.
*/
type MatchSpec struct {
	Vertices []VertexSpec
	Edges    []EdgeSpec
}

/*
ChangeKind identifies what a SET/REMOVE change does.
*/
type ChangeKind int

const (
	SetAttribute ChangeKind = iota
	AddLabel
	RemoveAttribute
	RemoveLabel
)

/*
Change is one SET or REMOVE mutation targeting a named pattern slot.
*/
type Change struct {
	Kind  ChangeKind
	Name  string
	Attr  string // SetAttribute, RemoveAttribute
	Label string // AddLabel, RemoveLabel
	Value string // SetAttribute
}

/*
Projection is one RETURN column: the named slot, and optionally one of its
attributes. If Attr is absent the whole vertex entity is projected.
*/
type Projection struct {
	Name    string
	Attr    string
	HasAttr bool
}

/*
Request is the fully decoded form of a client request (spec §6.2).
Match is the optional preceding MATCH pattern shared by WHERE and every
operator that requires one; Create is CREATE's own entity list, distinct
from Match (a CREATE may run with or without a preceding MATCH).
*/
type Request struct {
	Operator    Operator
	Match       *MatchSpec
	Create      *MatchSpec
	Where       filter.Expr
	Changes     []Change
	Names       []string
	Projections []Projection
	Skip        int
	Limit       *int
}

/*
VertexValue is the whole-entity projection of a vertex: its labels and
current attributes.
*/
type VertexValue struct {
	Labels     []string
	Attributes map[string]string
}

/*
Cell is one table cell: null, a scalar string, or a whole vertex entity
(spec §6.2's tagged union).
*/
type Cell struct {
	Null   bool
	Scalar string
	Vertex *VertexValue
}

/*
Table is a RETURN response: named columns and the projected rows, in
iterator order.
*/
type Table struct {
	Columns []string
	Rows    [][]Cell
}

/*
Response is the dispatcher's result: either an error, an amount (for
CREATE/SET/REMOVE/DELETE), or a table (for RETURN).
*/
type Response struct {
	Err    string
	Amount *uint64
	Table  *Table
}

func errorResponse(err error) *Response {
	return &Response{Err: err.Error()}
}

func amountResponse(amount uint64) *Response {
	return &Response{Amount: &amount}
}
