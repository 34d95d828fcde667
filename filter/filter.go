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
Package filter implements the recursive boolean WHERE tree (spec §4.3):
equals/label leaves over a pattern's named slots, composed with not/and/or.
*/
package filter

import (
	"errors"
	"fmt"

	"github.com/krotik/dotadb/match"
	"github.com/krotik/dotadb/storage"
)

/*
Expr is a node in a WHERE tree. Eval is evaluated against the assignment
currently held by it, which must belong to pattern.
*/
type Expr interface {
	Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error)
}

/*
Equals requires the named vertex slot's attribute to equal value. A
missing attribute evaluates to false, never an error (spec §4.3).
*/
type Equals struct {
	Name  string
	Attr  string
	Value string
}

/*
Eval implements Expr for Equals.
*/
func (e *Equals) Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error) {
	idx, isVertex, ok := pattern.IndexOfName(e.Name)
	if !ok || !isVertex {
		return false, fmt.Errorf("%w: %q", ErrInvalidReference, e.Name)
	}

	value, found, err := s.VertexGetAttribute(it.Vertex(idx), e.Attr)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	return value == e.Value, nil
}

/*
Label requires the named slot (vertex or edge) to carry the given label.
For an edge, "carries the label" means its single label equals the value.
*/
type Label struct {
	Name  string
	Label string
}

/*
Eval implements Expr for Label.
*/
func (l *Label) Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error) {
	idx, isVertex, ok := pattern.IndexOfName(l.Name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidReference, l.Name)
	}

	if isVertex {
		return s.VertexHasLabel(it.Vertex(idx), l.Label)
	}

	edgeIndex := idx - len(pattern.Vertices)
	label, found, err := s.EdgeGetLabel(it.Edge(edgeIndex))
	if err != nil {
		return false, err
	}

	return found && label == l.Label, nil
}

/*
Not negates its operand, propagating any evaluation error.
*/
type Not struct {
	Expr Expr
}

/*
Eval implements Expr for Not.
*/
func (n *Not) Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error) {
	ok, err := n.Expr.Eval(s, pattern, it)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

/*
And short-circuits on the first false operand (spec §4.3, left to right).
*/
type And struct {
	Left  Expr
	Right Expr
}

/*
Eval implements Expr for And.
*/
func (a *And) Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error) {
	ok, err := a.Left.Eval(s, pattern, it)
	if err != nil || !ok {
		return false, err
	}
	return a.Right.Eval(s, pattern, it)
}

/*
Or short-circuits on the first true operand.
*/
type Or struct {
	Left  Expr
	Right Expr
}

/*
Eval implements Expr for Or.
*/
func (o *Or) Eval(s *storage.Storage, pattern *match.Pattern, it *match.Iterator) (bool, error) {
	ok, err := o.Left.Eval(s, pattern, it)
	if err != nil || ok {
		return ok, err
	}
	return o.Right.Eval(s, pattern, it)
}

/*
ErrInvalidReference is returned when a leaf names a slot that does not
exist in the pattern, or names the wrong kind of slot (spec §4.3's static
validation).
*/
var ErrInvalidReference = errors.New("where clause references an undefined or wrong-kind slot")

/*
Validate statically checks a WHERE tree against a pattern without
evaluating it: every Equals.Name must resolve to a vertex slot (attributes
are vertex-only) and every Label.Name must resolve to some slot.
*/
func Validate(e Expr, pattern *match.Pattern) error {
	switch v := e.(type) {
	case *Equals:
		idx, isVertex, ok := pattern.IndexOfName(v.Name)
		_ = idx
		if !ok || !isVertex {
			return fmt.Errorf("%w: %q must be a vertex slot for attribute access", ErrInvalidReference, v.Name)
		}
		return nil

	case *Label:
		_, _, ok := pattern.IndexOfName(v.Name)
		if !ok {
			return fmt.Errorf("%w: %q is not a defined slot", ErrInvalidReference, v.Name)
		}
		return nil

	case *Not:
		return Validate(v.Expr, pattern)

	case *And:
		if err := Validate(v.Left, pattern); err != nil {
			return err
		}
		return Validate(v.Right, pattern)

	case *Or:
		if err := Validate(v.Left, pattern); err != nil {
			return err
		}
		return Validate(v.Right, pattern)
	}

	return fmt.Errorf("unknown where expression type %T", e)
}
