package match

import (
	"github.com/krotik/dotadb/storage"
)

/*
Outcome is the explicit three-valued result of advancing an Iterator,
replacing the boolean-plus-thread-local-error side channel of the
implementation this package is modeled on (spec §5, §9).
*/
type Outcome int

const (
	// Item means the iterator holds a fresh, constraint-satisfying assignment.
	Item Outcome = iota
	// Exhausted means iteration is complete; this is never an error.
	Exhausted
	// Error means a storage failure interrupted iteration.
	Error
)

/*
Iterator enumerates every assignment of a Pattern's slots to storage
handles that satisfies all intrinsic constraints (spec §4.2). It holds one
cursor per slot and advances odometer-style: the rightmost slot advances
first, carrying left on wraparound.
*/
type Iterator struct {
	s         *storage.Storage
	pattern   *Pattern
	vertexCur []storage.VertexHandle
	edgeCur   []storage.EdgeHandle
	started   bool
	exhausted bool
}

/*
NewIterator constructs an Iterator positioned before the first assignment.
If any slot's underlying list is empty, iteration is immediately exhausted
(spec §4.2, "Start condition").
*/
func NewIterator(s *storage.Storage, pattern *Pattern) (*Iterator, error) {
	it := &Iterator{
		s:         s,
		pattern:   pattern,
		vertexCur: make([]storage.VertexHandle, len(pattern.Vertices)),
		edgeCur:   make([]storage.EdgeHandle, len(pattern.Edges)),
	}

	if len(pattern.Vertices)+len(pattern.Edges) == 0 {
		it.exhausted = true
		return it, nil
	}

	for i := range pattern.Vertices {
		h, err := s.FirstVertex()
		if err != nil {
			return nil, err
		}
		if !h.Valid() {
			it.exhausted = true
		}
		it.vertexCur[i] = h
	}

	for i := range pattern.Edges {
		h, err := s.FirstEdge()
		if err != nil {
			return nil, err
		}
		if !h.Valid() {
			it.exhausted = true
		}
		it.edgeCur[i] = h
	}

	return it, nil
}

/*
Vertex returns the current handle bound to the vertex slot at index i.
*/
func (it *Iterator) Vertex(i int) storage.VertexHandle {
	return it.vertexCur[i]
}

/*
Edge returns the current handle bound to the edge slot at index i.
*/
func (it *Iterator) Edge(i int) storage.EdgeHandle {
	return it.edgeCur[i]
}

/*
Next advances to the next assignment satisfying every slot's intrinsic
constraints. It returns Item once positioned on a valid assignment,
Exhausted once no assignment remains, or Error (with the cause) if a
storage operation failed.
*/
func (it *Iterator) Next() (Outcome, error) {
	if it.exhausted {
		return Exhausted, nil
	}

	if !it.started {
		it.started = true
	} else {
		advanced, err := it.advance()
		if err != nil {
			return Error, err
		}
		if !advanced {
			it.exhausted = true
			return Exhausted, nil
		}
	}

	for {
		ok, err := it.satisfiesIntrinsic()
		if err != nil {
			return Error, err
		}
		if ok {
			return Item, nil
		}

		advanced, err := it.advance()
		if err != nil {
			return Error, err
		}
		if !advanced {
			it.exhausted = true
			return Exhausted, nil
		}
	}
}

/*
advance moves the odometer by one position: the rightmost slot steps to
its list's next element; if that wraps (reaches the end), the slot resets
to its list head and the carry propagates one slot to the left. It
returns false once the leftmost slot itself would wrap, meaning iteration
is exhausted.
*/
func (it *Iterator) advance() (bool, error) {
	n := len(it.vertexCur) + len(it.edgeCur)

	for i := n - 1; i >= 0; i-- {
		advanced, err := it.advanceSlot(i)
		if err != nil {
			return false, err
		}
		if advanced {
			return true, nil
		}
	}

	return false, nil
}

/*
advanceSlot advances the single slot at combined index i (vertex slots
occupy [0, len(Vertices)), edge slots occupy the rest). It returns true if
the slot moved to a new element, or false if it wrapped back to its list
head (the caller must then carry into the next slot to the left).
*/
func (it *Iterator) advanceSlot(i int) (bool, error) {
	nv := len(it.vertexCur)

	if i < nv {
		next, err := it.s.VertexNext(it.vertexCur[i])
		if err != nil {
			return false, err
		}
		if next.Valid() {
			it.vertexCur[i] = next
			return true, nil
		}

		head, err := it.s.FirstVertex()
		if err != nil {
			return false, err
		}
		it.vertexCur[i] = head
		return false, nil
	}

	j := i - nv

	next, err := it.s.EdgeNext(it.edgeCur[j])
	if err != nil {
		return false, err
	}
	if next.Valid() {
		it.edgeCur[j] = next
		return true, nil
	}

	head, err := it.s.FirstEdge()
	if err != nil {
		return false, err
	}
	it.edgeCur[j] = head
	return false, nil
}

/*
satisfiesIntrinsic checks every slot's own constraints (labels/attributes
for vertices; endpoints and label for edges) against the current cursors.
It does not evaluate the separate WHERE filter (package filter).
*/
func (it *Iterator) satisfiesIntrinsic() (bool, error) {
	for i, vs := range it.pattern.Vertices {
		ok, err := it.vertexSatisfies(it.vertexCur[i], vs)
		if err != nil || !ok {
			return false, err
		}
	}

	for i, es := range it.pattern.Edges {
		ok, err := it.edgeSatisfies(it.edgeCur[i], es)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func (it *Iterator) vertexSatisfies(h storage.VertexHandle, vs VertexSlot) (bool, error) {
	for _, label := range vs.Labels {
		has, err := it.s.VertexHasLabel(h, label)
		if err != nil {
			return false, err
		}
		if !has {
			return false, nil
		}
	}

	for _, attr := range vs.Attributes {
		value, ok, err := it.s.VertexGetAttribute(h, attr.Name)
		if err != nil {
			return false, err
		}
		if !ok || value != attr.Value {
			return false, nil
		}
	}

	return true, nil
}

func (it *Iterator) edgeSatisfies(h storage.EdgeHandle, es EdgeSlot) (bool, error) {
	source, err := it.s.EdgeGetSource(h)
	if err != nil {
		return false, err
	}
	if !storage.VertexEquals(source, it.vertexCur[es.Source]) {
		return false, nil
	}

	destination, err := it.s.EdgeGetDestination(h)
	if err != nil {
		return false, err
	}
	if !storage.VertexEquals(destination, it.vertexCur[es.Destination]) {
		return false, nil
	}

	if es.HasLabel {
		label, ok, err := it.s.EdgeGetLabel(h)
		if err != nil {
			return false, err
		}
		if !ok || label != es.Label {
			return false, nil
		}
	}

	return true, nil
}
