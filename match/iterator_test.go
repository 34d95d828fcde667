package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/krotik/dotadb/storage"
)

func tempStorage(t *testing.T) *storage.Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.dota")

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		t.Fatal(err)
	}

	s, err := storage.Init(f)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestEmptyPatternYieldsNoIterations(t *testing.T) {
	s := tempStorage(t)
	s.CreateVertex()

	p, err := NewPattern(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := it.Next()
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Exhausted {
		t.Error("expected an empty pattern to be immediately exhausted")
	}
}

func TestSingleUnconstrainedVertexSlotYieldsAllVertices(t *testing.T) {
	s := tempStorage(t)
	s.CreateVertex()
	s.CreateVertex()
	s.CreateVertex()

	p, err := NewPattern([]VertexSlot{{Name: "x"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for {
		outcome, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if outcome == Exhausted {
			break
		}
		count++
	}

	if count != 3 {
		t.Errorf("expected 3 assignments, got %d", count)
	}
}

func TestEmptyStoreIsImmediatelyExhausted(t *testing.T) {
	s := tempStorage(t)

	p, err := NewPattern([]VertexSlot{{Name: "x"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := it.Next()
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Exhausted {
		t.Error("expected no assignment from an empty store")
	}
}

func TestCartesianProductOverTwoVertexSlots(t *testing.T) {
	s := tempStorage(t)
	for i := 0; i < 2; i++ {
		s.CreateVertex()
	}

	p, err := NewPattern([]VertexSlot{{Name: "a"}, {Name: "b"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	var seen [][2]uint64
	for {
		outcome, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if outcome == Exhausted {
			break
		}
		seen = append(seen, [2]uint64{it.Vertex(0).Offset, it.Vertex(1).Offset})
	}

	if len(seen) != 4 {
		t.Fatalf("expected 2x2=4 assignments, got %d", len(seen))
	}

	// Odometer order: rightmost (b) varies fastest.
	if seen[0][1] == seen[1][1] {
		t.Error("expected the rightmost slot to advance first")
	}
}

func TestEdgeSlotRespectsEndpointsAndLabel(t *testing.T) {
	s := tempStorage(t)

	a, _ := s.CreateVertex()
	b, _ := s.CreateVertex()
	c, _ := s.CreateVertex()

	e1, _ := s.CreateEdge()
	s.EdgeSetSource(e1, a)
	s.EdgeSetDestination(e1, b)
	s.EdgeSetLabel(e1, "KNOWS")

	e2, _ := s.CreateEdge()
	s.EdgeSetSource(e2, a)
	s.EdgeSetDestination(e2, c)
	s.EdgeSetLabel(e2, "LIKES")

	p, err := NewPattern(
		[]VertexSlot{{Name: "x"}, {Name: "y"}},
		[]EdgeSlot{{Name: "r", Source: 0, Destination: 1, Label: "KNOWS", HasLabel: true}},
	)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for {
		outcome, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if outcome == Exhausted {
			break
		}
		count++

		if !storage.VertexEquals(it.Vertex(0), a) || !storage.VertexEquals(it.Vertex(1), b) {
			t.Error("expected the only match to bind x=a, y=b")
		}
	}

	if count != 1 {
		t.Errorf("expected exactly 1 match, got %d", count)
	}
}

func TestVertexLabelAndAttributeConstraints(t *testing.T) {
	s := tempStorage(t)

	ann, _ := s.CreateVertex()
	s.VertexAddLabel(ann, "Person")
	s.VertexSetAttribute(ann, "name", "Ann")

	bob, _ := s.CreateVertex()
	s.VertexAddLabel(bob, "Person")
	s.VertexSetAttribute(bob, "name", "Bob")

	s.CreateVertex() // unrelated vertex, no label

	p, err := NewPattern([]VertexSlot{{
		Name:       "x",
		Labels:     []string{"Person"},
		Attributes: []AttributeConstraint{{Name: "name", Value: "Ann"}},
	}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	it, err := NewIterator(s, p)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for {
		outcome, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if outcome == Exhausted {
			break
		}
		count++
		if !storage.VertexEquals(it.Vertex(0), ann) {
			t.Error("expected the only match to be Ann")
		}
	}

	if count != 1 {
		t.Errorf("expected exactly 1 match, got %d", count)
	}
}

func TestNewPatternRejectsDuplicateNames(t *testing.T) {
	_, err := NewPattern([]VertexSlot{{Name: "x"}}, []EdgeSlot{{Name: "x", Source: 0, Destination: 0}})
	if err == nil {
		t.Error("expected a duplicate-name error")
	}
}

func TestNewPatternRejectsUndefinedEndpoint(t *testing.T) {
	_, err := NewPattern([]VertexSlot{{Name: "a"}}, []EdgeSlot{{Name: "r", Source: 0, Destination: 5}})
	if err == nil {
		t.Error("expected an undefined-endpoint error")
	}
}
