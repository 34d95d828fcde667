package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/krotik/dotadb/match"
	"github.com/krotik/dotadb/storage"
)

func setup(t *testing.T) (*storage.Storage, *match.Pattern, *match.Iterator) {
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

	ann, _ := s.CreateVertex()
	s.VertexAddLabel(ann, "Person")
	s.VertexSetAttribute(ann, "name", "Ann")

	bob, _ := s.CreateVertex()
	s.VertexAddLabel(bob, "Person")
	s.VertexSetAttribute(bob, "name", "Bob")

	e, _ := s.CreateEdge()
	s.EdgeSetSource(e, ann)
	s.EdgeSetDestination(e, bob)
	s.EdgeSetLabel(e, "KNOWS")

	pattern, err := match.NewPattern(
		[]match.VertexSlot{{Name: "x"}, {Name: "y"}},
		[]match.EdgeSlot{{Name: "r", Source: 0, Destination: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}

	it, err := match.NewIterator(s, pattern)
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := it.Next()
	if err != nil {
		t.Fatal(err)
	}
	if outcome != match.Item {
		t.Fatal("expected at least one assignment")
	}

	return s, pattern, it
}

func TestEqualsMatchesAndMisses(t *testing.T) {
	s, p, it := setup(t)

	expr := &Equals{Name: "x", Attr: "name", Value: "Ann"}
	ok, err := expr.Eval(s, p, it)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected x.name = Ann to match")
	}

	expr = &Equals{Name: "x", Attr: "name", Value: "Bob"}
	ok, err = expr.Eval(s, p, it)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected x.name = Bob not to match")
	}
}

func TestEqualsOnMissingAttributeIsFalseNotError(t *testing.T) {
	s, p, it := setup(t)

	expr := &Equals{Name: "x", Attr: "nickname", Value: "anything"}
	ok, err := expr.Eval(s, p, it)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected a missing attribute to evaluate false")
	}
}

func TestLabelOnVertexAndEdge(t *testing.T) {
	s, p, it := setup(t)

	vertexLabel := &Label{Name: "x", Label: "Person"}
	ok, err := vertexLabel.Eval(s, p, it)
	if err != nil || !ok {
		t.Error("expected x:Person to match")
	}

	edgeLabel := &Label{Name: "r", Label: "KNOWS"}
	ok, err = edgeLabel.Eval(s, p, it)
	if err != nil || !ok {
		t.Error("expected r:KNOWS to match")
	}

	edgeLabel = &Label{Name: "r", Label: "LIKES"}
	ok, err = edgeLabel.Eval(s, p, it)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected r:LIKES not to match")
	}
}

func TestBooleanComposition(t *testing.T) {
	s, p, it := setup(t)

	and := &And{
		Left:  &Label{Name: "x", Label: "Person"},
		Right: &Equals{Name: "y", Attr: "name", Value: "Bob"},
	}
	ok, err := and.Eval(s, p, it)
	if err != nil || !ok {
		t.Error("expected the AND of two true leaves to be true")
	}

	or := &Or{
		Left:  &Equals{Name: "x", Attr: "name", Value: "nope"},
		Right: &Equals{Name: "y", Attr: "name", Value: "Bob"},
	}
	ok, err = or.Eval(s, p, it)
	if err != nil || !ok {
		t.Error("expected the OR to be true via its right operand")
	}

	not := &Not{Expr: &Equals{Name: "x", Attr: "name", Value: "nope"}}
	ok, err = not.Eval(s, p, it)
	if err != nil || !ok {
		t.Error("expected NOT false to be true")
	}
}

func TestValidateRejectsAttributeOnEdgeSlot(t *testing.T) {
	_, p, _ := setup(t)

	err := Validate(&Equals{Name: "r", Attr: "weight", Value: "1"}, p)
	if err == nil {
		t.Error("expected Validate to reject an attribute leaf naming an edge slot")
	}
}

func TestValidateRejectsUndefinedName(t *testing.T) {
	_, p, _ := setup(t)

	err := Validate(&Label{Name: "nope", Label: "Person"}, p)
	if err == nil {
		t.Error("expected Validate to reject an undefined slot name")
	}
}

func TestValidateRecursesThroughComposition(t *testing.T) {
	_, p, _ := setup(t)

	err := Validate(&And{
		Left:  &Label{Name: "x", Label: "Person"},
		Right: &Not{Expr: &Label{Name: "nope", Label: "Person"}},
	}, p)
	if err == nil {
		t.Error("expected Validate to catch an invalid reference nested under and/not")
	}
}
