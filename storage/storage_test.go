package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.dota")

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Init(f)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestInitAndOpenRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dota")

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Init(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	f, err = os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := Open(f); err != nil {
		t.Error("opening an initialized file should succeed:", err)
	}
}

func TestOpenRejectsBadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dota")

	if err := os.WriteFile(path, []byte("NOPE"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = Open(f)
	if err == nil {
		t.Error("expected an invalid format error")
	}

	se, ok := err.(*StorageError)
	if !ok || se.Type != ErrInvalidFormat {
		t.Error("expected ErrInvalidFormat, got:", err)
	}
}

func TestCreateVertexIsReachedExactlyOnce(t *testing.T) {
	s := tempStorage(t)

	v1, err := s.CreateVertex()
	if err != nil {
		t.Fatal(err)
	}

	v2, err := s.CreateVertex()
	if err != nil {
		t.Fatal(err)
	}

	var seen []VertexHandle
	for h, err := s.FirstVertex(); ; h, err = s.VertexNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		seen = append(seen, h)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(seen))
	}
	if !VertexEquals(seen[0], v1) || !VertexEquals(seen[1], v2) {
		t.Error("vertices were not reached in creation order")
	}
}

func TestVertexAddLabelIsIdempotent(t *testing.T) {
	s := tempStorage(t)

	v, err := s.CreateVertex()
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := s.VertexAddLabel(v, "Person"); err != nil {
			t.Fatal(err)
		}
	}

	count := 0
	for h, err := s.FirstLabel(v); ; h, err = s.LabelNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		count++
	}

	if count != 1 {
		t.Errorf("expected 1 label after repeated add, got %d", count)
	}

	has, err := s.VertexHasLabel(v, "Person")
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("expected vertex to carry the Person label")
	}
}

func TestVertexRemoveLabel(t *testing.T) {
	s := tempStorage(t)

	v, _ := s.CreateVertex()
	if err := s.VertexAddLabel(v, "Person"); err != nil {
		t.Fatal(err)
	}

	if err := s.VertexRemoveLabel(v, "Person"); err != nil {
		t.Fatal(err)
	}

	has, err := s.VertexHasLabel(v, "Person")
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Error("label should have been removed")
	}

	// Removing again should be a no-op, not an error.
	if err := s.VertexRemoveLabel(v, "Person"); err != nil {
		t.Error("removing an absent label should not error:", err)
	}
}

func TestVertexAttributeSetGetRemove(t *testing.T) {
	s := tempStorage(t)

	v, _ := s.CreateVertex()

	if err := s.VertexSetAttribute(v, "name", "Ann"); err != nil {
		t.Fatal(err)
	}

	value, ok, err := s.VertexGetAttribute(v, "name")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "Ann" {
		t.Fatalf("expected Some(Ann), got ok=%v value=%q", ok, value)
	}

	// Upsert retargets the value without creating a second attribute.
	if err := s.VertexSetAttribute(v, "name", "Annie"); err != nil {
		t.Fatal(err)
	}

	value, ok, err = s.VertexGetAttribute(v, "name")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "Annie" {
		t.Fatalf("expected Some(Annie), got ok=%v value=%q", ok, value)
	}

	count := 0
	for h, err := s.FirstAttribute(v); ; h, err = s.AttributeNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected exactly one attribute record after upsert, got %d", count)
	}

	if err := s.VertexRemoveAttribute(v, "name"); err != nil {
		t.Fatal(err)
	}

	_, ok, err = s.VertexGetAttribute(v, "name")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("attribute should read back as unset after remove")
	}

	// The attribute record itself still exists in the list (spec §3.3).
	count = 0
	for h, err := s.FirstAttribute(v); ; h, err = s.AttributeNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected the tombstoned attribute record to remain, got %d records", count)
	}
}

func TestEdgeEndpointsAndLabel(t *testing.T) {
	s := tempStorage(t)

	a, _ := s.CreateVertex()
	b, _ := s.CreateVertex()

	e, err := s.CreateEdge()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.EdgeSetSource(e, a); err != nil {
		t.Fatal(err)
	}
	if err := s.EdgeSetDestination(e, b); err != nil {
		t.Fatal(err)
	}
	if err := s.EdgeSetLabel(e, "KNOWS"); err != nil {
		t.Fatal(err)
	}

	src, err := s.EdgeGetSource(e)
	if err != nil {
		t.Fatal(err)
	}
	if !VertexEquals(src, a) {
		t.Error("source did not round-trip")
	}

	dst, err := s.EdgeGetDestination(e)
	if err != nil {
		t.Fatal(err)
	}
	if !VertexEquals(dst, b) {
		t.Error("destination did not round-trip")
	}

	label, ok, err := s.EdgeGetLabel(e)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || label != "KNOWS" {
		t.Fatalf("expected Some(KNOWS), got ok=%v label=%q", ok, label)
	}

	if err := s.EdgeRemoveLabel(e, "WRONG"); err != nil {
		t.Fatal(err)
	}
	if label, ok, _ := s.EdgeGetLabel(e); !ok || label != "KNOWS" {
		t.Error("removing with a mismatched label should be a no-op")
	}

	if err := s.EdgeRemoveLabel(e, "KNOWS"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.EdgeGetLabel(e); ok {
		t.Error("label should be cleared")
	}
}

func TestVertexDropRefusesNothingItself(t *testing.T) {
	// Storage performs no referential-integrity check; that is the
	// dispatcher's responsibility (spec §4.1).
	s := tempStorage(t)

	a, _ := s.CreateVertex()
	b, _ := s.CreateVertex()
	e, _ := s.CreateEdge()
	s.EdgeSetSource(e, a)
	s.EdgeSetDestination(e, b)

	if err := s.VertexDrop(a); err != nil {
		t.Fatal(err)
	}

	// a is no longer reachable via FirstVertex/VertexNext...
	found := false
	for h, err := s.FirstVertex(); ; h, err = s.VertexNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		if VertexEquals(h, a) {
			found = true
		}
	}
	if found {
		t.Error("dropped vertex should not be reachable")
	}

	// ...but the edge still resolves its (now tombstoned) source handle.
	src, err := s.EdgeGetSource(e)
	if err != nil {
		t.Fatal(err)
	}
	if !VertexEquals(src, a) {
		t.Error("tombstoned vertex handle should still be resolvable")
	}
}

func TestWellFormedListAfterMixedOps(t *testing.T) {
	s := tempStorage(t)

	var handles []VertexHandle
	for i := 0; i < 5; i++ {
		h, err := s.CreateVertex()
		if err != nil {
			t.Fatal(err)
		}
		handles = append(handles, h)
	}

	// Remove the middle one and the head.
	if err := s.VertexDrop(handles[2]); err != nil {
		t.Fatal(err)
	}
	if err := s.VertexDrop(handles[0]); err != nil {
		t.Fatal(err)
	}

	want := []VertexHandle{handles[1], handles[3], handles[4]}

	var got []VertexHandle
	for h, err := s.FirstVertex(); ; h, err = s.VertexNext(h) {
		if err != nil {
			t.Fatal(err)
		}
		if !h.Valid() {
			break
		}
		got = append(got, h)
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d vertices, got %d", len(want), len(got))
	}
	for i := range want {
		if !VertexEquals(got[i], want[i]) {
			t.Errorf("position %d: expected offset %d, got %d", i, want[i].Offset, got[i].Offset)
		}
	}
}
