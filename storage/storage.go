package storage

import (
	"os"
)

/*
Storage is a handle-producing view over one open DOTA file. It never holds
record bytes in memory beyond what a single call needs; every operation
seeks and reads/writes the backing file directly, in the spirit of the
original offset-addressed implementation this format is modeled on. No
read cache is kept; the only cached value is the end-of-file offset.
*/
type Storage struct {
	f   *os.File
	end uint64 // cached end-of-file offset, the next append position
}

/*
Handle is an opaque reference to a list-element entity: the storage it
belongs to plus the offset of the list node that anchors it. Two handles
denote the same entity iff their Offset fields are equal and they share
the same Storage (spec §3.1).
*/
type Handle struct {
	s      *Storage
	Offset uint64
}

/*
Valid reports whether the handle denotes a real entity rather than "end of
iteration" (offset 0).
*/
func (h Handle) Valid() bool {
	return h.Offset != 0
}

/*
VertexHandle references a node in the top-level vertex list.
*/
type VertexHandle struct{ Handle }

/*
EdgeHandle references a node in the top-level edge list.
*/
type EdgeHandle struct{ Handle }

/*
LabelHandle references a node in a vertex's labels list.
*/
type LabelHandle struct{ Handle }

/*
AttributeHandle references a node in a vertex's attributes list.
*/
type AttributeHandle struct{ Handle }

var headerVertices = listRef{headOffset: headerVHeadOffset, tailOffset: headerVTailOffset}
var headerEdges = listRef{headOffset: headerEHeadOffset, tailOffset: headerETailOffset}

/*
Init positions at offset 0 and writes a fresh header with the DOTA
signature and two empty lists. Any existing content past the header is
left untouched but becomes unreachable, since the header is the sole
root of reachability.
*/
func Init(f *os.File) (*Storage, error) {
	buf := make([]byte, headerSize)
	copy(buf[headerSignatureOffset:], signature)

	if _, err := f.WriteAt(buf, 0); err != nil {
		return nil, ioErrorf(err, "writing header: %v", err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, ioErrorf(err, "stat: %v", err)
	}

	end := uint64(headerSize)
	if uint64(info.Size()) > end {
		end = uint64(info.Size())
	}

	return &Storage{f: f, end: end}, nil
}

/*
Open reads the header at offset 0 and verifies the signature, returning
ErrInvalidFormat if the file does not begin with "DOTA".
*/
func Open(f *os.File) (*Storage, error) {
	buf := make([]byte, 4)

	if _, err := f.ReadAt(buf, 0); err != nil {
		return nil, ioErrorf(err, "reading signature: %v", err)
	}

	if string(buf) != signature {
		return nil, &StorageError{Type: ErrInvalidFormat, Detail: "missing DOTA signature"}
	}

	info, err := f.Stat()
	if err != nil {
		return nil, ioErrorf(err, "stat: %v", err)
	}

	return &Storage{f: f, end: uint64(info.Size())}, nil
}

/*
Size returns the current size of the backing file, including tombstoned
records that are no longer reachable (spec §9, "Unbounded allocations").
*/
func (s *Storage) Size() uint64 {
	return s.end
}

/*
FirstVertex returns a handle to the head of the vertex list (Valid() is
false if the list is empty).
*/
func (s *Storage) FirstVertex() (VertexHandle, error) {
	offset, err := s.head(headerVertices)
	return VertexHandle{Handle{s, offset}}, err
}

/*
FirstEdge returns a handle to the head of the edge list.
*/
func (s *Storage) FirstEdge() (EdgeHandle, error) {
	offset, err := s.head(headerEdges)
	return EdgeHandle{Handle{s, offset}}, err
}

/*
VertexNext advances to the vertex list node following h.
*/
func (s *Storage) VertexNext(h VertexHandle) (VertexHandle, error) {
	offset, err := s.nodeNext(h.Offset)
	return VertexHandle{Handle{s, offset}}, err
}

/*
EdgeNext advances to the edge list node following h.
*/
func (s *Storage) EdgeNext(h EdgeHandle) (EdgeHandle, error) {
	offset, err := s.nodeNext(h.Offset)
	return EdgeHandle{Handle{s, offset}}, err
}

/*
CreateVertex appends a zeroed vertex record (empty labels and attributes
lists) and links it at the tail of the vertex list.
*/
func (s *Storage) CreateVertex() (VertexHandle, error) {
	recordOffset, err := s.appendBytes(make([]byte, vertexRecordSize))
	if err != nil {
		return VertexHandle{}, err
	}

	nodeOffset, err := s.listAppend(headerVertices, recordOffset)
	if err != nil {
		return VertexHandle{}, err
	}

	return VertexHandle{Handle{s, nodeOffset}}, nil
}

/*
CreateEdge appends a zeroed edge record (no label, no endpoints) and links
it at the tail of the edge list. Callers must set the endpoints before the
edge participates in matching.
*/
func (s *Storage) CreateEdge() (EdgeHandle, error) {
	recordOffset, err := s.appendBytes(make([]byte, edgeRecordSize))
	if err != nil {
		return EdgeHandle{}, err
	}

	nodeOffset, err := s.listAppend(headerEdges, recordOffset)
	if err != nil {
		return EdgeHandle{}, err
	}

	return EdgeHandle{Handle{s, nodeOffset}}, nil
}

/*
VertexDrop unlinks h from the vertex list. The caller (the request
dispatcher) is responsible for refusing to drop a vertex still referenced
by a reachable edge (spec §3.2); Storage itself performs no such check.
*/
func (s *Storage) VertexDrop(h VertexHandle) error {
	return s.listRemove(headerVertices, h.Offset)
}

/*
EdgeDrop unlinks h from the edge list.
*/
func (s *Storage) EdgeDrop(h EdgeHandle) error {
	return s.listRemove(headerEdges, h.Offset)
}

/*
VertexEquals reports whether a and b denote the same vertex.
*/
func VertexEquals(a, b VertexHandle) bool {
	return a.s == b.s && a.Offset == b.Offset
}

/*
EdgeEquals reports whether a and b denote the same edge.
*/
func EdgeEquals(a, b EdgeHandle) bool {
	return a.s == b.s && a.Offset == b.Offset
}

/*
recordOffset resolves the handle's node to the offset of the record it
points at.
*/
func (s *Storage) recordOffset(h Handle) (uint64, error) {
	return s.nodeValue(h.Offset)
}

func (h VertexHandle) vertexRecordOffset() (uint64, error) {
	return h.s.recordOffset(h.Handle)
}

func (h EdgeHandle) edgeRecordOffset() (uint64, error) {
	return h.s.recordOffset(h.Handle)
}

func (h VertexHandle) labelsList() (listRef, error) {
	recordOffset, err := h.vertexRecordOffset()
	if err != nil {
		return listRef{}, err
	}
	return listRef{
		headOffset: recordOffset + vertexLabelsHeadOffset,
		tailOffset: recordOffset + vertexLabelsTailOffset,
	}, nil
}

func (h VertexHandle) attributesList() (listRef, error) {
	recordOffset, err := h.vertexRecordOffset()
	if err != nil {
		return listRef{}, err
	}
	return listRef{
		headOffset: recordOffset + vertexAttributesHeadOffset,
		tailOffset: recordOffset + vertexAttributesTailOffset,
	}, nil
}
