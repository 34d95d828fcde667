package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/krotik/common/errorutil"
)

/*
signature is the exact 4 magic bytes every DOTA file starts with.
*/
const signature = "DOTA"

/*
Byte layout constants (spec §6.1). Every record has a deterministic
serialized size; only String and Attribute records are variable length,
and both carry an explicit 8-byte length prefix.
*/
const (
	offsetSize = 8 // size of a single u64 file offset / length field

	headerSignatureOffset = 0
	headerVHeadOffset     = headerSignatureOffset + 4
	headerVTailOffset     = headerVHeadOffset + offsetSize
	headerEHeadOffset     = headerVTailOffset + offsetSize
	headerETailOffset     = headerEHeadOffset + offsetSize
	headerSize            = headerETailOffset + offsetSize

	nodeNextOffset  = 0
	nodeValueOffset = offsetSize
	nodeSize        = nodeValueOffset + offsetSize

	vertexLabelsHeadOffset     = 0
	vertexLabelsTailOffset     = vertexLabelsHeadOffset + offsetSize
	vertexAttributesHeadOffset = vertexLabelsTailOffset + offsetSize
	vertexAttributesTailOffset = vertexAttributesHeadOffset + offsetSize
	vertexRecordSize           = vertexAttributesTailOffset + offsetSize

	edgeLabelOffset = 0
	edgeSourceOffset = edgeLabelOffset + offsetSize
	edgeDestOffset   = edgeSourceOffset + offsetSize
	edgeRecordSize   = edgeDestOffset + offsetSize
)

/*
readUint64 reads a little-endian u64 at an absolute file offset.
*/
func (s *Storage) readUint64(offset uint64) (uint64, error) {
	var buf [offsetSize]byte
	if _, err := s.f.ReadAt(buf[:], int64(offset)); err != nil {
		return 0, ioErrorf(err, "reading u64 at %d: %v", offset, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

/*
writeUint64 writes a little-endian u64 at an absolute file offset.
*/
func (s *Storage) writeUint64(offset uint64, v uint64) error {
	var buf [offsetSize]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := s.f.WriteAt(buf[:], int64(offset)); err != nil {
		return ioErrorf(err, "writing u64 at %d: %v", offset, err)
	}
	return nil
}

/*
readString reads a length-prefixed string record at an absolute offset.
An offset of 0 denotes "no string" and is never passed in here by callers.
*/
func (s *Storage) readString(offset uint64) (string, error) {
	length, err := s.readUint64(offset)
	if err != nil {
		return "", err
	}

	if length == 0 {
		return "", nil
	}

	buf := make([]byte, length)
	if _, err := s.f.ReadAt(buf, int64(offset+offsetSize)); err != nil {
		return "", ioErrorf(err, "reading string body at %d: %v", offset, err)
	}

	return string(buf), nil
}

/*
stringSize returns the serialized size in bytes of a string record holding value.
*/
func stringSize(value string) uint64 {
	return offsetSize + uint64(len(value))
}

/*
appendBytes appends raw bytes at end-of-file and returns their offset.
*/
func (s *Storage) appendBytes(data []byte) (uint64, error) {
	offset := s.end

	if _, err := s.f.WriteAt(data, int64(offset)); err != nil {
		return 0, ioErrorf(err, "appending %d bytes at %d: %v", len(data), offset, err)
	}

	s.end += uint64(len(data))

	return offset, nil
}

/*
appendString appends a new length-prefixed string record at end-of-file.
*/
func (s *Storage) appendString(value string) (uint64, error) {
	return s.appendBytes(mustEncodeString(value))
}

/*
mustEncodeString renders value as a length-prefixed string record.
*/
func mustEncodeString(value string) []byte {
	buf := make([]byte, stringSize(value))
	binary.LittleEndian.PutUint64(buf[:offsetSize], uint64(len(value)))
	copy(buf[offsetSize:], value)
	return buf
}

/*
encodeUint64 writes v little-endian into the first 8 bytes of buf.
*/
func encodeUint64(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf[:offsetSize], v)
}

/*
appendNode appends a fresh list node {next: 0, value: value} at end-of-file
and returns the node's offset, which is also the handle to whatever it points at.
*/
func (s *Storage) appendNode(value uint64) (uint64, error) {
	buf := make([]byte, nodeSize)
	binary.LittleEndian.PutUint64(buf[nodeNextOffset:], 0)
	binary.LittleEndian.PutUint64(buf[nodeValueOffset:], value)
	return s.appendBytes(buf)
}

/*
nodeNext returns the next-pointer stored in the list node at nodeOffset.
*/
func (s *Storage) nodeNext(nodeOffset uint64) (uint64, error) {
	return s.readUint64(nodeOffset + nodeNextOffset)
}

/*
nodeValue returns the value-pointer stored in the list node at nodeOffset.
*/
func (s *Storage) nodeValue(nodeOffset uint64) (uint64, error) {
	return s.readUint64(nodeOffset + nodeValueOffset)
}

/*
listRef identifies the on-disk location of a list's head/tail fields. The
same list algorithms serve the header's top-level vertex/edge lists and a
vertex record's embedded labels/attributes lists: both are just a pair of
u64 fields at a known file offset.
*/
type listRef struct {
	headOffset uint64
	tailOffset uint64
}

/*
head returns the list's current head node offset (0 if empty).
*/
func (s *Storage) head(lr listRef) (uint64, error) {
	return s.readUint64(lr.headOffset)
}

/*
tail returns the list's current tail node offset (0 if empty).
*/
func (s *Storage) tail(lr listRef) (uint64, error) {
	return s.readUint64(lr.tailOffset)
}

/*
listAppend appends a fresh node wrapping value to the tail of the list and
returns the new node's offset (spec §4.1 "Append-to-tail").
*/
func (s *Storage) listAppend(lr listRef, value uint64) (uint64, error) {
	tail, err := s.tail(lr)
	if err != nil {
		return 0, err
	}

	nodeOffset, err := s.appendNode(value)
	if err != nil {
		return 0, err
	}

	if tail == 0 {
		if err := s.writeUint64(lr.headOffset, nodeOffset); err != nil {
			return 0, err
		}
	} else {
		if err := s.writeUint64(tail+nodeNextOffset, nodeOffset); err != nil {
			return 0, err
		}
	}

	if err := s.writeUint64(lr.tailOffset, nodeOffset); err != nil {
		return 0, err
	}

	return nodeOffset, nil
}

/*
listRemove unlinks node from the list by rewriting its predecessor's next
pointer (or the list head if node was first). The node's bytes, and the
bytes of whatever it points to, are never reclaimed (spec §3.3, §4.1).
*/
func (s *Storage) listRemove(lr listRef, node uint64) error {
	head, err := s.head(lr)
	if err != nil {
		return err
	}

	tail, err := s.tail(lr)
	if err != nil {
		return err
	}

	errorutil.AssertTrue((head == 0) == (tail == 0),
		fmt.Sprintf("list at %d is malformed: head=%d tail=%d", lr.headOffset, head, tail))

	if head == 0 && tail == 0 {
		return nil
	}

	if head == node {
		if tail == node {
			if err := s.writeUint64(lr.headOffset, 0); err != nil {
				return err
			}
			return s.writeUint64(lr.tailOffset, 0)
		}

		next, err := s.nodeNext(node)
		if err != nil {
			return err
		}

		return s.writeUint64(lr.headOffset, next)
	}

	prev := head

	for prev != 0 {
		prevNext, err := s.nodeNext(prev)
		if err != nil {
			return err
		}

		if prevNext == node {
			nodeNext, err := s.nodeNext(node)
			if err != nil {
				return err
			}

			if err := s.writeUint64(prev+nodeNextOffset, nodeNext); err != nil {
				return err
			}

			if tail == node {
				return s.writeUint64(lr.tailOffset, prev)
			}

			return nil
		}

		prev = prevNext
	}

	return invalidArgf("node %d is not an element of this list", node)
}
