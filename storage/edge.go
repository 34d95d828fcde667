package storage

/*
EdgeGetSource returns the vertex handle an edge's source field points at.
*/
func (s *Storage) EdgeGetSource(e EdgeHandle) (VertexHandle, error) {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return VertexHandle{}, err
	}

	offset, err := s.readUint64(recordOffset + edgeSourceOffset)
	return VertexHandle{Handle{s, offset}}, err
}

/*
EdgeSetSource retargets an edge's source field to v. The storage layer
performs no reachability check; that is the dispatcher's job (spec §4.1).
*/
func (s *Storage) EdgeSetSource(e EdgeHandle, v VertexHandle) error {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return err
	}

	return s.writeUint64(recordOffset+edgeSourceOffset, v.Offset)
}

/*
EdgeGetDestination returns the vertex handle an edge's destination field
points at.
*/
func (s *Storage) EdgeGetDestination(e EdgeHandle) (VertexHandle, error) {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return VertexHandle{}, err
	}

	offset, err := s.readUint64(recordOffset + edgeDestOffset)
	return VertexHandle{Handle{s, offset}}, err
}

/*
EdgeSetDestination retargets an edge's destination field to v.
*/
func (s *Storage) EdgeSetDestination(e EdgeHandle, v VertexHandle) error {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return err
	}

	return s.writeUint64(recordOffset+edgeDestOffset, v.Offset)
}

/*
EdgeGetLabel returns the edge's label, and whether one is set (an edge
has at most one label, spec §3.2).
*/
func (s *Storage) EdgeGetLabel(e EdgeHandle) (string, bool, error) {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return "", false, err
	}

	labelPtr, err := s.readUint64(recordOffset + edgeLabelOffset)
	if err != nil {
		return "", false, err
	}

	if labelPtr == 0 {
		return "", false, nil
	}

	label, err := s.readString(labelPtr)
	return label, true, err
}

/*
EdgeSetLabel allocates a fresh string for label and retargets the edge's
label pointer at it; the previous label string, if any, becomes unreachable.
*/
func (s *Storage) EdgeSetLabel(e EdgeHandle, label string) error {
	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return err
	}

	labelOffset, err := s.appendString(label)
	if err != nil {
		return err
	}

	return s.writeUint64(recordOffset+edgeLabelOffset, labelOffset)
}

/*
EdgeRemoveLabel clears the edge's label if it currently equals label; a
mismatch is a no-op (spec §4.1).
*/
func (s *Storage) EdgeRemoveLabel(e EdgeHandle, label string) error {
	current, ok, err := s.EdgeGetLabel(e)
	if err != nil || !ok || current != label {
		return err
	}

	recordOffset, err := e.edgeRecordOffset()
	if err != nil {
		return err
	}

	return s.writeUint64(recordOffset+edgeLabelOffset, 0)
}
