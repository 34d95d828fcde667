package storage

/*
FirstLabel returns a handle to the head of v's labels list.
*/
func (s *Storage) FirstLabel(v VertexHandle) (LabelHandle, error) {
	lr, err := v.labelsList()
	if err != nil {
		return LabelHandle{}, err
	}

	offset, err := s.head(lr)
	return LabelHandle{Handle{s, offset}}, err
}

/*
LabelNext advances to the labels list node following h.
*/
func (s *Storage) LabelNext(h LabelHandle) (LabelHandle, error) {
	offset, err := s.nodeNext(h.Offset)
	return LabelHandle{Handle{s, offset}}, err
}

/*
LabelGet returns the string value a label handle points at.
*/
func (s *Storage) LabelGet(h LabelHandle) (string, error) {
	valueOffset, err := s.nodeValue(h.Offset)
	if err != nil {
		return "", err
	}
	return s.readString(valueOffset)
}

/*
FirstAttribute returns a handle to the head of v's attributes list.
*/
func (s *Storage) FirstAttribute(v VertexHandle) (AttributeHandle, error) {
	lr, err := v.attributesList()
	if err != nil {
		return AttributeHandle{}, err
	}

	offset, err := s.head(lr)
	return AttributeHandle{Handle{s, offset}}, err
}

/*
AttributeNext advances to the attributes list node following h.
*/
func (s *Storage) AttributeNext(h AttributeHandle) (AttributeHandle, error) {
	offset, err := s.nodeNext(h.Offset)
	return AttributeHandle{Handle{s, offset}}, err
}

/*
AttributeGet returns the name and current value of an attribute handle.
ok is false if the attribute has been removed (its value pointer is 0);
the attribute record itself still exists in the list (spec §3.3).
*/
func (s *Storage) AttributeGet(h AttributeHandle) (name string, value string, ok bool, err error) {
	recordOffset, err := s.nodeValue(h.Offset)
	if err != nil {
		return "", "", false, err
	}

	name, err = s.readString(recordOffset)
	if err != nil {
		return "", "", false, err
	}

	valuePtr, err := s.readUint64(recordOffset + stringSize(name))
	if err != nil {
		return "", "", false, err
	}

	if valuePtr == 0 {
		return name, "", false, nil
	}

	value, err = s.readString(valuePtr)
	if err != nil {
		return "", "", false, err
	}

	return name, value, true, nil
}

/*
findLabel scans v's labels list for a node whose string value equals
label, returning its handle and whether it was found.
*/
func (s *Storage) findLabel(v VertexHandle, label string) (LabelHandle, bool, error) {
	for h, err := s.FirstLabel(v); ; h, err = s.LabelNext(h) {
		if err != nil {
			return LabelHandle{}, false, err
		}
		if !h.Valid() {
			return LabelHandle{}, false, nil
		}

		value, err := s.LabelGet(h)
		if err != nil {
			return LabelHandle{}, false, err
		}

		if value == label {
			return h, true, nil
		}
	}
}

/*
VertexHasLabel reports whether v carries the given label.
*/
func (s *Storage) VertexHasLabel(v VertexHandle, label string) (bool, error) {
	_, found, err := s.findLabel(v, label)
	return found, err
}

/*
VertexAddLabel adds label to v. Adding a label v already carries is a
no-op (spec §3.2, labels are unique within a vertex).
*/
func (s *Storage) VertexAddLabel(v VertexHandle, label string) error {
	_, found, err := s.findLabel(v, label)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	lr, err := v.labelsList()
	if err != nil {
		return err
	}

	valueOffset, err := s.appendString(label)
	if err != nil {
		return err
	}

	_, err = s.listAppend(lr, valueOffset)
	return err
}

/*
VertexRemoveLabel removes label from v if present. Removing a label v does
not carry is a no-op.
*/
func (s *Storage) VertexRemoveLabel(v VertexHandle, label string) error {
	h, found, err := s.findLabel(v, label)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	lr, err := v.labelsList()
	if err != nil {
		return err
	}

	return s.listRemove(lr, h.Offset)
}

/*
findAttribute scans v's attributes list for a node whose name matches,
regardless of whether it currently carries a value.
*/
func (s *Storage) findAttribute(v VertexHandle, name string) (AttributeHandle, bool, error) {
	for h, err := s.FirstAttribute(v); ; h, err = s.AttributeNext(h) {
		if err != nil {
			return AttributeHandle{}, false, err
		}
		if !h.Valid() {
			return AttributeHandle{}, false, nil
		}

		attrName, _, _, err := s.AttributeGet(h)
		if err != nil {
			return AttributeHandle{}, false, err
		}

		if attrName == name {
			return h, true, nil
		}
	}
}

/*
VertexGetAttribute returns the current value of the named attribute and
whether it is set.
*/
func (s *Storage) VertexGetAttribute(v VertexHandle, name string) (string, bool, error) {
	h, found, err := s.findAttribute(v, name)
	if err != nil || !found {
		return "", false, err
	}

	_, value, ok, err := s.AttributeGet(h)
	return value, ok, err
}

/*
VertexSetAttribute upserts the named attribute: if it already exists, its
value pointer is retargeted to a freshly appended string (the previous
string becomes unreachable, spec §3.3); otherwise a new attribute record
is appended and linked.
*/
func (s *Storage) VertexSetAttribute(v VertexHandle, name string, value string) error {
	valueOffset, err := s.appendString(value)
	if err != nil {
		return err
	}

	h, found, err := s.findAttribute(v, name)
	if err != nil {
		return err
	}

	if found {
		recordOffset, err := s.nodeValue(h.Offset)
		if err != nil {
			return err
		}
		return s.writeUint64(recordOffset+stringSize(name), valueOffset)
	}

	lr, err := v.attributesList()
	if err != nil {
		return err
	}

	nameSize := stringSize(name)
	buf := make([]byte, nameSize+offsetSize)
	copy(buf, mustEncodeString(name))
	encodeUint64(buf[nameSize:], valueOffset)

	recordOffset, err := s.appendBytes(buf)
	if err != nil {
		return err
	}

	_, err = s.listAppend(lr, recordOffset)
	return err
}

/*
VertexRemoveAttribute unsets the named attribute by clearing its value
pointer; the attribute record itself remains in the list (spec §3.3). A
remove of an attribute that was never set, or is already unset, is a no-op.
*/
func (s *Storage) VertexRemoveAttribute(v VertexHandle, name string) error {
	h, found, err := s.findAttribute(v, name)
	if err != nil || !found {
		return err
	}

	recordOffset, err := s.nodeValue(h.Offset)
	if err != nil {
		return err
	}

	return s.writeUint64(recordOffset+stringSize(name), 0)
}
