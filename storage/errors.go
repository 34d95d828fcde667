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
Package storage implements the on-disk "DOTA" graph format: a header
anchoring two intrusive singly-linked lists (vertices, edges), vertex
records carrying their own labels/attributes lists, and edge records
carrying endpoint and label pointers. All addressing is by absolute
file offset; a handle is the offset of a list node, never the offset
of the record the node points at.

Everything is append-only. Drop operations unlink list nodes but never
overwrite or reclaim the bytes of the record they pointed to.
*/
package storage

import (
	"errors"
	"fmt"
)

/*
StorageError wraps a failure with the sentinel Type it belongs to, following
the shape of graph/util.GraphError in the project this package is modeled on.
Cause, when set, is the underlying OS error (e.g. a *fs.PathError wrapping a
syscall.Errno); it is exposed through Unwrap so callers can drill down to it
with errors.As while errors.Is(err, ErrIo) still matches via Is.
*/
type StorageError struct {
	Type   error  // Error type, for equality checks via errors.Is
	Detail string // Human readable detail
	Cause  error  // Underlying error, if any
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *StorageError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %v", e.Type, e.Detail)
	}
	return e.Type.Error()
}

/*
Unwrap exposes the underlying cause, if any, for errors.As.
*/
func (e *StorageError) Unwrap() error {
	return e.Cause
}

/*
Is reports whether target is this error's sentinel Type, for errors.Is.
*/
func (e *StorageError) Is(target error) bool {
	return target == e.Type
}

/*
Storage-layer error kinds (spec §7).
*/
var (
	ErrIo            = errors.New("io error")
	ErrInvalidArg    = errors.New("invalid argument")
	ErrInvalidFormat = errors.New("invalid format")
)

func ioErrorf(cause error, format string, args ...interface{}) error {
	return &StorageError{Type: ErrIo, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

func invalidArgf(format string, args ...interface{}) error {
	return &StorageError{Type: ErrInvalidArg, Detail: fmt.Sprintf(format, args...)}
}
