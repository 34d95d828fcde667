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
Package protocol implements the wire framing described in spec §6.2: each
message is a u32 network-byte-order length prefix followed by that many
bytes of a gob-encoded envelope. Encoding is deliberately opaque to the
core packages (storage/match/filter/query) — only the server and the
console import this package.
*/
package protocol

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/krotik/common/pools"

	"github.com/krotik/dotadb/filter"
	"github.com/krotik/dotadb/query"
)

/*
framePool recycles the scratch buffers used to gob-encode a frame before
it is written to a connection, avoiding a fresh allocation per request.
*/
var framePool = pools.NewByteBufferPool()

/*
maxFrameSize bounds how large a single incoming frame is allowed to be,
so a corrupt or hostile length prefix cannot make ReadFrame attempt to
allocate an unbounded buffer.
*/
const maxFrameSize = 64 * 1024 * 1024

func init() {
	// Every concrete filter.Expr implementation must be registered so
	// gob can encode/decode the interface field on Envelope.
	gob.Register(&filter.Equals{})
	gob.Register(&filter.Label{})
	gob.Register(&filter.Not{})
	gob.Register(&filter.And{})
	gob.Register(&filter.Or{})
}

/*
Envelope is the request half of the wire schema (spec §6.2): the decoded
form is query.Request, gob being the structured-record encoding in use.
*/
type Envelope struct {
	Request query.Request
}

/*
ResultEnvelope is the response half of the wire schema: the tagged union
is represented directly by query.Response's optional fields.
*/
type ResultEnvelope struct {
	Response query.Response
}

/*
WriteFrame gob-encodes v (an Envelope or a ResultEnvelope) into a pooled
buffer and writes it to w as a u32-length-prefixed frame.
*/
func WriteFrame(w io.Writer, v interface{}) error {
	buf := framePool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		framePool.Put(buf)
	}()

	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return err
	}

	if buf.Len() > maxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds the %d byte limit", buf.Len(), maxFrameSize)
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(buf.Len()))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

/*
ReadFrame reads one u32-length-prefixed frame from r and gob-decodes it
into v (an *Envelope or *ResultEnvelope).
*/
func ReadFrame(r io.Reader, v interface{}) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > maxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds the %d byte limit", size, maxFrameSize)
	}

	buf := framePool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		framePool.Put(buf)
	}()

	if _, err := io.CopyN(buf, r, int64(size)); err != nil {
		return err
	}

	return gob.NewDecoder(buf).Decode(v)
}

/*
WriteRequest and ReadRequest/ReadResponse/WriteResponse are thin,
type-safe wrappers over WriteFrame/ReadFrame for the two message
directions a connection actually uses.
*/
func WriteRequest(w io.Writer, req query.Request) error {
	return WriteFrame(w, &Envelope{Request: req})
}

func ReadRequest(r io.Reader) (query.Request, error) {
	var env Envelope
	err := ReadFrame(r, &env)
	return env.Request, err
}

func WriteResponse(w io.Writer, resp query.Response) error {
	return WriteFrame(w, &ResultEnvelope{Response: resp})
}

func ReadResponse(r io.Reader) (query.Response, error) {
	var env ResultEnvelope
	err := ReadFrame(r, &env)
	return env.Response, err
}
