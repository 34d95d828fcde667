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
Package server implements the TCP accept loop described in spec §5/§6.3:
one connection at a time, requests served serially, with SIGINT/SIGTERM
raising a shutdown flag checked between accepted connections and between
decoded requests.
*/
package server

import (
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/krotik/common/bitutil"
	"github.com/krotik/common/flowutil"
	"github.com/krotik/common/logutil"

	"github.com/krotik/dotadb/protocol"
	"github.com/krotik/dotadb/query"
	"github.com/krotik/dotadb/storage"
)

var log = logutil.GetLogger("server")

/*
Events publishes server lifecycle notifications ("shutdown-requested",
"request-served"); nothing in this package requires an observer, but it
gives an embedder (the console, a test, an operator hook) somewhere to
attach without touching the accept loop itself.
*/
var Events = flowutil.NewEventPump()

/*
Server serves one storage instance over raw TCP, one connection and one
request at a time (spec §5's single-threaded cooperative scheduling
model: no two requests ever execute concurrently, so the backing file
descriptor needs no locking of its own here).
*/
type Server struct {
	s        *storage.Storage
	shutdown int32

	mu       sync.Mutex
	listener net.Listener
}

/*
New wraps s for serving.
*/
func New(s *storage.Storage) *Server {
	return &Server{s: s}
}

/*
Addr returns the address the server is currently listening on, or nil
if Serve has not yet bound a listener (e.g. before the accept loop
starts, or after it has stopped).
*/
func (srv *Server) Addr() net.Addr {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

/*
Serve listens on address and accepts connections until a SIGINT/SIGTERM
is received, at which point it finishes the in-flight request (if any)
and returns nil. It returns a non-nil error when the listener cannot be
bound or an accept fails outside shutdown, and when a request failed
because of the backing file itself (spec §7: Io on the backing file
terminates the server, as opposed to Io on a client socket, which
terminates only that connection).
*/
func (srv *Server) Serve(address string) error {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	srv.mu.Lock()
	srv.listener = l
	srv.mu.Unlock()
	defer l.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	go func() {
		<-sig
		Events.PostEvent("shutdown-requested", srv)
		atomic.StoreInt32(&srv.shutdown, 1)
		l.Close()
	}()

	log.Info("listening on ", address)

	for {
		if atomic.LoadInt32(&srv.shutdown) == 1 {
			return nil
		}

		conn, err := l.Accept()
		if err != nil {
			if atomic.LoadInt32(&srv.shutdown) == 1 {
				return nil
			}
			return err
		}

		err = srv.handleConnection(conn)
		conn.Close()

		if err != nil {
			log.Error("backing file failure, shutting down: ", err)
			return err
		}
	}
}

/*
handleConnection serves requests from conn serially until the connection
closes, a read/write on it fails, or shutdown is requested. A nil return
means the connection ended for an ordinary reason (EOF, client socket
error, shutdown); a non-nil return means the backing file itself failed
and the whole server must stop (spec §7).
*/
func (srv *Server) handleConnection(conn net.Conn) error {
	for {
		if atomic.LoadInt32(&srv.shutdown) == 1 {
			return nil
		}

		req, err := protocol.ReadRequest(conn)
		if err != nil {
			if err != io.EOF {
				log.Warning("closing connection after a read failure: ", err)
			}
			return nil
		}

		resp, err := query.Execute(srv.s, &req)
		if err != nil {
			return err
		}

		if err := protocol.WriteResponse(conn, *resp); err != nil {
			log.Warning("closing connection after a write failure: ", err)
			return nil
		}

		if resp.Amount != nil && *resp.Amount > 0 {
			// Mutations never reclaim space (spec §3.3/§9): every applied
			// change only grows the backing file, so its size is worth a
			// breadcrumb for an operator watching disk usage.
			log.Info("store is now ", bitutil.ByteSizeString(int64(srv.s.Size()), false))
		}

		Events.PostEvent("request-served", &req)
	}
}
