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
dotadb is a small file-backed property graph database exposing a
Cypher-like query language over a length-prefixed TCP protocol.

Usage:

	dotadb <path>

If <path> exists and is non-empty it is opened and its signature
verified; otherwise a fresh store is created and initialized there
(spec.md §6.3). The server
then listens on ListenHost:ListenPort (default 0.0.0.0:9002) until
SIGINT or SIGTERM is received, at which point it finishes the in-flight
request and exits.
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/krotik/common/lockutil"
	"github.com/krotik/common/logutil"

	"github.com/krotik/dotadb/config"
	"github.com/krotik/dotadb/server"
	"github.com/krotik/dotadb/storage"
)

var log = logutil.GetLogger("main")

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: dotadb <path>")
		return 1
	}

	path := os.Args[1]

	config.LoadDefaultConfig()

	lf := lockutil.NewLockFile(path+".lock",
		time.Duration(config.Int(config.LockfileCheckInterval))*time.Second)

	if err := lf.Start(); err != nil {
		log.Error("another instance appears to already be serving ", path, ": ", err)
		return 1
	}
	defer lf.Finish()

	s, err := openOrInit(path)
	if err != nil {
		log.Error("failed to open ", path, ": ", err)
		return exitCode(err)
	}

	address := config.Str(config.ListenHost) + ":" + config.Str(config.ListenPort)

	if err := server.New(s).Serve(address); err != nil {
		log.Error("server stopped: ", err)
		return exitCode(err)
	}

	return 0
}

/*
openOrInit implements spec.md §6.3's process surface: open <path> if it
already holds data, verifying its signature; otherwise create it and
write a fresh header.
*/
func openOrInit(path string) (*storage.Storage, error) {
	info, statErr := os.Stat(path)
	exists := statErr == nil && info.Size() > 0

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	if exists {
		return storage.Open(f)
	}
	return storage.Init(f)
}

/*
exitCode maps a fatal startup error to the OS errno it wraps, per
spec.md §6.3 ("Exit code is the C errno on fatal startup failure"); an
error without an underlying errno exits 1.
*/
func exitCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 1
}
