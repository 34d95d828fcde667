package server

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/krotik/dotadb/protocol"
	"github.com/krotik/dotadb/query"
	"github.com/krotik/dotadb/storage"
)

func tempStorage(t *testing.T) *storage.Storage {
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

	return s
}

func TestServeRoundTripsOneRequest(t *testing.T) {
	s := tempStorage(t)
	srv := New(s)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve("127.0.0.1:0") }()

	// Give the listener a moment to bind before connecting.
	var addr net.Addr
	for i := 0; i < 100 && addr == nil; i++ {
		time.Sleep(time.Millisecond)
		addr = srv.Addr()
	}
	if addr == nil {
		t.Fatal("server never started listening")
	}

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	one := 1
	req := query.Request{
		Operator: query.Create,
		Create:   &query.MatchSpec{Vertices: []query.VertexSpec{{Name: "a"}}},
		Limit:    &one,
	}

	if err := protocol.WriteRequest(conn, req); err != nil {
		t.Fatal(err)
	}

	resp, err := protocol.ReadResponse(conn)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Amount == nil || *resp.Amount != 1 {
		t.Fatalf("expected amount 1, got %+v", resp)
	}

	conn.Close()
}
