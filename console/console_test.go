package console

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"github.com/krotik/dotadb/protocol"
	"github.com/krotik/dotadb/query"
)

func TestConsolePing(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	go func() {
		req, err := protocol.ReadRequest(srv)
		if err != nil {
			return
		}

		amount := uint64(0)
		_ = req
		protocol.WriteResponse(srv, query.Response{Amount: &amount})
	}()

	var out bytes.Buffer
	c := NewConsole(client, strings.NewReader("ping\n"), &out)

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "amount: 0") {
		t.Errorf("expected amount output, got %q", out.String())
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(nil, strings.NewReader("bogus\nquit\n"), &out)

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("expected unknown command message, got %q", out.String())
	}
}
