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
Package console implements a minimal line-oriented administrative client
for a running dotadb server. There is no textual query parser in scope
(spec.md §1 places it with the external collaborators), so the console
offers a small fixed set of named commands that build query.Request
values directly and send them over protocol, rather than parsing
arbitrary query text. It exists so the repository has a runnable manual
test client for server/protocol; it carries no operator semantics of
its own.
*/
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/krotik/dotadb/protocol"
	"github.com/krotik/dotadb/query"
)

/*
Console reads commands from in, sends the corresponding request over
conn, and writes the response to out.
*/
type Console struct {
	conn io.ReadWriter
	in   *bufio.Scanner
	out  io.Writer
}

/*
NewConsole creates a Console bound to an already-connected conn.
*/
func NewConsole(conn io.ReadWriter, in io.Reader, out io.Writer) *Console {
	return &Console{conn: conn, in: bufio.NewScanner(in), out: out}
}

/*
command is one named console action: a no-argument builder for the
query.Request it sends.
*/
type command struct {
	name        string
	description string
	build       func() query.Request
}

var commands = []command{
	{
		name:        "ping",
		description: "list up to 1000 reachable vertices",
		build: func() query.Request {
			limit := 1000
			return query.Request{
				Operator:    query.Return,
				Match:       &query.MatchSpec{Vertices: []query.VertexSpec{{Name: "n"}}},
				Projections: []query.Projection{{Name: "n"}},
				Limit:       &limit,
			}
		},
	},
}

/*
Help writes the list of known commands to out.
*/
func (c *Console) Help() {
	fmt.Fprintln(c.out, "known commands:")
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %-10s %s\n", cmd.name, cmd.description)
	}
	fmt.Fprintln(c.out, "  quit       close the console")
}

/*
RunOnce reads and processes a single line. It returns false once the
input is exhausted or "quit" was entered.
*/
func (c *Console) RunOnce() (bool, error) {
	if !c.in.Scan() {
		return false, c.in.Err()
	}

	line := strings.TrimSpace(c.in.Text())
	switch {
	case line == "":
		return true, nil
	case line == "quit" || line == "exit":
		return false, nil
	case line == "help":
		c.Help()
		return true, nil
	}

	for _, cmd := range commands {
		if cmd.name != line {
			continue
		}

		req := cmd.build()
		if err := protocol.WriteRequest(c.conn, req); err != nil {
			return false, err
		}

		resp, err := protocol.ReadResponse(c.conn)
		if err != nil {
			return false, err
		}

		c.printResponse(resp)
		return true, nil
	}

	fmt.Fprintf(c.out, "unknown command %q (try \"help\")\n", line)
	return true, nil
}

/*
Run processes lines until input is exhausted or "quit" is entered.
*/
func (c *Console) Run() error {
	for {
		more, err := c.RunOnce()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (c *Console) printResponse(resp query.Response) {
	if resp.Err != "" {
		fmt.Fprintln(c.out, "error:", resp.Err)
		return
	}
	if resp.Amount != nil {
		fmt.Fprintln(c.out, "amount:", *resp.Amount)
		return
	}
	if resp.Table != nil {
		fmt.Fprintln(c.out, strings.Join(resp.Table.Columns, "\t"))
		for _, row := range resp.Table.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = formatCell(cell)
			}
			fmt.Fprintln(c.out, strings.Join(cells, "\t"))
		}
	}
}

func formatCell(cell query.Cell) string {
	switch {
	case cell.Null:
		return "NULL"
	case cell.Vertex != nil:
		return fmt.Sprintf("%v", cell.Vertex)
	default:
		return cell.Scalar
	}
}
