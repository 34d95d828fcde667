/*
 * dotadb
 *
 * Copyright 2026 The dotadb Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"github.com/krotik/dotadb/filter"
	"github.com/krotik/dotadb/match"
	"github.com/krotik/dotadb/storage"
)

/*
Execute runs req against s and returns the response to send back to the
client. The returned error is non-nil only for failures against the
backing file itself (spec §7's Io class) — these are not encoded into the
Response, since the caller (package server) treats them as fatal and
shuts the connection, and eventually the process, down rather than
reporting them to the client as an ordinary result. Every other failure
(Semantic, the static WHERE/pattern checks) comes back as a populated
Response.Err with a nil error.
*/
func Execute(s *storage.Storage, req *Request) (*Response, error) {
	pattern, err := BuildPattern(req.Match)
	if err != nil {
		return errorResponse(err), nil
	}

	if req.Where != nil {
		if pattern == nil {
			return errorResponse(ErrWhereWithoutMatch), nil
		}
		if err := filter.Validate(req.Where, pattern); err != nil {
			return errorResponse(err), nil
		}
	}

	switch req.Operator {
	case Create:
		return dispatchCreate(s, pattern, req)
	case Set:
		return dispatchSet(s, pattern, req)
	case Remove:
		return dispatchRemove(s, pattern, req)
	case Delete:
		return dispatchDelete(s, pattern, req)
	case Return:
		return dispatchReturn(s, pattern, req)
	}

	return errorResponse(ErrBadRequest), nil
}

/*
evalWhere evaluates an optional WHERE expression against the iterator's
current assignment; a nil expression always passes.
*/
func evalWhere(s *storage.Storage, pattern *match.Pattern, it *match.Iterator, where filter.Expr) (bool, error) {
	if where == nil {
		return true, nil
	}
	return where.Eval(s, pattern, it)
}
