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

import "errors"

/*
Semantic errors a Request can fail with before ever touching storage
(spec §7, "Semantic"). Their text is part of the wire contract: a client
matches on it, so wording here is deliberate and stable.
*/
var (
	ErrRedefinedVertex         = errors.New("cannot redefine vertex names")
	ErrUndefinedVertexName     = errors.New("vertices of edges must have defined names")
	ErrWhereWithoutMatch       = errors.New("you cannot specify where without match")
	ErrNeedsMatch              = errors.New("this operator requires a preceding match")
	ErrIncidentEdges           = errors.New("you cannot delete vertices with incident edges")
	ErrLimitExceeded           = errors.New("limit exceeded")
	ErrCreateVerticesWithMatch = errors.New("create with match may only create edges")

	// ErrBadRequest is the InvalidArg response (spec §7): a structurally
	// ill-formed request, as opposed to a well-formed but semantically
	// rejected one.
	ErrBadRequest = errors.New("bad request")
)
