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
	"fmt"

	"github.com/krotik/dotadb/match"
)

/*
validateChanges resolves every change's target name against the pattern
up front, so a bad name fails the whole request before any mutation runs,
rather than partway through (spec §7, Semantic errors are reported
instead of the operator's normal result).
*/
func validateChanges(pattern *match.Pattern, changes []Change) error {
	for _, c := range changes {
		_, isVertex, ok := pattern.IndexOfName(c.Name)
		if !ok {
			return fmt.Errorf("undefined name %q", c.Name)
		}

		switch c.Kind {
		case SetAttribute, RemoveAttribute:
			if !isVertex {
				return fmt.Errorf("attributes can only apply to vertex slots, got %q", c.Name)
			}
		}
	}

	return nil
}

/*
validateNames resolves a plain list of slot names (DELETE's target list)
against the pattern.
*/
func validateNames(pattern *match.Pattern, names []string) error {
	for _, n := range names {
		if _, _, ok := pattern.IndexOfName(n); !ok {
			return fmt.Errorf("undefined name %q", n)
		}
	}
	return nil
}

/*
validateProjections requires every RETURN projection to name a vertex
slot (spec §4.4's RETURN only ever yields vertex entities or their
attributes, never edges).
*/
func validateProjections(pattern *match.Pattern, projections []Projection) error {
	for _, p := range projections {
		_, isVertex, ok := pattern.IndexOfName(p.Name)
		if !ok || !isVertex {
			return fmt.Errorf("projected name %q must resolve to a vertex slot", p.Name)
		}
	}
	return nil
}
