// related.go
//
// A multi-tenant CRM data service for customers, deals and tasks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-crm.
// jam-build-crm is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-crm is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-crm.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"fmt"
	"strings"
)

// RelatedRef is the polymorphic reference held by a task: a customer, a deal, or nothing.
// The zero value is the empty reference.
type RelatedRef struct {
	kind RelatedType
	id   string
}

// NoRelation is the empty reference
var NoRelation = RelatedRef{}

// CustomerRef points at a customer row
func CustomerRef(id string) RelatedRef {
	return RelatedRef{kind: RelatedCustomer, id: id}
}

// DealRef points at a deal row
func DealRef(id string) RelatedRef {
	return RelatedRef{kind: RelatedDeal, id: id}
}

// ParseRelatedRef builds a reference from a type tag and id.
// An empty or "none" tag, or a tag without an id, yields NoRelation.
func ParseRelatedRef(kind, id string) (RelatedRef, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	id = strings.TrimSpace(id)

	switch RelatedType(kind) {
	case "", "none":
		return NoRelation, nil
	case RelatedCustomer:
		if id == "" {
			return NoRelation, nil
		}
		return CustomerRef(id), nil
	case RelatedDeal:
		if id == "" {
			return NoRelation, nil
		}
		return DealRef(id), nil
	}
	return NoRelation, fmt.Errorf("unknown related type %q", kind)
}

// Kind returns the type tag, empty for NoRelation
func (r RelatedRef) Kind() RelatedType { return r.kind }

// ID returns the referenced row id, empty for NoRelation
func (r RelatedRef) ID() string { return r.id }

// IsNone reports whether the reference points at nothing
func (r RelatedRef) IsNone() bool { return r.kind == "" || r.id == "" }
