// flex_date.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexDate is a nullable timestamp that can be unmarshaled from a calendar date,
// an RFC3339 timestamp, an empty string, or null.
type FlexDate struct {
	Time  time.Time
	Valid bool
	// Floating is set when the input carried no offset; Time then holds the wall clock in UTC
	Floating bool
}

var offsetLayouts = []string{
	time.RFC3339Nano,
}

var floatingLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseFlexDate parses s with the accepted layouts. Values without an offset are
// marked Floating and must be placed in a zone with In.
func ParseFlexDate(s string) (FlexDate, error) {
	if s == "" {
		return FlexDate{}, nil
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexDate{Time: t.UTC(), Valid: true}, nil
		}
	}
	for _, layout := range floatingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexDate{Time: t, Valid: true, Floating: true}, nil
		}
	}
	return FlexDate{}, fmt.Errorf("FlexDate: invalid date %q", s)
}

// In reads a floating value as wall clock time in loc. Values with an offset are returned unchanged.
func (f FlexDate) In(loc *time.Location) FlexDate {
	if !f.Valid || !f.Floating {
		return f
	}
	if loc == nil {
		loc = time.UTC
	}
	t := f.Time
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	return FlexDate{Time: local.UTC(), Valid: true}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexDate{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexDate: unexpected type, expected string or null")
	}

	parsed, err := ParseFlexDate(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexDate) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}

// Ptr returns the time or nil when unset
func (f FlexDate) Ptr() *time.Time {
	if !f.Valid {
		return nil
	}
	t := f.Time
	return &t
}
