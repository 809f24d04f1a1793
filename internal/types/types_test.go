// types_test.go
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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDateUnmarshal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		want  time.Time
	}{
		{`null`, false, time.Time{}},
		{`""`, false, time.Time{}},
		{`"2026-03-15"`, true, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{`"2026-03-15T10:30:00-03:00"`, true, time.Date(2026, 3, 15, 13, 30, 0, 0, time.UTC)},
		{`"2026-03-15T10:30"`, true, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		var f FlexDate
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), tc.in)
		assert.Equal(t, tc.valid, f.Valid, tc.in)
		if tc.valid {
			assert.True(t, tc.want.Equal(f.Time), "%s: got %v", tc.in, f.Time)
		}
	}
}

func TestFlexDateIn(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	day, err := ParseFlexDate("2026-05-01")
	require.NoError(t, err)
	assert.True(t, day.Floating)

	local := day.In(saoPaulo)
	assert.False(t, local.Floating)
	assert.True(t, time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC).Equal(local.Time), "got %v", local.Time)
	assert.Equal(t, "2026-05-01", local.Time.In(saoPaulo).Format(time.DateOnly))

	withClock, err := ParseFlexDate("2026-05-01T09:30")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC).Equal(withClock.In(saoPaulo).Time))

	offset, err := ParseFlexDate("2026-05-01T09:30:00Z")
	require.NoError(t, err)
	assert.False(t, offset.Floating)
	assert.Equal(t, offset, offset.In(saoPaulo))

	assert.True(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).Equal(day.In(nil).Time))
}

func TestFlexDateRejectsGarbage(t *testing.T) {
	var f FlexDate
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`20260315`), &f))
}

func TestOptionalTracksPresence(t *testing.T) {
	var body struct {
		Name  Optional[string]  `json:"name"`
		Notes Optional[string]  `json:"notes"`
		Due   Optional[*string] `json:"due"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","due":null}`), &body))

	assert.True(t, body.Name.Set)
	assert.Equal(t, "Acme", body.Name.Value)
	assert.False(t, body.Notes.Set)
	assert.Equal(t, "kept", body.Notes.Or("kept"))
	assert.True(t, body.Due.Set)
	assert.Nil(t, body.Due.Value)
}
