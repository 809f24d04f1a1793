// models_test.go
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
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMoneyJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}{A: NewMoney(decimal.RequireFromString("1234.5"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1234.50,"b":null}`, string(out))

	for in, want := range map[string]string{
		`1000`:      "1000",
		`"1234.50"`: "1234.5",
		`0.1`:       "0.1",
	} {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(in), &m), in)
		assert.True(t, m.Valid, in)
		assert.True(t, decimal.RequireFromString(want).Equal(m.Decimal), in)
	}

	for _, in := range []string{`null`, `""`} {
		m := MoneyFromInt(5)
		require.NoError(t, json.Unmarshal([]byte(in), &m), in)
		assert.False(t, m.Valid, in)
	}

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.True(t, Money{}.OrZero().IsZero())
}

func TestMoneyColumnType(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	assert.Equal(t, "NUMERIC", Money{}.GormDBDataType(db, nil))
}

func TestParseDealStatus(t *testing.T) {
	for in, want := range map[string]DealStatus{
		"novo":          DealStatusNew,
		" Ganho ":       DealStatusWon,
		"em_negociacao": DealStatusNegotiating,
		"lost":          DealStatusLost,
		"negotiating":   DealStatusNegotiating,
	} {
		got, err := ParseDealStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDealStatus("archived")
	assert.Error(t, err)
	_, err = ParseDealStatus("")
	assert.Error(t, err)
}

func TestBadges(t *testing.T) {
	assert.Equal(t, Badge{Label: "Em Negociação", Color: "blue"}, DealStatusNegotiating.Badge())
	assert.Equal(t, "Novo", DealStatus("bogus").Badge().Label)
	assert.Equal(t, Badge{Label: "Média", Color: "yellow"}, PriorityMedium.Badge())
	assert.Equal(t, "Baixa", TaskPriority("bogus").Badge().Label)
	assert.Equal(t, "Negócio", RelatedDeal.Label())
	assert.Empty(t, RelatedType("x").Label())
}

func TestParseTaskPriority(t *testing.T) {
	p, err := ParseTaskPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = ParseTaskPriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParseTaskPriority("urgent")
	assert.Error(t, err)
}

func TestRelatedRef(t *testing.T) {
	ref, err := ParseRelatedRef("customer", "c1")
	require.NoError(t, err)
	assert.Equal(t, CustomerRef("c1"), ref)
	assert.False(t, ref.IsNone())

	for _, tc := range [][2]string{{"", "c1"}, {"none", "c1"}, {"deal", ""}, {"customer", "  "}} {
		ref, err := ParseRelatedRef(tc[0], tc[1])
		require.NoError(t, err)
		assert.True(t, ref.IsNone(), tc)
	}

	_, err = ParseRelatedRef("invoice", "i1")
	assert.Error(t, err)
}

func TestTaskRelated(t *testing.T) {
	var task Task
	assert.Equal(t, NoRelation, task.Related())

	task.SetRelated(DealRef("d1"))
	require.NotNil(t, task.RelatedToType)
	assert.Equal(t, RelatedDeal, *task.RelatedToType)
	assert.Equal(t, "d1", *task.RelatedToID)
	assert.Equal(t, DealRef("d1"), task.Related())

	task.SetRelated(NoRelation)
	assert.Nil(t, task.RelatedToType)
	assert.Nil(t, task.RelatedToID)

	// A corrupt tag reads as no relation
	bad := RelatedType("invoice")
	id := "x"
	task.RelatedToType, task.RelatedToID = &bad, &id
	assert.True(t, task.Related().IsNone())
}

func TestDefaultUserSettings(t *testing.T) {
	s := DefaultUserSettings("u1")
	assert.Equal(t, ThemeLight, s.Theme)
	assert.True(t, s.NotificationEmail)
	assert.True(t, s.NotificationApp)
	assert.Empty(t, s.ID)
}
