// deal_service_test.go
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

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/jam-build-crm/internal/database/dbtest"
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDealDefaults(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Website")})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusNew, deal.Status)
	assert.False(t, deal.Value.Valid)
	assert.Nil(t, deal.CustomerID)
	assert.Nil(t, deal.ExpectedCloseDate)
}

func TestCreateDealValidation(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	theirs, err := services.CreateCustomer(ctx, db, bob, services.CustomerInput{Name: types.Some("Bob Co")})
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    services.DealInput
		field string
	}{
		{"missing title", services.DealInput{}, "title"},
		{"unknown status", services.DealInput{Title: types.Some("x"), Status: types.Some("archived")}, "status"},
		{"negative value", services.DealInput{Title: types.Some("x"), Value: types.Some(models.MoneyFromInt(-1))}, "value"},
		{"foreign customer", services.DealInput{Title: types.Some("x"), CustomerID: types.Some(&theirs.ID)}, "customer_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.CreateDeal(ctx, db, alice, tt.in)
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUpdateDealKeepsAbsentFields(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	customer, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Acme")})
	require.NoError(t, err)
	closeDate, err := types.ParseFlexDate("2026-03-31")
	require.NoError(t, err)

	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{
		Title:             types.Some("Q1 Renewal"),
		CustomerID:        types.Some(&customer.ID),
		Value:             types.Some(models.NewMoney(decimal.RequireFromString("1000.50"))),
		ExpectedCloseDate: types.Some(closeDate),
		Notes:             types.Some("annual"),
	})
	require.NoError(t, err)

	updated, err := services.UpdateDeal(ctx, db, alice, deal.ID, services.DealInput{
		Status: types.Some("em_negociacao"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusNegotiating, updated.Status)
	assert.Equal(t, "Q1 Renewal", updated.Title)
	assert.Equal(t, "annual", updated.Notes)
	require.NotNil(t, updated.CustomerID)
	assert.Equal(t, customer.ID, *updated.CustomerID)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(updated.Value.Decimal))
	require.NotNil(t, updated.ExpectedCloseDate)
	assert.Equal(t, "2026-03-31", time.Time(*updated.ExpectedCloseDate).Format(time.DateOnly))

	// An explicit null clears the customer
	cleared, err := services.UpdateDeal(ctx, db, alice, deal.ID, services.DealInput{
		CustomerID: types.Some[*string](nil),
		Value:      types.Some(models.Money{}),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.CustomerID)
	assert.False(t, cleared.Value.Valid)
}

func TestUpdateDealStatusChangesOnlyStatus(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{
		Title: types.Some("Q1 Renewal"),
		Value: types.Some(models.MoneyFromInt(1000)),
		Notes: types.Some("keep me"),
	})
	require.NoError(t, err)

	for _, status := range []string{"ganho", "novo", "perdido", "em_negociacao", "won"} {
		got, err := services.UpdateDealStatus(ctx, db, alice, deal.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, "Q1 Renewal", got.Title)
		assert.Equal(t, "keep me", got.Notes)
		assert.True(t, decimal.NewFromInt(1000).Equal(got.Value.Decimal))
	}

	got, err := services.GetDeal(ctx, db, alice, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusWon, got.Status)

	_, err = services.UpdateDealStatus(ctx, db, alice, deal.ID, "archived")
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = services.UpdateDealStatus(ctx, db, bob, deal.ID, "perdido")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListDealsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		deal := &models.Deal{UserID: alice, Title: title, Status: models.DealStatusNew, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.Create(deal).Error)
	}
	require.NoError(t, db.Create(&models.Deal{UserID: bob, Title: "other", Status: models.DealStatusNew}).Error)

	deals, err := services.ListDeals(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, deals, 3)
	assert.Equal(t, "third", deals[0].Title)
	assert.Equal(t, "first", deals[2].Title)

	recent, err := services.RecentDeals(ctx, db, alice, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[1].Title)
}

func TestDealDetailTasks(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Q1 Renewal")})
	require.NoError(t, err)

	kind := string(models.RelatedDeal)
	_, err = services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:         types.Some("Send proposal"),
		RelatedToType: types.Some(&kind),
		RelatedToID:   types.Some(&deal.ID),
	})
	require.NoError(t, err)
	_, err = services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("Unrelated")})
	require.NoError(t, err)

	detail, err := services.GetDealDetail(ctx, db, alice, deal.ID)
	require.NoError(t, err)
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, "Send proposal", detail.Tasks[0].Title)

	require.NoError(t, services.DeleteDeal(ctx, db, alice, deal.ID))
	_, err = services.GetDealDetail(ctx, db, alice, deal.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDealsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	mine, err := services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Q1 Renewal")})
	require.NoError(t, err)

	_, err = services.GetDeal(ctx, db, bob, mine.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = services.GetDealDetail(ctx, db, bob, mine.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = services.UpdateDeal(ctx, db, bob, mine.ID, services.DealInput{Title: types.Some("Stolen")})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteDeal(ctx, db, bob, mine.ID), services.ErrNotFound)

	list, err := services.ListDeals(ctx, db, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := services.GetDeal(ctx, db, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1 Renewal", still.Title)
}

func TestDeleteDealThenGet(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Gone")})
	require.NoError(t, err)

	require.NoError(t, services.DeleteDeal(ctx, db, alice, deal.ID))
	_, err = services.GetDeal(ctx, db, alice, deal.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteDeal(ctx, db, alice, deal.ID), services.ErrNotFound)
}
