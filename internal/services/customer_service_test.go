// customer_service_test.go
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

	"github.com/localnerve/jam-build-crm/internal/database/dbtest"
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "00000000-0000-0000-0000-00000000000a"
	bob   = "00000000-0000-0000-0000-00000000000b"
)

func TestCustomerRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	created, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{
		Name:    types.Some("  Acme  "),
		Phone:   types.Some("5511999999999"),
		Company: types.Some("Acme Ltda"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, alice, created.UserID)

	got, err := services.GetCustomer(ctx, db, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", got.Company)
	assert.Equal(t, "5511999999999", got.Phone)

	// Absent fields keep their values
	updated, err := services.UpdateCustomer(ctx, db, alice, created.ID, services.CustomerInput{
		Email: types.Some("contato@acme.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "contato@acme.com", updated.Email)
	assert.Equal(t, "Acme Ltda", updated.Company)

	require.NoError(t, services.DeleteCustomer(ctx, db, alice, created.ID))
	_, err = services.GetCustomer(ctx, db, alice, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteCustomer(ctx, db, alice, created.ID), services.ErrNotFound)
}

func TestCustomerNameRequired(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	_, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("   ")})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	created, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Acme")})
	require.NoError(t, err)
	_, err = services.UpdateCustomer(ctx, db, alice, created.ID, services.CustomerInput{Name: types.Some("")})
	require.ErrorAs(t, err, &verr)
}

func TestCustomersAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	mine, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Zeta")})
	require.NoError(t, err)
	_, err = services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Alpha")})
	require.NoError(t, err)
	_, err = services.CreateCustomer(ctx, db, bob, services.CustomerInput{Name: types.Some("Bob Co")})
	require.NoError(t, err)

	list, err := services.ListCustomers(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)

	_, err = services.GetCustomer(ctx, db, bob, mine.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = services.UpdateCustomer(ctx, db, bob, mine.ID, services.CustomerInput{Name: types.Some("Stolen")})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteCustomer(ctx, db, bob, mine.ID), services.ErrNotFound)

	still, err := services.GetCustomer(ctx, db, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zeta", still.Name)
}

func TestDeleteCustomerUnlinksDeals(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	customer, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Acme")})
	require.NoError(t, err)
	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{
		Title:      types.Some("Q1 Renewal"),
		CustomerID: types.Some(&customer.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, deal.Customer)
	assert.Equal(t, "Acme", deal.Customer.Name)

	require.NoError(t, services.DeleteCustomer(ctx, db, alice, customer.ID))

	got, err := services.GetDeal(ctx, db, alice, deal.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)
	assert.Nil(t, got.Customer)
}

func TestCustomerDetail(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	customer, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Acme")})
	require.NoError(t, err)
	_, err = services.CreateDeal(ctx, db, alice, services.DealInput{
		Title:      types.Some("Q1 Renewal"),
		CustomerID: types.Some(&customer.ID),
	})
	require.NoError(t, err)
	_, err = services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Unrelated")})
	require.NoError(t, err)

	kind := string(models.RelatedCustomer)
	_, err = services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:         types.Some("Call Acme"),
		RelatedToType: types.Some(&kind),
		RelatedToID:   types.Some(&customer.ID),
	})
	require.NoError(t, err)

	detail, err := services.GetCustomerDetail(ctx, db, alice, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", detail.Customer.Name)
	require.Len(t, detail.Deals, 1)
	assert.Equal(t, "Q1 Renewal", detail.Deals[0].Title)
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, "Call Acme", detail.Tasks[0].Title)

	_, err = services.GetCustomerDetail(ctx, db, bob, customer.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
