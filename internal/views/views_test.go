// views_test.go
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

package views

import (
	"testing"
	"time"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testFormatter(t *testing.T) Formatter {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return Formatter{CurrencySymbol: "R$", Location: loc}
}

func TestCurrency(t *testing.T) {
	f := testFormatter(t)

	assert.Equal(t, "R$ 1.234,50", f.Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", f.Currency(decimal.Zero))
	assert.Equal(t, "R$ 1.000.000,00", f.Currency(decimal.NewFromInt(1000000)))
	assert.Equal(t, "R$ 999.999.999.999,99", f.Currency(decimal.RequireFromString("999999999999.99")))
	assert.Equal(t, "R$ 12.345.678.901.234.567,89", f.Currency(decimal.RequireFromString("12345678901234567.89")))
	assert.Equal(t, "R$ 0,01", f.Currency(decimal.RequireFromString("0.005")))
	assert.Equal(t, "R$ -0,50", f.Currency(decimal.RequireFromString("-0.5")))
	assert.Equal(t, Placeholder, f.Money(models.Money{}, Placeholder))
	assert.Equal(t, "R$ 1.000,00", f.Money(models.MoneyFromInt(1000), Placeholder))
}

func TestDates(t *testing.T) {
	f := testFormatter(t)

	// 01:30 UTC is still the previous day in Sao Paulo
	ts := time.Date(2026, 5, 2, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/05/2026", f.Date(ts))
	assert.Equal(t, Placeholder, f.DatePtr(nil, Placeholder))

	d := datatypes.Date(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "31/03/2026", f.CalendarDate(&d, Placeholder))
	assert.Equal(t, "n/a", f.CalendarDate(nil, "n/a"))
}

func TestDealView(t *testing.T) {
	f := testFormatter(t)

	bare := f.Deal(models.Deal{Title: "Website", Status: "archived"})
	assert.Equal(t, Placeholder, bare.CustomerDisplay)
	assert.Equal(t, Placeholder, bare.ValueDisplay)
	assert.Equal(t, "Novo", bare.StatusBadge.Label)
	assert.Nil(t, bare.Customer)

	id := "c1"
	full := f.Deal(models.Deal{
		Title:      "Q1 Renewal",
		CustomerID: &id,
		Customer:   &models.Customer{ID: id, Name: "Acme"},
		Value:      models.NewMoney(decimal.RequireFromString("1234.50")),
		Status:     models.DealStatusWon,
	})
	assert.Equal(t, "Acme", full.CustomerDisplay)
	assert.Equal(t, "R$ 1.234,50", full.ValueDisplay)
	assert.Equal(t, models.Badge{Label: "Ganho", Color: "green"}, full.StatusBadge)
}

func TestTaskView(t *testing.T) {
	f := testFormatter(t)

	plain := f.Task(models.Task{Title: "Call", Priority: models.PriorityHigh}, nil)
	assert.Equal(t, Placeholder, plain.RelatedDisplay)
	assert.Equal(t, Placeholder, plain.DueDisplay)
	assert.Equal(t, "Alta", plain.PriorityBadge.Label)
	assert.Equal(t, "Pendente", plain.CompletionLabel)

	related := f.Task(models.Task{Title: "Call", IsCompleted: true}, &services.RelatedSummary{
		Type:  models.RelatedCustomer,
		Name:  "Acme",
		Label: models.RelatedCustomer.Label(),
	})
	assert.Equal(t, "Cliente: Acme", related.RelatedDisplay)
	assert.Equal(t, "Concluída", related.CompletionLabel)
}

func TestEmptyLists(t *testing.T) {
	f := testFormatter(t)

	customers := f.Customers(nil)
	assert.Equal(t, EmptyCustomers, customers.Empty)
	assert.NotNil(t, customers.Items)
	assert.Zero(t, customers.Count)

	deals := f.Deals([]models.Deal{{Title: "x"}}, EmptyDeals)
	assert.Empty(t, deals.Empty)
	assert.Equal(t, 1, deals.Count)
}

func TestCustomerDetailPlaceholders(t *testing.T) {
	f := testFormatter(t)

	v := f.CustomerDetail(&services.CustomerDetail{
		Customer: models.Customer{Name: "Acme"},
		Tasks:    []models.Task{{Title: "undated"}},
	})
	assert.Equal(t, NotInformed, v.Customer.EmailDisplay)
	assert.Equal(t, NotInformed, v.AddressDisplay)
	assert.Equal(t, EmptyDeals, v.Deals.Empty)
	require.Len(t, v.Tasks.Items, 1)
	assert.Equal(t, NoDueDate, v.Tasks.Items[0].DueDisplay)
}

func TestKanbanView(t *testing.T) {
	f := testFormatter(t)

	columns := f.Kanban(services.BuildKanban([]models.Deal{{Title: "won", Status: models.DealStatusWon}}))
	require.Len(t, columns, 4)
	assert.Equal(t, "Novo", columns[0].Label)
	assert.Equal(t, EmptyColumn, columns[0].Empty)
	assert.Equal(t, 1, columns[2].Count)
	assert.Empty(t, columns[2].Empty)
	assert.Equal(t, "Perdido", columns[3].Label)
}

func TestDashboardView(t *testing.T) {
	f := testFormatter(t)

	v := f.Dashboard(&services.Dashboard{
		Stats: services.DashboardStats{DealsCount: 2, TotalWonValue: decimal.NewFromInt(1000)},
	})
	assert.Equal(t, "R$ 1.000,00", v.Stats.TotalWonValueDisplay)
	assert.Equal(t, EmptyTodayTasks, v.TodayTasks.Empty)
	assert.Equal(t, EmptyRecentDeals, v.RecentDeals.Empty)
}
