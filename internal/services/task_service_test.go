// task_service_test.go
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func dueAt(t *testing.T, s string) types.Optional[types.FlexDate] {
	t.Helper()
	d, err := types.ParseFlexDate(s)
	require.NoError(t, err)
	return types.Some(d)
}

func TestCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	got, err := services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("Follow up")})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, got.Task.Priority)
	assert.False(t, got.Task.IsCompleted)
	assert.Nil(t, got.Task.DueDate)
	assert.True(t, got.Task.Related().IsNone())
	assert.Nil(t, got.Related)
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	tests := []struct {
		name  string
		in    services.TaskInput
		field string
	}{
		{"missing title", services.TaskInput{Priority: types.Some("high")}, "title"},
		{"unknown priority", services.TaskInput{Title: types.Some("x"), Priority: types.Some("urgent")}, "priority"},
		{"unknown related type", services.TaskInput{
			Title:         types.Some("x"),
			RelatedToType: types.Some(strPtr("invoice")),
			RelatedToID:   types.Some(strPtr("abc")),
		}, "related_to_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.CreateTask(ctx, db, alice, tt.in)
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestListTasksUndatedLast(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	_, err := services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("undated")})
	require.NoError(t, err)
	_, err = services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("later"), DueDate: dueAt(t, "2026-05-02T09:00")})
	require.NoError(t, err)
	_, err = services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("sooner"), DueDate: dueAt(t, "2026-05-01T09:00")})
	require.NoError(t, err)
	_, err = services.CreateTask(ctx, db, bob, services.TaskInput{Title: types.Some("not mine")})
	require.NoError(t, err)

	tasks, err := services.ListTasks(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "sooner", tasks[0].Task.Title)
	assert.Equal(t, "later", tasks[1].Task.Title)
	assert.Equal(t, "undated", tasks[2].Task.Title)
}

func TestTaskRelatedResolution(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	customer, err := services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Acme")})
	require.NoError(t, err)
	deal, err := services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Q1 Renewal")})
	require.NoError(t, err)

	toCustomer, err := services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:         types.Some("Call"),
		RelatedToType: types.Some(strPtr("customer")),
		RelatedToID:   types.Some(&customer.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, toCustomer.Related)
	assert.Equal(t, "Acme", toCustomer.Related.Name)
	assert.Equal(t, "Cliente", toCustomer.Related.Label)

	toDeal, err := services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:         types.Some("Proposal"),
		RelatedToType: types.Some(strPtr("deal")),
		RelatedToID:   types.Some(&deal.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, toDeal.Related)
	assert.Equal(t, "Q1 Renewal", toDeal.Related.Name)
	assert.Equal(t, models.RelatedDeal, toDeal.Related.Type)

	// The id is not checked; a dangling reference resolves to nothing
	dangling, err := services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:         types.Some("Ghost"),
		RelatedToType: types.Some(strPtr("deal")),
		RelatedToID:   types.Some(strPtr("11111111-1111-1111-1111-111111111111")),
	})
	require.NoError(t, err)
	assert.Nil(t, dangling.Related)
	assert.Equal(t, models.RelatedDeal, dangling.Task.Related().Kind())

	tasks, err := services.ListTasks(ctx, db, alice)
	require.NoError(t, err)
	byTitle := map[string]services.TaskWithRelated{}
	for _, task := range tasks {
		byTitle[task.Task.Title] = task
	}
	require.NotNil(t, byTitle["Call"].Related)
	assert.Equal(t, "Acme", byTitle["Call"].Related.Name)
	require.NotNil(t, byTitle["Proposal"].Related)
	assert.Equal(t, "Q1 Renewal", byTitle["Proposal"].Related.Name)
	assert.Nil(t, byTitle["Ghost"].Related)

	// Another owner's row is never resolved
	summary, err := services.ResolveRelated(ctx, db, bob, models.CustomerRef(customer.ID))
	require.NoError(t, err)
	assert.Nil(t, summary)

	// Setting the type to none clears both columns
	cleared, err := services.UpdateTask(ctx, db, alice, toCustomer.Task.ID, services.TaskInput{
		RelatedToType: types.Some(strPtr("none")),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Task.RelatedToType)
	assert.Nil(t, cleared.Task.RelatedToID)
	assert.Nil(t, cleared.Related)
}

func TestSetTaskCompletion(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	created, err := services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:    types.Some("Toggle me"),
		Priority: types.Some("high"),
		DueDate:  dueAt(t, "2026-05-01T09:00"),
	})
	require.NoError(t, err)
	id := created.Task.ID

	flipped, err := services.SetTaskCompletion(ctx, db, alice, id, nil)
	require.NoError(t, err)
	assert.True(t, flipped.Task.IsCompleted)
	assert.Equal(t, models.PriorityHigh, flipped.Task.Priority)
	assert.Equal(t, "Toggle me", flipped.Task.Title)
	require.NotNil(t, flipped.Task.DueDate)
	assert.True(t, created.Task.DueDate.Equal(*flipped.Task.DueDate))

	back, err := services.SetTaskCompletion(ctx, db, alice, id, nil)
	require.NoError(t, err)
	assert.False(t, back.Task.IsCompleted)

	done := true
	set, err := services.SetTaskCompletion(ctx, db, alice, id, &done)
	require.NoError(t, err)
	assert.True(t, set.Task.IsCompleted)
	again, err := services.SetTaskCompletion(ctx, db, alice, id, &done)
	require.NoError(t, err)
	assert.True(t, again.Task.IsCompleted)

	_, err = services.SetTaskCompletion(ctx, db, bob, id, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestTodayTasks(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2026-05-01 10:00 in Sao Paulo
	at := time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC)

	insert := func(title string, due *time.Time, completed bool) {
		task := &models.Task{UserID: alice, Title: title, DueDate: due, Priority: models.PriorityMedium, IsCompleted: completed}
		require.NoError(t, db.Session(&gorm.Session{}).Create(task).Error)
	}
	at0 := func(h, m int) *time.Time {
		v := time.Date(2026, 5, 1, h, m, 0, 0, loc).UTC()
		return &v
	}

	insert("early", at0(0, 30), false)
	insert("late", at0(23, 30), false)
	insert("done", at0(12, 0), true)
	yesterday := time.Date(2026, 4, 30, 23, 0, 0, 0, loc).UTC()
	insert("yesterday", &yesterday, false)
	tomorrow := time.Date(2026, 5, 2, 0, 0, 0, 0, loc).UTC()
	insert("tomorrow", &tomorrow, false)
	insert("undated", nil, false)

	tasks, err := services.TodayTasks(ctx, db, alice, loc, at)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "early", tasks[0].Title)
	assert.Equal(t, "late", tasks[1].Title)
}

func TestRelationOptions(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	opts, err := services.ListRelationOptions(ctx, db, alice)
	require.NoError(t, err)
	assert.Empty(t, opts.Customers)
	assert.Empty(t, opts.Deals)

	_, err = services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Beta")})
	require.NoError(t, err)
	_, err = services.CreateCustomer(ctx, db, alice, services.CustomerInput{Name: types.Some("Alpha")})
	require.NoError(t, err)
	_, err = services.CreateDeal(ctx, db, alice, services.DealInput{Title: types.Some("Website")})
	require.NoError(t, err)
	_, err = services.CreateCustomer(ctx, db, bob, services.CustomerInput{Name: types.Some("Hidden")})
	require.NoError(t, err)

	opts, err = services.ListRelationOptions(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, opts.Customers, 2)
	assert.Equal(t, "Alpha", opts.Customers[0].Name)
	require.Len(t, opts.Deals, 1)
	assert.Equal(t, "Website", opts.Deals[0].Name)
}

func TestTasksAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	mine, err := services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("Call Acme")})
	require.NoError(t, err)
	id := mine.Task.ID

	_, err = services.GetTask(ctx, db, bob, id)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = services.UpdateTask(ctx, db, bob, id, services.TaskInput{Title: types.Some("Stolen")})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteTask(ctx, db, bob, id), services.ErrNotFound)

	list, err := services.ListTasks(ctx, db, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := services.GetTask(ctx, db, alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Call Acme", still.Task.Title)
}

func TestDeleteTaskThenGet(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	task, err := services.CreateTask(ctx, db, alice, services.TaskInput{Title: types.Some("Gone")})
	require.NoError(t, err)

	require.NoError(t, services.DeleteTask(ctx, db, alice, task.Task.ID))
	_, err = services.GetTask(ctx, db, alice, task.Task.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, services.DeleteTask(ctx, db, alice, task.Task.ID), services.ErrNotFound)
}

func TestDateOnlyDueDateIsLocalDay(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	created, err := services.CreateTask(ctx, db, alice, services.TaskInput{
		Title:    types.Some("Ligar"),
		DueDate:  dueAt(t, "2026-05-01"),
		Location: loc,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Task.DueDate)
	assert.Equal(t, "2026-05-01 00:00", created.Task.DueDate.In(loc).Format("2006-01-02 15:04"))

	onDay, err := services.TodayTasks(ctx, db, alice, loc, time.Date(2026, 5, 1, 10, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Len(t, onDay, 1)

	dayBefore, err := services.TodayTasks(ctx, db, alice, loc, time.Date(2026, 4, 30, 10, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Empty(t, dayBefore)
}
