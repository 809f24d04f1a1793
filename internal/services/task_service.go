// task_service.go
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

package services

import (
	"context"
	"strings"
	"time"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/types"
	"gorm.io/gorm"
)

// dueDateOrder sorts by due date ascending with undated tasks last on every driver
const dueDateOrder = "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC"

// TaskInput is a create or update request; absent fields keep their current value
type TaskInput struct {
	Title         types.Optional[string]         `json:"title"`
	Description   types.Optional[string]         `json:"description"`
	DueDate       types.Optional[types.FlexDate] `json:"due_date"`
	Priority      types.Optional[string]         `json:"priority"`
	IsCompleted   types.Optional[bool]           `json:"is_completed"`
	RelatedToType types.Optional[*string]        `json:"related_to_type"`
	RelatedToID   types.Optional[*string]        `json:"related_to_id"`

	// Location places due dates sent without an offset; nil reads them as UTC
	Location *time.Location `json:"-"`
}

type taskFields struct {
	Title string `json:"title" validate:"required,max=255"`
}

var taskColumns = []string{"title", "description", "due_date", "priority", "is_completed", "related_to_type", "related_to_id", "updated_at"}

// TaskWithRelated is a task and the summary of the row it points at, if any
type TaskWithRelated struct {
	Task    models.Task
	Related *RelatedSummary
}

func (in TaskInput) apply(task *models.Task) error {
	task.Title = strings.TrimSpace(in.Title.Or(task.Title))
	task.Description = in.Description.Or(task.Description)

	if err := validateStruct(taskFields{Title: task.Title}); err != nil {
		return err
	}

	if in.DueDate.Set {
		task.DueDate = in.DueDate.Value.In(in.Location).Ptr()
	}

	if in.Priority.Set || task.Priority == "" {
		priority, err := models.ParseTaskPriority(in.Priority.Value)
		if err != nil {
			return invalid("priority", "must be one of: low, medium, high")
		}
		task.Priority = priority
	}

	if in.IsCompleted.Set {
		task.IsCompleted = in.IsCompleted.Value
	}

	if in.RelatedToType.Set || in.RelatedToID.Set {
		current := task.Related()
		kind := string(current.Kind())
		id := current.ID()
		if in.RelatedToType.Set {
			kind = derefString(in.RelatedToType.Value)
		}
		if in.RelatedToID.Set {
			id = derefString(in.RelatedToID.Value)
		}
		ref, err := models.ParseRelatedRef(kind, id)
		if err != nil {
			return invalid("related_to_type", "must be customer, deal or none")
		}
		task.SetRelated(ref)
	}

	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListTasks returns the user's tasks by due date with their related summaries
func ListTasks(ctx context.Context, db *gorm.DB, userID string) ([]TaskWithRelated, error) {
	var tasks []models.Task
	if err := reader(ctx, db, "tasks.list").
		Scopes(ownedBy(userID)).
		Order(dueDateOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return withRelated(ctx, db, userID, tasks), nil
}

// TodayTasks returns pending tasks due on the current day in loc
func TodayTasks(ctx context.Context, db *gorm.DB, userID string, loc *time.Location, at time.Time) ([]models.Task, error) {
	local := at.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	var tasks []models.Task
	err := reader(ctx, db, "tasks.today").
		Scopes(ownedBy(userID)).
		Where("is_completed = ?", false).
		Where("due_date >= ? AND due_date < ?", start.UTC(), end.UTC()).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// GetTask returns one task with its related summary
func GetTask(ctx context.Context, db *gorm.DB, userID, id string) (*TaskWithRelated, error) {
	var task models.Task
	if err := firstOwned(reader(ctx, db, "tasks.get"), userID, id, &task); err != nil {
		return nil, err
	}

	related, err := ResolveRelated(ctx, db, userID, task.Related())
	if err != nil {
		related = nil
	}
	return &TaskWithRelated{Task: task, Related: related}, nil
}

// CreateTask inserts a task owned by userID; priority defaults to medium
func CreateTask(ctx context.Context, db *gorm.DB, userID string, in TaskInput) (*TaskWithRelated, error) {
	task := &models.Task{UserID: userID}
	if err := in.apply(task); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return GetTask(ctx, db, userID, task.ID)
}

// UpdateTask applies the submitted fields and writes every editable column
func UpdateTask(ctx context.Context, db *gorm.DB, userID, id string, in TaskInput) (*TaskWithRelated, error) {
	var task models.Task
	if err := firstOwned(reader(ctx, db, "tasks.update"), userID, id, &task); err != nil {
		return nil, err
	}

	if err := in.apply(&task); err != nil {
		return nil, err
	}
	task.UpdatedAt = now()

	if err := db.WithContext(ctx).
		Model(&task).
		Where("user_id = ?", userID).
		Select(taskColumns).
		Updates(&task).Error; err != nil {
		return nil, err
	}
	return GetTask(ctx, db, userID, id)
}

// SetTaskCompletion sets is_completed to completed, or flips it when completed is nil
func SetTaskCompletion(ctx context.Context, db *gorm.DB, userID, id string, completed *bool) (*TaskWithRelated, error) {
	var value any
	if completed != nil {
		value = *completed
	} else {
		value = gorm.Expr("CASE WHEN is_completed = ? THEN ? ELSE ? END", true, false, true)
	}

	if err := updateOwnedColumns(ctx, db, "tasks.completion", &models.Task{}, userID, id, map[string]any{
		"is_completed": value,
		"updated_at":   now(),
	}); err != nil {
		return nil, err
	}
	return GetTask(ctx, db, userID, id)
}

// DeleteTask removes a task
func DeleteTask(ctx context.Context, db *gorm.DB, userID, id string) error {
	return deleteOwned(ctx, db, &models.Task{}, userID, id)
}
