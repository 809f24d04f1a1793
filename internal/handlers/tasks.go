// tasks.go
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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/metrics"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/localnerve/jam-build-crm/internal/views"
	"gorm.io/gorm"
)

// TaskHandler handles task routes
type TaskHandler struct {
	DB     *gorm.DB
	Format views.Formatter
}

// CompletionRequest sets is_completed; an empty body flips it
type CompletionRequest struct {
	IsCompleted *bool `json:"is_completed"`
}

func taskNotFound(id string) string {
	return fmt.Sprintf("Task '%s' not found", id)
}

// List handles GET /api/tasks
// @Summary List tasks
// @Description All tasks of the caller by due date, with the related customer or deal
// @Tags Tasks
// @Produce json
// @Success 200 {object} views.List[views.TaskView]
// @Security CookieAuth
// @Router /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "list")
	if err != nil {
		return err
	}

	tasks, err := services.ListTasks(c.UserContext(), h.DB, userID)
	if err != nil {
		readFailed(log, "task", err)
		tasks = nil
	}
	return c.JSON(h.Format.Tasks(tasks, views.EmptyTasks))
}

// Get handles GET /api/tasks/:id
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} views.TaskDetailView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "get")
	if err != nil {
		return err
	}

	id := c.Params("id")
	task, err := services.GetTask(c.UserContext(), h.DB, userID, id)
	if err != nil {
		readFailed(log, "task", err)
		return utils.NotFoundResponse(c, taskNotFound(id))
	}
	return c.JSON(h.Format.TaskDetail(task))
}

// Relations handles GET /api/tasks/relations
// @Summary Related-entity choices
// @Description Customers by name and deals by title for the task form
// @Tags Tasks
// @Produce json
// @Success 200 {object} services.RelationOptions
// @Security CookieAuth
// @Router /tasks/relations [get]
func (h *TaskHandler) Relations(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "relations")
	if err != nil {
		return err
	}

	opts, err := services.ListRelationOptions(c.UserContext(), h.DB, userID)
	if err != nil {
		readFailed(log, "task", err)
		opts = &services.RelationOptions{
			Customers: []services.RelationOption{},
			Deals:     []services.RelationOption{},
		}
	}
	return c.JSON(opts)
}

// Create handles POST /api/tasks
// @Summary Create a task
// @Description Priority defaults to medium; related_to_type may be customer, deal or none
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body services.TaskInput true "Task fields"
// @Success 201 {object} views.TaskView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "create")
	if err != nil {
		return err
	}

	var in services.TaskInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}
	in.Location = h.Format.Location

	task, err := services.CreateTask(c.UserContext(), h.DB, userID, in)
	if err != nil {
		return writeError(c, log, err, "")
	}

	metrics.Mutation("task", "create")
	c.Location("/api/tasks/" + task.Task.ID)
	return c.Status(fiber.StatusCreated).JSON(h.Format.Task(task.Task, task.Related))
}

// Update handles PUT /api/tasks/:id
// @Summary Update a task
// @Description Fields left out of the body keep their current value
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body services.TaskInput true "Task fields"
// @Success 200 {object} views.TaskView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "update")
	if err != nil {
		return err
	}

	id := c.Params("id")
	var in services.TaskInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}
	in.Location = h.Format.Location

	task, err := services.UpdateTask(c.UserContext(), h.DB, userID, id, in)
	if err != nil {
		return writeError(c, log, err, taskNotFound(id))
	}

	metrics.Mutation("task", "update")
	return c.JSON(h.Format.Task(task.Task, task.Related))
}

// Completion handles PATCH /api/tasks/:id/completion
// @Summary Mark a task done or pending
// @Description Sets is_completed, or flips it when the body omits it
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param completion body CompletionRequest false "Target state"
// @Success 200 {object} views.TaskView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tasks/{id}/completion [patch]
func (h *TaskHandler) Completion(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "completion")
	if err != nil {
		return err
	}

	id := c.Params("id")
	var req CompletionRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return writeError(c, log, err, "")
		}
	}

	task, err := services.SetTaskCompletion(c.UserContext(), h.DB, userID, id, req.IsCompleted)
	if err != nil {
		return writeError(c, log, err, taskNotFound(id))
	}

	metrics.Mutation("task", "completion")
	return c.JSON(h.Format.Task(task.Task, task.Related))
}

// Delete handles DELETE /api/tasks/:id
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, log, err := owner(c, "task", "delete")
	if err != nil {
		return err
	}

	id := c.Params("id")
	if err := services.DeleteTask(c.UserContext(), h.DB, userID, id); err != nil {
		return writeError(c, log, err, taskNotFound(id))
	}

	metrics.Mutation("task", "delete")
	return utils.MutationSuccessResponse(c, "Task deleted", 1)
}
