// deals.go
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

// DealHandler handles deal and kanban routes
type DealHandler struct {
	DB     *gorm.DB
	Format views.Formatter
}

// StatusRequest is the body of a status change
type StatusRequest struct {
	Status string `json:"status"`
}

// MoveRequest is the body of a kanban drop
type MoveRequest struct {
	DealID string `json:"deal_id"`
	Status string `json:"status"`
}

// MoveResponse reports a kanban drop
type MoveResponse struct {
	Moved bool           `json:"moved"`
	Deal  views.DealView `json:"deal"`
}

func dealNotFound(id string) string {
	return fmt.Sprintf("Deal '%s' not found", id)
}

// List handles GET /api/deals
// @Summary List deals
// @Description All deals of the caller, newest first, with the customer name
// @Tags Deals
// @Produce json
// @Success 200 {object} views.List[views.DealView]
// @Security CookieAuth
// @Router /deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "list")
	if err != nil {
		return err
	}

	deals, err := services.ListDeals(c.UserContext(), h.DB, userID)
	if err != nil {
		readFailed(log, "deal", err)
		deals = nil
	}
	return c.JSON(h.Format.Deals(deals, views.EmptyDeals))
}

// Get handles GET /api/deals/:id
// @Summary Get a deal
// @Description A deal with its customer and related tasks
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} views.DealDetailView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals/{id} [get]
func (h *DealHandler) Get(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "get")
	if err != nil {
		return err
	}

	id := c.Params("id")
	detail, err := services.GetDealDetail(c.UserContext(), h.DB, userID, id)
	if err != nil {
		readFailed(log, "deal", err)
		return utils.NotFoundResponse(c, dealNotFound(id))
	}
	return c.JSON(h.Format.DealDetail(detail))
}

// Create handles POST /api/deals
// @Summary Create a deal
// @Description Status defaults to novo
// @Tags Deals
// @Accept json
// @Produce json
// @Param deal body services.DealInput true "Deal fields"
// @Success 201 {object} views.DealView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "create")
	if err != nil {
		return err
	}

	var in services.DealInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}

	deal, err := services.CreateDeal(c.UserContext(), h.DB, userID, in)
	if err != nil {
		return writeError(c, log, err, "")
	}

	metrics.Mutation("deal", "create")
	c.Location("/api/deals/" + deal.ID)
	return c.Status(fiber.StatusCreated).JSON(h.Format.Deal(*deal))
}

// Update handles PUT /api/deals/:id
// @Summary Update a deal
// @Description Fields left out of the body keep their current value
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param deal body services.DealInput true "Deal fields"
// @Success 200 {object} views.DealView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals/{id} [put]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "update")
	if err != nil {
		return err
	}

	id := c.Params("id")
	var in services.DealInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}

	deal, err := services.UpdateDeal(c.UserContext(), h.DB, userID, id, in)
	if err != nil {
		return writeError(c, log, err, dealNotFound(id))
	}

	metrics.Mutation("deal", "update")
	return c.JSON(h.Format.Deal(*deal))
}

// UpdateStatus handles PATCH /api/deals/:id/status
// @Summary Change a deal's status
// @Description Writes only the status; any status may follow any other
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param status body StatusRequest true "Target status"
// @Success 200 {object} views.DealView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals/{id}/status [patch]
func (h *DealHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "status")
	if err != nil {
		return err
	}

	id := c.Params("id")
	var req StatusRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, log, err, "")
	}

	deal, err := services.UpdateDealStatus(c.UserContext(), h.DB, userID, id, req.Status)
	if err != nil {
		return writeError(c, log, err, dealNotFound(id))
	}

	metrics.Mutation("deal", "status")
	return c.JSON(h.Format.Deal(*deal))
}

// Delete handles DELETE /api/deals/:id
// @Summary Delete a deal
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "delete")
	if err != nil {
		return err
	}

	id := c.Params("id")
	if err := services.DeleteDeal(c.UserContext(), h.DB, userID, id); err != nil {
		return writeError(c, log, err, dealNotFound(id))
	}

	metrics.Mutation("deal", "delete")
	return utils.MutationSuccessResponse(c, "Deal deleted", 1)
}

// Kanban handles GET /api/deals/kanban
// @Summary Deal board
// @Description Deals grouped into the novo, em_negociacao, ganho and perdido columns
// @Tags Deals
// @Produce json
// @Success 200 {array} views.KanbanColumnView
// @Security CookieAuth
// @Router /deals/kanban [get]
func (h *DealHandler) Kanban(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "kanban")
	if err != nil {
		return err
	}

	columns, err := services.GetKanban(c.UserContext(), h.DB, userID)
	readFailed(log, "deal", err)
	return c.JSON(h.Format.Kanban(columns))
}

// Move handles POST /api/deals/kanban/move
// @Summary Move a deal on the board
// @Description Dropping a deal on its current column changes nothing
// @Tags Deals
// @Accept json
// @Produce json
// @Param move body MoveRequest true "Deal and target column"
// @Success 200 {object} MoveResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /deals/kanban/move [post]
func (h *DealHandler) Move(c *fiber.Ctx) error {
	userID, log, err := owner(c, "deal", "move")
	if err != nil {
		return err
	}

	var req MoveRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, log, err, "")
	}
	if req.DealID == "" {
		return utils.ValidationResponse(c, "deal_id", "deal_id: is required")
	}

	result, err := services.MoveDeal(c.UserContext(), h.DB, userID, req.DealID, req.Status)
	if err != nil {
		return writeError(c, log, err, dealNotFound(req.DealID))
	}

	if result.Moved {
		metrics.Mutation("deal", "move")
	}
	return c.JSON(MoveResponse{Moved: result.Moved, Deal: h.Format.Deal(*result.Deal)})
}
