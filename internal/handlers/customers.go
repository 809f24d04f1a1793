// customers.go
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
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/metrics"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/localnerve/jam-build-crm/internal/views"
	"gorm.io/gorm"
)

// CustomerHandler handles customer routes
type CustomerHandler struct {
	DB          *gorm.DB
	Format      views.Formatter
	PhoneRegion string
}

func customerNotFound(id string) string {
	return fmt.Sprintf("Customer '%s' not found", id)
}

// List handles GET /api/customers
// @Summary List customers
// @Description All customers of the caller ordered by name
// @Tags Customers
// @Produce json
// @Success 200 {object} views.List[views.CustomerView]
// @Security CookieAuth
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "list")
	if err != nil {
		return err
	}

	customers, err := services.ListCustomers(c.UserContext(), h.DB, userID)
	if err != nil {
		readFailed(log, "customer", err)
		customers = nil
	}
	return c.JSON(h.Format.Customers(customers))
}

// Get handles GET /api/customers/:id
// @Summary Get a customer
// @Description A customer with its deals and related tasks
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} views.CustomerDetailView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "get")
	if err != nil {
		return err
	}

	id := c.Params("id")
	detail, err := services.GetCustomerDetail(c.UserContext(), h.DB, userID, id)
	if err != nil {
		readFailed(log, "customer", err)
		return utils.NotFoundResponse(c, customerNotFound(id))
	}
	return c.JSON(h.Format.CustomerDetail(detail))
}

// Create handles POST /api/customers
// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body services.CustomerInput true "Customer fields"
// @Success 201 {object} views.CustomerView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "create")
	if err != nil {
		return err
	}

	var in services.CustomerInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}

	customer, err := services.CreateCustomer(c.UserContext(), h.DB, userID, in)
	if err != nil {
		return writeError(c, log, err, "")
	}

	metrics.Mutation("customer", "create")
	c.Location("/api/customers/" + customer.ID)
	return c.Status(fiber.StatusCreated).JSON(h.Format.Customer(*customer))
}

// Update handles PUT /api/customers/:id
// @Summary Update a customer
// @Description Fields left out of the body keep their current value
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body services.CustomerInput true "Customer fields"
// @Success 200 {object} views.CustomerView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "update")
	if err != nil {
		return err
	}

	id := c.Params("id")
	var in services.CustomerInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}

	customer, err := services.UpdateCustomer(c.UserContext(), h.DB, userID, id, in)
	if err != nil {
		return writeError(c, log, err, customerNotFound(id))
	}

	metrics.Mutation("customer", "update")
	return c.JSON(h.Format.Customer(*customer))
}

// Delete handles DELETE /api/customers/:id
// @Summary Delete a customer
// @Description The customer's deals are kept without a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "delete")
	if err != nil {
		return err
	}

	id := c.Params("id")
	if err := services.DeleteCustomer(c.UserContext(), h.DB, userID, id); err != nil {
		return writeError(c, log, err, customerNotFound(id))
	}

	metrics.Mutation("customer", "delete")
	return utils.MutationSuccessResponse(c, "Customer deleted", 1)
}

// WhatsApp handles GET /api/customers/:id/whatsapp
// @Summary WhatsApp link for a customer
// @Description Deep link with a greeting, built from the customer's phone number
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} services.WhatsAppMessage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /customers/{id}/whatsapp [get]
func (h *CustomerHandler) WhatsApp(c *fiber.Ctx) error {
	userID, log, err := owner(c, "customer", "whatsapp")
	if err != nil {
		return err
	}

	id := c.Params("id")
	msg, err := services.CustomerWhatsApp(c.UserContext(), h.DB, userID, id, h.PhoneRegion)
	if errors.Is(err, services.ErrNoPhone) {
		return utils.NotFoundResponse(c, fmt.Sprintf("Customer '%s' has no phone number", id))
	}
	if err != nil {
		readFailed(log, "customer", err)
		return utils.NotFoundResponse(c, customerNotFound(id))
	}
	return c.JSON(msg)
}
