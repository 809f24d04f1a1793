// dashboard.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/views"
	"gorm.io/gorm"
)

// DashboardHandler handles the dashboard route
type DashboardHandler struct {
	DB     *gorm.DB
	Format views.Formatter
}

// Get handles GET /api/dashboard
// @Summary Dashboard
// @Description Customer, deal, won-value and pending-task totals, today's tasks and the five newest deals
// @Tags Dashboard
// @Produce json
// @Success 200 {object} views.DashboardView
// @Security CookieAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, _, err := owner(c, "dashboard", "get")
	if err != nil {
		return err
	}

	dash := services.GetDashboard(c.UserContext(), h.DB, userID, h.Format.Location)
	return c.JSON(h.Format.Dashboard(dash))
}
