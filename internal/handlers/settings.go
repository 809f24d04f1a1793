// settings.go
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
	"github.com/localnerve/jam-build-crm/internal/metrics"
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"gorm.io/gorm"
)

// SettingsHandler handles the user settings routes
type SettingsHandler struct {
	DB *gorm.DB
}

// Get handles GET /api/settings
// @Summary Get settings
// @Description Saved settings, or the defaults when none were saved
// @Tags Settings
// @Produce json
// @Success 200 {object} models.UserSettings
// @Security CookieAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, log, err := owner(c, "settings", "get")
	if err != nil {
		return err
	}

	settings, err := services.GetSettings(c.UserContext(), h.DB, userID)
	if err != nil {
		readFailed(log, "settings", err)
		defaults := models.DefaultUserSettings(userID)
		settings = &defaults
	}
	return c.JSON(settings)
}

// Update handles PUT /api/settings
// @Summary Save settings
// @Description Fields left out of the body keep their current value
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body services.SettingsInput true "Settings fields"
// @Success 200 {object} models.UserSettings
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, log, err := owner(c, "settings", "update")
	if err != nil {
		return err
	}

	var in services.SettingsInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, log, err, "")
	}

	settings, err := services.SaveSettings(c.UserContext(), h.DB, userID, in)
	if err != nil {
		return writeError(c, log, err, "")
	}

	metrics.Mutation("settings", "update")
	return c.JSON(settings)
}
