// auth.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/logging"
	"github.com/localnerve/jam-build-crm/internal/middleware"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles the session routes
type AuthHandler struct {
	Provider services.SessionProvider
}

// ForgotPasswordRequest is the body of a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} middleware.Session
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, err := middleware.CurrentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Description Ends the Authorizer session and clears the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, err := middleware.CurrentSession(c)
	if err != nil {
		return err
	}

	if err := h.Provider.Logout(c.UserContext(), session.Cookie()); err != nil {
		logrus.WithError(err).WithField("user_id", session.UserID).Error("Logout failed")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "auth.logout")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return utils.MutationSuccessResponse(c, "Signed out", 0)
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Description Asks Authorizer to e-mail a reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account e-mail"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	log := logrus.WithField("op", "forgot-password")

	var req ForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, log, err, "")
	}

	if err := h.Provider.ForgotPassword(c.UserContext(), req.Email); err != nil {
		if isValidation(err) {
			return writeError(c, log, err, "")
		}
		log.WithError(err).Error("Password reset failed")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "auth.forgotPassword")
	}
	return utils.MutationSuccessResponse(c, "Password reset e-mail sent", 0)
}

// UpdatePassword handles PUT /api/auth/password
// @Summary Change password
// @Description Replaces the caller's password; the confirmation must match the new password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body services.PasswordChange true "Old and new passwords"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	session, err := middleware.CurrentSession(c)
	if err != nil {
		return err
	}
	log := logging.ForUser(session.UserID, "auth", "password")

	var req services.PasswordChange
	if err := parseBody(c, &req); err != nil {
		return writeError(c, log, err, "")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, log, err, "")
	}

	if err := h.Provider.UpdatePassword(c.UserContext(), session.Cookie(), req); err != nil {
		if isValidation(err) {
			return writeError(c, log, err, "")
		}
		log.WithError(err).Error("Password update failed")
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "auth.updatePassword")
	}
	return utils.MutationSuccessResponse(c, "Password updated", 0)
}
