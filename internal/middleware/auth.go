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

package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/types"
	"github.com/sirupsen/logrus"
)

// RequireSession validates the Authorizer session cookie once per request and
// stores the caller for the handlers downstream
func RequireSession(provider services.SessionProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(services.SessionCookie)
		if cookie == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Authorizer cookie %q not found", services.SessionCookie),
				Type:    "session.missing",
			}
		}

		user, err := provider.ValidateSession(c.UserContext(), cookie)
		if err != nil {
			logrus.WithError(err).WithField("url", c.OriginalURL()).Debug("Session rejected")
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid session: %v", err),
				Type:    "session.invalid",
			}
		}

		WithSession(c, &Session{UserID: user.ID, Email: user.Email, cookie: cookie})
		return c.Next()
	}
}
