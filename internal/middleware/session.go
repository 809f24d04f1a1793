// session.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/types"
)

// sessionKey is the fiber Locals key holding the request session
const sessionKey = "session"

// Session is the authenticated caller of one request
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	cookie string
}

// Cookie returns the session cookie the request was authorized with
func (s *Session) Cookie() string {
	return s.cookie
}

// CurrentSession returns the session RequireSession stored on the request
func CurrentSession(c *fiber.Ctx) (*Session, error) {
	session, ok := c.Locals(sessionKey).(*Session)
	if !ok || session == nil || session.UserID == "" {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "No session on request",
			Type:    "session",
		}
	}
	return session, nil
}

// WithSession stores session on the request
func WithSession(c *fiber.Ctx, session *Session) {
	c.Locals(sessionKey, session)
}
