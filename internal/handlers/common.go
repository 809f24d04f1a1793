// common.go
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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-crm/internal/logging"
	"github.com/localnerve/jam-build-crm/internal/metrics"
	"github.com/localnerve/jam-build-crm/internal/middleware"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/sirupsen/logrus"
)

// owner returns the caller's user id and a log entry scoped to the operation
func owner(c *fiber.Ctx, entity, op string) (string, *logrus.Entry, error) {
	session, err := middleware.CurrentSession(c)
	if err != nil {
		return "", nil, err
	}
	return session.UserID, logging.ForUser(session.UserID, entity, op), nil
}

// parseBody decodes a JSON request body, answering 400 when it is malformed
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return &services.ValidationError{Field: field, Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// writeError maps a service error onto the response envelope
func writeError(c *fiber.Ctx, log *logrus.Entry, err error, notFound string) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFound)
	case errors.As(err, &verr):
		return utils.ValidationResponse(c, verr.Field, verr.Error())
	}

	log.WithError(err).Error("Write failed")
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "write")
}

// readFailed records a read error that is answered with an empty or not-found result
func readFailed(log *logrus.Entry, entity string, err error) {
	if err == nil || errors.Is(err, services.ErrNotFound) {
		return
	}
	metrics.DegradedRead(entity)
	log.WithError(err).Warn("Read failed, returning empty result")
}

func isValidation(err error) bool {
	var verr *services.ValidationError
	return errors.As(err, &verr)
}
