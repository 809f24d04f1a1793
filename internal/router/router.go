// router.go
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

package router

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/jam-build-crm/internal/config"
	"github.com/localnerve/jam-build-crm/internal/handlers"
	"github.com/localnerve/jam-build-crm/internal/middleware"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/types"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/localnerve/jam-build-crm/internal/views"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes need
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Provider services.SessionProvider
}

// Options toggles the process-wide extras
type Options struct {
	// Metrics registers the Prometheus middleware and /metrics; it can only be done once per process
	Metrics   bool
	Swagger   bool
	AccessLog bool
}

// New builds the fiber app with every CRM route under /api
func New(deps Deps, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		AppName:      "jam-build-crm",
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.AppURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: deps.Config.AppURL != "",
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	if opts.Metrics {
		prometheus := fiberprometheus.New("jam-build-crm")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	format := views.NewFormatter(deps.Config)
	health := &handlers.HealthHandler{Config: deps.Config, DB: deps.DB}
	auth := &handlers.AuthHandler{Provider: deps.Provider}
	dashboard := &handlers.DashboardHandler{DB: deps.DB, Format: format}
	customers := &handlers.CustomerHandler{DB: deps.DB, Format: format, PhoneRegion: deps.Config.PhoneRegion}
	deals := &handlers.DealHandler{DB: deps.DB, Format: format}
	tasks := &handlers.TaskHandler{DB: deps.DB, Format: format}
	settings := &handlers.SettingsHandler{DB: deps.DB}

	api := app.Group("/api")

	// Public routes
	api.Get("/health", health.Get)
	api.Post("/auth/forgot-password", auth.ForgotPassword)

	// Everything below requires an Authorizer session. The guard is attached per
	// route so unknown /api paths still reach the 404 handler.
	guard := middleware.RequireSession(deps.Provider)

	api.Get("/auth/me", guard, auth.Me)
	api.Post("/auth/logout", guard, auth.Logout)
	api.Put("/auth/password", guard, auth.UpdatePassword)

	api.Get("/dashboard", guard, dashboard.Get)

	api.Get("/customers", guard, customers.List)
	api.Post("/customers", guard, customers.Create)
	api.Get("/customers/:id/whatsapp", guard, customers.WhatsApp)
	api.Get("/customers/:id", guard, customers.Get)
	api.Put("/customers/:id", guard, customers.Update)
	api.Delete("/customers/:id", guard, customers.Delete)

	api.Get("/deals", guard, deals.List)
	api.Post("/deals", guard, deals.Create)
	api.Get("/deals/kanban", guard, deals.Kanban)
	api.Post("/deals/kanban/move", guard, deals.Move)
	api.Patch("/deals/:id/status", guard, deals.UpdateStatus)
	api.Get("/deals/:id", guard, deals.Get)
	api.Put("/deals/:id", guard, deals.Update)
	api.Delete("/deals/:id", guard, deals.Delete)

	api.Get("/tasks", guard, tasks.List)
	api.Post("/tasks", guard, tasks.Create)
	api.Get("/tasks/relations", guard, tasks.Relations)
	api.Patch("/tasks/:id/completion", guard, tasks.Completion)
	api.Get("/tasks/:id", guard, tasks.Get)
	api.Put("/tasks/:id", guard, tasks.Update)
	api.Delete("/tasks/:id", guard, tasks.Delete)

	api.Get("/settings", guard, settings.Get)
	api.Put("/settings", guard, settings.Update)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// ErrorHandler renders errors that escape the handlers in the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fiberErr *fiber.Error
	var customErr *types.CustomError
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
