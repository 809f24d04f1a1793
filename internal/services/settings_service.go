// settings_service.go
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

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsInput is a settings update; absent fields keep their current value
type SettingsInput struct {
	CompanyName       types.Optional[string] `json:"company_name"`
	CompanyWhatsApp   types.Optional[string] `json:"company_whatsapp"`
	Theme             types.Optional[string] `json:"theme"`
	NotificationEmail types.Optional[bool]   `json:"notification_email"`
	NotificationApp   types.Optional[bool]   `json:"notification_app"`
}

type settingsFields struct {
	CompanyName     string `json:"company_name" validate:"max=255"`
	CompanyWhatsApp string `json:"company_whatsapp" validate:"max=50"`
	Theme           string `json:"theme" validate:"oneof=light dark system"`
}

// GetSettings returns the user's settings, or the defaults when none were saved
func GetSettings(ctx context.Context, db *gorm.DB, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := reader(ctx, db, "settings.get").Scopes(ownedBy(userID)).Take(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultUserSettings(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings merges the input over the current settings and upserts the row
func SaveSettings(ctx context.Context, db *gorm.DB, userID string, in SettingsInput) (*models.UserSettings, error) {
	settings, err := GetSettings(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	settings.CompanyName = strings.TrimSpace(in.CompanyName.Or(settings.CompanyName))
	settings.CompanyWhatsApp = strings.TrimSpace(in.CompanyWhatsApp.Or(settings.CompanyWhatsApp))
	settings.Theme = models.Theme(strings.ToLower(strings.TrimSpace(in.Theme.Or(string(settings.Theme)))))
	settings.NotificationEmail = in.NotificationEmail.Or(settings.NotificationEmail)
	settings.NotificationApp = in.NotificationApp.Or(settings.NotificationApp)
	settings.UpdatedAt = now()

	if err := validateStruct(settingsFields{
		CompanyName:     settings.CompanyName,
		CompanyWhatsApp: settings.CompanyWhatsApp,
		Theme:           string(settings.Theme),
	}); err != nil {
		return nil, err
	}

	// Always insert a fresh row and let the user_id conflict turn it into an update
	settings.ID = ""
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "company_whatsapp", "theme",
			"notification_email", "notification_app", "updated_at",
		}),
	}).Create(settings).Error; err != nil {
		return nil, err
	}
	return GetSettings(ctx, db, userID)
}
