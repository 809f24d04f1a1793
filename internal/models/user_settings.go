// user_settings.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings holds the per-user company and preference fields, one row per user
type UserSettings struct {
	ID                string    `gorm:"type:char(36);primaryKey" json:"-"`
	UserID            string    `gorm:"type:char(36);not null;uniqueIndex" json:"user_id"`
	CompanyName       string    `gorm:"size:255" json:"company_name"`
	CompanyWhatsApp   string    `gorm:"column:company_whatsapp;size:50" json:"company_whatsapp"`
	Theme             Theme     `gorm:"size:10;not null" json:"theme"`
	NotificationEmail bool      `gorm:"not null" json:"notification_email"`
	NotificationApp   bool      `gorm:"not null" json:"notification_app"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultUserSettings is what a user sees before saving settings
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:            userID,
		Theme:             ThemeLight,
		NotificationEmail: true,
		NotificationApp:   true,
	}
}

// BeforeCreate generates the primary key
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}
