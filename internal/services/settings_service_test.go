// settings_service_test.go
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

package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/jam-build-crm/internal/database/dbtest"
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"github.com/localnerve/jam-build-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	db := dbtest.NewSQLite(t)

	settings, err := services.GetSettings(context.Background(), db, alice)
	require.NoError(t, err)
	assert.Equal(t, alice, settings.UserID)
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.True(t, settings.NotificationEmail)
	assert.True(t, settings.NotificationApp)
}

func TestSaveSettingsUpserts(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)

	first, err := services.SaveSettings(ctx, db, alice, services.SettingsInput{
		CompanyName:     types.Some("Acme Vendas"),
		CompanyWhatsApp: types.Some("+55 11 98765-4321"),
		Theme:           types.Some("dark"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Vendas", first.CompanyName)
	assert.Equal(t, models.ThemeDark, first.Theme)
	assert.True(t, first.NotificationApp)

	second, err := services.SaveSettings(ctx, db, alice, services.SettingsInput{
		NotificationEmail: types.Some(false),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme Vendas", second.CompanyName)
	assert.Equal(t, models.ThemeDark, second.Theme)
	assert.False(t, second.NotificationEmail)

	var count int64
	require.NoError(t, db.Model(&models.UserSettings{}).Where("user_id = ?", alice).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = services.SaveSettings(ctx, db, alice, services.SettingsInput{Theme: types.Some("neon")})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "theme", verr.Field)

	other, err := services.GetSettings(ctx, db, bob)
	require.NoError(t, err)
	assert.Empty(t, other.CompanyName)
}
