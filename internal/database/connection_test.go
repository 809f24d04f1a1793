// connection_test.go
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

package database

import (
	"testing"

	"github.com/localnerve/jam-build-crm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "3306",
		DBDatabase: "crm",
		DBUser:     "crm_user",
		DBPassword: "s3cret",
	}

	dsn := MySQLDSN(cfg)
	assert.Contains(t, dsn, "crm_user:s3cret@tcp(db:3306)/crm?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDialectorNames(t *testing.T) {
	for dbType, want := range map[string]string{
		"mysql":     "mysql",
		"mariadb":   "mysql",
		"postgres":  "postgres",
		"sqlite":    "sqlite",
		"sqlserver": "sqlserver",
	} {
		d, err := Dialector(&config.Config{DBType: dbType, DBHost: "h", DBPort: "1", DBDatabase: "crm"})
		require.NoError(t, err, dbType)
		assert.Equal(t, want, d.Name(), dbType)
	}

	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.EqualError(t, err, "unsupported database type: oracle")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "crm.db?_foreign_keys=on", SQLiteDSN("crm.db"))
	assert.Equal(t, "file:crm.db?cache=shared&_foreign_keys=on", SQLiteDSN("file:crm.db?cache=shared"))
	assert.Equal(t, "crm.db?_foreign_keys=off", SQLiteDSN("crm.db?_foreign_keys=off"))
}
