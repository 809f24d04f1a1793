// money.go
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
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Money is a nullable currency amount with two decimal places
type Money struct {
	decimal.NullDecimal
}

// NewMoney returns a valid amount
func NewMoney(d decimal.Decimal) Money {
	return Money{decimal.NewNullDecimal(d)}
}

// MoneyFromInt returns a valid whole amount
func MoneyFromInt(v int64) Money {
	return NewMoney(decimal.NewFromInt(v))
}

// Value promotes the embedded NullDecimal's Value method
func (m Money) Value() (driver.Value, error) {
	return m.NullDecimal.Value()
}

// Scan promotes the embedded NullDecimal's Scan method
func (m *Money) Scan(value interface{}) error {
	return m.NullDecimal.Scan(value)
}

// GormDBDataType keeps a fixed-point column on every driver
func (Money) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "sqlserver", "mssql":
		return "DECIMAL(14,2)"
	case "postgres":
		return "NUMERIC(14,2)"
	case "sqlite":
		return "NUMERIC"
	}
	return "DECIMAL(14,2)"
}

// OrZero returns the amount, treating null as zero
func (m Money) OrZero() decimal.Decimal {
	if !m.Valid {
		return decimal.Zero
	}
	return m.Decimal
}

// MarshalJSON writes null or a JSON number with two decimals
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(m.Decimal.StringFixed(2)), nil
}

// UnmarshalJSON accepts null, an empty string, a JSON number or a numeric string
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		m.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	raw := data
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("Money: invalid amount %s: %w", string(data), err)
	}
	m.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}
