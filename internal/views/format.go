// format.go
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

// Package views turns stored rows into the display records the CRM pages render.
package views

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/localnerve/jam-build-crm/internal/config"
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Placeholder is shown for empty optional values in tables
const Placeholder = "-"

const dateLayout = "02/01/2006"

// Formatter renders money and dates for display
type Formatter struct {
	CurrencySymbol string
	Location       *time.Location
}

// NewFormatter returns a formatter using the configured currency and timezone
func NewFormatter(cfg *config.Config) Formatter {
	return Formatter{
		CurrencySymbol: cfg.CurrencySymbol,
		Location:       cfg.Location(),
	}
}

func (f Formatter) loc() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

// Currency formats d as "R$ 1.234,50" without passing through a float
func (f Formatter) Currency(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := strings.ReplaceAll(humanize.Comma(d.IntPart()), ",", ".")
	fixed := d.StringFixed(2)
	return f.CurrencySymbol + " " + sign + whole + "," + fixed[len(fixed)-2:]
}

// Money formats a nullable amount, or returns empty when null
func (f Formatter) Money(m models.Money, empty string) string {
	if !m.Valid {
		return empty
	}
	return f.Currency(m.Decimal)
}

// Date formats a timestamp as a local calendar date
func (f Formatter) Date(t time.Time) string {
	return t.In(f.loc()).Format(dateLayout)
}

// DatePtr formats an optional timestamp, or returns empty when nil
func (f Formatter) DatePtr(t *time.Time, empty string) string {
	if t == nil {
		return empty
	}
	return f.Date(*t)
}

// CalendarDate formats a date column; it has no time of day so no zone shift applies
func (f Formatter) CalendarDate(d *datatypes.Date, empty string) string {
	if d == nil {
		return empty
	}
	return time.Time(*d).Format(dateLayout)
}

func orText(s, empty string) string {
	if s == "" {
		return empty
	}
	return s
}
