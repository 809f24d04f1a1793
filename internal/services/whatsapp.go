// whatsapp.go
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
	"fmt"
	"net/url"
	"strings"

	"github.com/ttacon/libphonenumber"
	"gorm.io/gorm"
)

// ErrNoPhone is returned for a WhatsApp link to a customer without a usable phone number
var ErrNoPhone = errors.New("customer has no phone number")

const whatsAppBase = "https://wa.me/"

// WhatsAppMessage is a chat deep link for a customer
type WhatsAppMessage struct {
	Link  string `json:"link"`
	Phone string `json:"phone"`
	Text  string `json:"text"`
	From  string `json:"from,omitempty"`
}

// NormalizePhone returns the digits of the E.164 form of phone, reading numbers
// without a country code in region. Unparseable input falls back to its digits.
func NormalizePhone(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	num, err := libphonenumber.Parse(phone, strings.ToUpper(region))
	if err == nil && libphonenumber.IsPossibleNumber(num) {
		return strings.TrimPrefix(libphonenumber.Format(num, libphonenumber.E164), "+")
	}
	return digitsOnly(phone)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GreetingText is the prefilled message for a customer
func GreetingText(name string) string {
	return fmt.Sprintf("Olá %s, tudo bem?", strings.TrimSpace(name))
}

// WhatsAppLink builds https://wa.me/<digits>?text=<message>
func WhatsAppLink(phone, text, region string) (string, error) {
	digits := NormalizePhone(phone, region)
	if digits == "" {
		return "", ErrNoPhone
	}
	link := whatsAppBase + digits
	if text != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	}
	return link, nil
}

// CustomerWhatsApp builds the greeting link for one customer, noting the
// company WhatsApp number from the user's settings as the sender.
func CustomerWhatsApp(ctx context.Context, db *gorm.DB, userID, id, region string) (*WhatsAppMessage, error) {
	customer, err := GetCustomer(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	text := GreetingText(customer.Name)
	link, err := WhatsAppLink(customer.Phone, text, region)
	if err != nil {
		return nil, err
	}

	msg := &WhatsAppMessage{
		Link:  link,
		Phone: NormalizePhone(customer.Phone, region),
		Text:  text,
	}

	if settings, err := GetSettings(ctx, db, userID); err == nil && settings.CompanyWhatsApp != "" {
		msg.From = NormalizePhone(settings.CompanyWhatsApp, region)
	}
	return msg, nil
}
