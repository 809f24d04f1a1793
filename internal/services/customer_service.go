// customer_service.go
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
	"strings"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/types"
	"gorm.io/gorm"
)

// CustomerFields are the editable customer columns
type CustomerFields struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=255"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CustomerInput is a create or update request; absent fields keep their current value
type CustomerInput struct {
	Name    types.Optional[string] `json:"name"`
	Email   types.Optional[string] `json:"email"`
	Phone   types.Optional[string] `json:"phone"`
	Company types.Optional[string] `json:"company"`
	Address types.Optional[string] `json:"address"`
	Notes   types.Optional[string] `json:"notes"`
}

func (in CustomerInput) apply(f CustomerFields) CustomerFields {
	f.Name = strings.TrimSpace(in.Name.Or(f.Name))
	f.Email = strings.TrimSpace(in.Email.Or(f.Email))
	f.Phone = strings.TrimSpace(in.Phone.Or(f.Phone))
	f.Company = strings.TrimSpace(in.Company.Or(f.Company))
	f.Address = in.Address.Or(f.Address)
	f.Notes = in.Notes.Or(f.Notes)
	return f
}

func customerFields(c *models.Customer) CustomerFields {
	return CustomerFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Address: c.Address,
		Notes:   c.Notes,
	}
}

func (f CustomerFields) assign(c *models.Customer) {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Company = f.Company
	c.Address = f.Address
	c.Notes = f.Notes
}

var customerColumns = []string{"name", "email", "phone", "company", "address", "notes"}

// CustomerDetail is a customer with its deals and the tasks that point at it
type CustomerDetail struct {
	Customer models.Customer
	Deals    []models.Deal
	Tasks    []models.Task
}

// ListCustomers returns the user's customers ordered by name
func ListCustomers(ctx context.Context, db *gorm.DB, userID string) ([]models.Customer, error) {
	var customers []models.Customer
	err := reader(ctx, db, "customers.list").
		Scopes(ownedBy(userID)).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// GetCustomer returns one customer, ErrNotFound when missing or not owned
func GetCustomer(ctx context.Context, db *gorm.DB, userID, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := firstOwned(reader(ctx, db, "customers.get"), userID, id, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerDetail returns a customer with its deals, newest first, and its tasks by due date
func GetCustomerDetail(ctx context.Context, db *gorm.DB, userID, id string) (*CustomerDetail, error) {
	customer, err := GetCustomer(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	detail := &CustomerDetail{Customer: *customer}

	if err := reader(ctx, db, "customers.detail.deals").
		Scopes(ownedBy(userID)).
		Where("customer_id = ?", id).
		Order("created_at DESC").
		Find(&detail.Deals).Error; err != nil {
		return nil, err
	}

	if err := reader(ctx, db, "customers.detail.tasks").
		Scopes(ownedBy(userID)).
		Where("related_to_type = ? AND related_to_id = ?", models.RelatedCustomer, id).
		Order(dueDateOrder).
		Find(&detail.Tasks).Error; err != nil {
		return nil, err
	}

	return detail, nil
}

// CreateCustomer inserts a customer owned by userID
func CreateCustomer(ctx context.Context, db *gorm.DB, userID string, in CustomerInput) (*models.Customer, error) {
	fields := in.apply(CustomerFields{})
	if err := validateStruct(fields); err != nil {
		return nil, err
	}

	customer := &models.Customer{UserID: userID}
	fields.assign(customer)

	if err := db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer applies the submitted fields and writes every editable column
func UpdateCustomer(ctx context.Context, db *gorm.DB, userID, id string, in CustomerInput) (*models.Customer, error) {
	customer, err := GetCustomer(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	fields := in.apply(customerFields(customer))
	if err := validateStruct(fields); err != nil {
		return nil, err
	}
	fields.assign(customer)

	if err := db.WithContext(ctx).
		Model(customer).
		Where("user_id = ?", userID).
		Select(customerColumns).
		Updates(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer; its deals keep existing with no customer
func DeleteCustomer(ctx context.Context, db *gorm.DB, userID, id string) error {
	return deleteOwned(ctx, db, &models.Customer{}, userID, id)
}
