// deal_service.go
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
	"time"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DealInput is a create or update request; absent fields keep their current value
type DealInput struct {
	Title             types.Optional[string]         `json:"title"`
	CustomerID        types.Optional[*string]        `json:"customer_id"`
	Value             types.Optional[models.Money]   `json:"value"`
	Status            types.Optional[string]         `json:"status"`
	ExpectedCloseDate types.Optional[types.FlexDate] `json:"expected_close_date"`
	Notes             types.Optional[string]         `json:"notes"`
}

type dealFields struct {
	Title string `json:"title" validate:"required,max=255"`
}

var dealColumns = []string{"title", "customer_id", "value", "status", "expected_close_date", "notes", "updated_at"}

// DealDetail is a deal with its customer and the tasks that point at it
type DealDetail struct {
	Deal  models.Deal
	Tasks []models.Task
}

// apply merges the input into deal and checks the result
func (in DealInput) apply(ctx context.Context, db *gorm.DB, userID string, deal *models.Deal) error {
	deal.Title = strings.TrimSpace(in.Title.Or(deal.Title))
	deal.Notes = in.Notes.Or(deal.Notes)

	if err := validateStruct(dealFields{Title: deal.Title}); err != nil {
		return err
	}

	if in.Status.Set {
		raw := strings.TrimSpace(in.Status.Value)
		if raw == "" {
			deal.Status = models.DealStatusNew
		} else {
			status, err := models.ParseDealStatus(raw)
			if err != nil {
				return invalid("status", "must be one of: novo, em_negociacao, ganho, perdido")
			}
			deal.Status = status
		}
	}
	if deal.Status == "" {
		deal.Status = models.DealStatusNew
	}

	if in.Value.Set {
		deal.Value = in.Value.Value
	}
	if deal.Value.Valid && deal.Value.Decimal.IsNegative() {
		return invalid("value", "must not be negative")
	}

	if in.ExpectedCloseDate.Set {
		deal.ExpectedCloseDate = dateOnly(in.ExpectedCloseDate.Value)
	}

	if in.CustomerID.Set {
		deal.CustomerID = nil
		deal.Customer = nil
		if id := in.CustomerID.Value; id != nil && strings.TrimSpace(*id) != "" {
			customerID := strings.TrimSpace(*id)
			ok, err := existsOwned(ctx, db, "deals.customer", &models.Customer{}, userID, customerID)
			if err != nil {
				return err
			}
			if !ok {
				return invalid("customer_id", "customer not found")
			}
			deal.CustomerID = &customerID
		}
	}

	return nil
}

func dateOnly(f types.FlexDate) *datatypes.Date {
	if !f.Valid {
		return nil
	}
	y, m, d := f.Time.Date()
	date := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &date
}

func withCustomerSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name")
	})
}

// ListDeals returns the user's deals, newest first, with the customer name
func ListDeals(ctx context.Context, db *gorm.DB, userID string) ([]models.Deal, error) {
	var deals []models.Deal
	err := withCustomerSummary(reader(ctx, db, "deals.list")).
		Scopes(ownedBy(userID)).
		Order("created_at DESC").
		Find(&deals).Error
	return deals, err
}

// RecentDeals returns the newest limit deals with the customer name
func RecentDeals(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.Deal, error) {
	var deals []models.Deal
	err := withCustomerSummary(reader(ctx, db, "deals.recent")).
		Scopes(ownedBy(userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&deals).Error
	return deals, err
}

// GetDeal returns one deal with its customer summary
func GetDeal(ctx context.Context, db *gorm.DB, userID, id string) (*models.Deal, error) {
	var deal models.Deal
	if err := firstOwned(withCustomerSummary(reader(ctx, db, "deals.get")), userID, id, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

// GetDealDetail returns a deal with the tasks that point at it
func GetDealDetail(ctx context.Context, db *gorm.DB, userID, id string) (*DealDetail, error) {
	deal, err := GetDeal(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	detail := &DealDetail{Deal: *deal}
	if err := reader(ctx, db, "deals.detail.tasks").
		Scopes(ownedBy(userID)).
		Where("related_to_type = ? AND related_to_id = ?", models.RelatedDeal, id).
		Order(dueDateOrder).
		Find(&detail.Tasks).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// CreateDeal inserts a deal owned by userID; status defaults to novo
func CreateDeal(ctx context.Context, db *gorm.DB, userID string, in DealInput) (*models.Deal, error) {
	deal := &models.Deal{UserID: userID}
	if err := in.apply(ctx, db, userID, deal); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Omit("Customer").Create(deal).Error; err != nil {
		return nil, err
	}
	return GetDeal(ctx, db, userID, deal.ID)
}

// UpdateDeal applies the submitted fields and writes every editable column
func UpdateDeal(ctx context.Context, db *gorm.DB, userID, id string, in DealInput) (*models.Deal, error) {
	deal, err := GetDeal(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	if err := in.apply(ctx, db, userID, deal); err != nil {
		return nil, err
	}
	deal.UpdatedAt = now()

	if err := db.WithContext(ctx).
		Model(deal).
		Where("user_id = ?", userID).
		Omit("Customer").
		Select(dealColumns).
		Updates(deal).Error; err != nil {
		return nil, err
	}
	return GetDeal(ctx, db, userID, id)
}

// UpdateDealStatus sets the status column only. Any status may follow any other.
func UpdateDealStatus(ctx context.Context, db *gorm.DB, userID, id, status string) (*models.Deal, error) {
	parsed, err := models.ParseDealStatus(status)
	if err != nil {
		return nil, invalid("status", "must be one of: novo, em_negociacao, ganho, perdido")
	}

	if err := updateOwnedColumns(ctx, db, "deals.status", &models.Deal{}, userID, id, map[string]any{
		"status": parsed,
	}); err != nil {
		return nil, err
	}
	return GetDeal(ctx, db, userID, id)
}

// DeleteDeal removes a deal
func DeleteDeal(ctx context.Context, db *gorm.DB, userID, id string) error {
	return deleteOwned(ctx, db, &models.Deal{}, userID, id)
}
