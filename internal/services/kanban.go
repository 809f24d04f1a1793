// kanban.go
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

	"github.com/localnerve/jam-build-crm/internal/models"
	"gorm.io/gorm"
)

// KanbanColumn is one status bucket of the board
type KanbanColumn struct {
	Status models.DealStatus
	Deals  []models.Deal
}

// BuildKanban groups deals into the four status buckets in board order,
// keeping the incoming order within each bucket. Unknown statuses land in novo.
func BuildKanban(deals []models.Deal) []KanbanColumn {
	columns := make([]KanbanColumn, len(models.DealStatuses))
	index := make(map[models.DealStatus]int, len(models.DealStatuses))
	for i, status := range models.DealStatuses {
		columns[i] = KanbanColumn{Status: status, Deals: []models.Deal{}}
		index[status] = i
	}

	for _, deal := range deals {
		i, ok := index[deal.Status]
		if !ok {
			i = index[models.DealStatusNew]
		}
		columns[i].Deals = append(columns[i].Deals, deal)
	}
	return columns
}

// GetKanban loads the user's deals, newest first, and buckets them by status
func GetKanban(ctx context.Context, db *gorm.DB, userID string) ([]KanbanColumn, error) {
	deals, err := ListDeals(ctx, db, userID)
	if err != nil {
		return BuildKanban(nil), err
	}
	return BuildKanban(deals), nil
}

// MoveResult reports the outcome of a board drop
type MoveResult struct {
	Deal  *models.Deal
	Moved bool
}

// MoveDeal puts a deal in the target bucket. Dropping it on its own bucket writes nothing.
func MoveDeal(ctx context.Context, db *gorm.DB, userID, id, target string) (*MoveResult, error) {
	status, err := models.ParseDealStatus(target)
	if err != nil {
		return nil, invalid("status", "must be one of: novo, em_negociacao, ganho, perdido")
	}

	deal, err := GetDeal(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}
	if deal.Status == status {
		return &MoveResult{Deal: deal}, nil
	}

	if err := updateOwnedColumns(ctx, db, "deals.move", &models.Deal{}, userID, id, map[string]any{
		"status": status,
	}); err != nil {
		return nil, err
	}
	deal.Status = status
	return &MoveResult{Deal: deal, Moved: true}, nil
}
