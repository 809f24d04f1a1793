// related.go
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

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RelatedSummary is the display record of a task's related customer or deal
type RelatedSummary struct {
	Type  models.RelatedType `json:"type"`
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Label string             `json:"label"`
}

type relatedRow struct {
	ID   string
	Name string
}

func summaryOf(kind models.RelatedType, row relatedRow) *RelatedSummary {
	return &RelatedSummary{
		Type:  kind,
		ID:    row.ID,
		Name:  row.Name,
		Label: kind.Label(),
	}
}

// relatedQuery selects id and display name from the table the tag points at
func relatedQuery(ctx context.Context, db *gorm.DB, userID string, kind models.RelatedType) *gorm.DB {
	tx := reader(ctx, db, "related."+string(kind)).Scopes(ownedBy(userID))
	switch kind {
	case models.RelatedCustomer:
		return tx.Model(&models.Customer{}).Select("id", "name")
	case models.RelatedDeal:
		return tx.Model(&models.Deal{}).Select("id", "title AS name")
	}
	return nil
}

// ResolveRelated looks up the row a task points at. A missing tag, a missing id,
// or a row that no longer exists all resolve to nil.
func ResolveRelated(ctx context.Context, db *gorm.DB, userID string, ref models.RelatedRef) (*RelatedSummary, error) {
	if ref.IsNone() {
		return nil, nil
	}

	tx := relatedQuery(ctx, db, userID, ref.Kind())
	if tx == nil {
		return nil, nil
	}

	var row relatedRow
	err := tx.Where("id = ?", ref.ID()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return summaryOf(ref.Kind(), row), nil
}

// ResolveRelatedBatch resolves many references with one query per target table
func ResolveRelatedBatch(ctx context.Context, db *gorm.DB, userID string, refs []models.RelatedRef) (map[models.RelatedRef]*RelatedSummary, error) {
	ids := make(map[models.RelatedType][]string)
	seen := make(map[models.RelatedRef]struct{})
	for _, ref := range refs {
		if ref.IsNone() {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		ids[ref.Kind()] = append(ids[ref.Kind()], ref.ID())
	}

	out := make(map[models.RelatedRef]*RelatedSummary, len(seen))
	for _, kind := range []models.RelatedType{models.RelatedCustomer, models.RelatedDeal} {
		if len(ids[kind]) == 0 {
			continue
		}

		var rows []relatedRow
		if err := relatedQuery(ctx, db, userID, kind).Where("id IN ?", ids[kind]).Find(&rows).Error; err != nil {
			return out, err
		}
		for _, row := range rows {
			ref, _ := models.ParseRelatedRef(string(kind), row.ID)
			out[ref] = summaryOf(kind, row)
		}
	}
	return out, nil
}

// withRelated attaches summaries to tasks; a failed lookup leaves them unrelated
func withRelated(ctx context.Context, db *gorm.DB, userID string, tasks []models.Task) []TaskWithRelated {
	refs := make([]models.RelatedRef, len(tasks))
	for i, t := range tasks {
		refs[i] = t.Related()
	}

	summaries, err := ResolveRelatedBatch(ctx, db, userID, refs)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Related lookup failed")
	}

	out := make([]TaskWithRelated, len(tasks))
	for i, t := range tasks {
		out[i] = TaskWithRelated{Task: t, Related: summaries[refs[i]]}
	}
	return out
}

// RelationOption is one choice in a task's related-entity picker
type RelationOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RelationOptions are the customers and deals a task may point at
type RelationOptions struct {
	Customers []RelationOption `json:"customers"`
	Deals     []RelationOption `json:"deals"`
}

// ListRelationOptions returns customers by name and deals by title
func ListRelationOptions(ctx context.Context, db *gorm.DB, userID string) (*RelationOptions, error) {
	opts := &RelationOptions{
		Customers: []RelationOption{},
		Deals:     []RelationOption{},
	}

	if err := relatedQuery(ctx, db, userID, models.RelatedCustomer).
		Order("name ASC").
		Find(&opts.Customers).Error; err != nil {
		return nil, err
	}
	if err := relatedQuery(ctx, db, userID, models.RelatedDeal).
		Order("title ASC").
		Find(&opts.Deals).Error; err != nil {
		return nil, err
	}
	return opts, nil
}
