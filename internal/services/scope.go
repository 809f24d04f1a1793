// scope.go
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
	"time"

	"gorm.io/gorm"
	"gorm.io/hints"
)

// reader returns a context-bound session whose SELECTs carry an operation comment
func reader(ctx context.Context, db *gorm.DB, op string) *gorm.DB {
	return db.WithContext(ctx).Clauses(hints.Comment("select", "crm:"+op))
}

// ownedBy restricts a query to the rows of one user
func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// firstOwned loads one row by id and owner into dest
func firstOwned(tx *gorm.DB, userID, id string, dest any) error {
	err := tx.Scopes(ownedBy(userID)).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// existsOwned reports whether model has a row with id owned by userID
func existsOwned(ctx context.Context, db *gorm.DB, op string, model any, userID, id string) (bool, error) {
	var count int64
	err := reader(ctx, db, op).Model(model).Scopes(ownedBy(userID)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// deleteOwned removes one row by id and owner
func deleteOwned(ctx context.Context, db *gorm.DB, model any, userID, id string) error {
	res := db.WithContext(ctx).Scopes(ownedBy(userID)).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updateOwnedColumns writes columns on one owned row. MySQL reports zero
// affected rows when nothing changed, so a miss is confirmed with a lookup.
func updateOwnedColumns(ctx context.Context, db *gorm.DB, op string, model any, userID, id string, columns map[string]any) error {
	res := db.WithContext(ctx).Model(model).Scopes(ownedBy(userID)).Where("id = ?", id).UpdateColumns(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	ok, err := existsOwned(ctx, db, op, model, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
