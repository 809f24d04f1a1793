// task.go
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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a to-do item, optionally pointing at a customer or a deal.
// related_to_id carries no foreign key; the target may not exist.
type Task struct {
	ID            string       `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string       `gorm:"type:char(36);not null;index:idx_tasks_user_due" json:"user_id"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	DueDate       *time.Time   `gorm:"index:idx_tasks_user_due" json:"due_date"`
	Priority      TaskPriority `gorm:"size:10;not null;default:medium" json:"priority"`
	IsCompleted   bool         `gorm:"not null" json:"is_completed"`
	RelatedToType *RelatedType `gorm:"size:20" json:"related_to_type"`
	RelatedToID   *string      `gorm:"type:char(36);index" json:"related_to_id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// BeforeCreate generates the primary key
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// Related returns the task's polymorphic reference
func (t Task) Related() RelatedRef {
	if t.RelatedToType == nil || t.RelatedToID == nil {
		return NoRelation
	}
	ref, err := ParseRelatedRef(string(*t.RelatedToType), *t.RelatedToID)
	if err != nil {
		return NoRelation
	}
	return ref
}

// SetRelated stores ref in the type tag and id columns
func (t *Task) SetRelated(ref RelatedRef) {
	if ref.IsNone() {
		t.RelatedToType = nil
		t.RelatedToID = nil
		return
	}
	kind := ref.Kind()
	id := ref.ID()
	t.RelatedToType = &kind
	t.RelatedToID = &id
}
