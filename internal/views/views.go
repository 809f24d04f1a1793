// views.go
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

package views

import (
	"time"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
	"gorm.io/datatypes"
)

// Empty-state messages
const (
	EmptyCustomers   = "Nenhum cliente encontrado."
	EmptyDeals       = "Nenhum negócio encontrado."
	EmptyTasks       = "Nenhuma tarefa encontrada."
	EmptyTodayTasks  = "Nenhuma tarefa para hoje."
	EmptyRecentDeals = "Nenhum negócio recente."
	EmptyColumn      = "Nenhum negócio"
	NotInformed      = "Não informado"
	NoDueDate        = "Sem data definida"
	NoDescription    = "Sem descrição"
)

// List is a page of rows with its empty-state text
type List[T any] struct {
	Items []T    `json:"items"`
	Count int    `json:"count"`
	Empty string `json:"empty,omitempty"`
}

// NewList wraps items, setting empty when there are none
func NewList[T any](items []T, empty string) List[T] {
	if items == nil {
		items = []T{}
	}
	l := List[T]{Items: items, Count: len(items)}
	if len(items) == 0 {
		l.Empty = empty
	}
	return l
}

// CustomerView is a customer row with display strings
type CustomerView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Company        string    `json:"company"`
	Address        string    `json:"address"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	EmailDisplay   string    `json:"email_display"`
	PhoneDisplay   string    `json:"phone_display"`
	CompanyDisplay string    `json:"company_display"`
	CreatedDisplay string    `json:"created_display"`
}

// Customer renders one customer
func (f Formatter) Customer(c models.Customer) CustomerView {
	return CustomerView{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Address:        c.Address,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		EmailDisplay:   orText(c.Email, Placeholder),
		PhoneDisplay:   orText(c.Phone, Placeholder),
		CompanyDisplay: orText(c.Company, Placeholder),
		CreatedDisplay: f.Date(c.CreatedAt),
	}
}

// Customers renders a customer list
func (f Formatter) Customers(cs []models.Customer) List[CustomerView] {
	out := make([]CustomerView, len(cs))
	for i, c := range cs {
		out[i] = f.Customer(c)
	}
	return NewList(out, EmptyCustomers)
}

// CustomerRef is the id and name of a deal's customer
type CustomerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DealView is a deal row with display strings
type DealView struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	CustomerID        *string         `json:"customer_id"`
	Customer          *CustomerRef    `json:"customer"`
	CustomerDisplay   string          `json:"customer_display"`
	Value             models.Money    `json:"value"`
	ValueDisplay      string          `json:"value_display"`
	Status            string          `json:"status"`
	StatusBadge       models.Badge    `json:"status_badge"`
	ExpectedCloseDate *datatypes.Date `json:"expected_close_date"`
	ExpectedDisplay   string          `json:"expected_close_display"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	CreatedDisplay    string          `json:"created_display"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Deal renders one deal
func (f Formatter) Deal(d models.Deal) DealView {
	v := DealView{
		ID:                d.ID,
		Title:             d.Title,
		CustomerID:        d.CustomerID,
		CustomerDisplay:   Placeholder,
		Value:             d.Value,
		ValueDisplay:      f.Money(d.Value, Placeholder),
		Status:            string(d.Status),
		StatusBadge:       d.Status.Badge(),
		ExpectedCloseDate: d.ExpectedCloseDate,
		ExpectedDisplay:   f.CalendarDate(d.ExpectedCloseDate, Placeholder),
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		CreatedDisplay:    f.Date(d.CreatedAt),
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Customer != nil {
		v.Customer = &CustomerRef{ID: d.Customer.ID, Name: d.Customer.Name}
		v.CustomerDisplay = d.Customer.Name
	}
	return v
}

// Deals renders a deal list
func (f Formatter) Deals(ds []models.Deal, empty string) List[DealView] {
	return NewList(f.dealViews(ds), empty)
}

func (f Formatter) dealViews(ds []models.Deal) []DealView {
	out := make([]DealView, len(ds))
	for i, d := range ds {
		out[i] = f.Deal(d)
	}
	return out
}

// TaskView is a task row with display strings
type TaskView struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	DueDate         *time.Time               `json:"due_date"`
	DueDisplay      string                   `json:"due_display"`
	Priority        string                   `json:"priority"`
	PriorityBadge   models.Badge             `json:"priority_badge"`
	IsCompleted     bool                     `json:"is_completed"`
	CompletionLabel string                   `json:"completion_label"`
	RelatedToType   *models.RelatedType      `json:"related_to_type"`
	RelatedToID     *string                  `json:"related_to_id"`
	Related         *services.RelatedSummary `json:"related"`
	RelatedDisplay  string                   `json:"related_display"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// CompletionLabel is the status text of a task
func CompletionLabel(done bool) string {
	if done {
		return "Concluída"
	}
	return "Pendente"
}

// Task renders one task with its resolved relation, which may be nil
func (f Formatter) Task(t models.Task, related *services.RelatedSummary) TaskView {
	v := TaskView{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DueDate:         t.DueDate,
		DueDisplay:      f.DatePtr(t.DueDate, Placeholder),
		Priority:        string(t.Priority),
		PriorityBadge:   t.Priority.Badge(),
		IsCompleted:     t.IsCompleted,
		CompletionLabel: CompletionLabel(t.IsCompleted),
		RelatedToType:   t.RelatedToType,
		RelatedToID:     t.RelatedToID,
		Related:         related,
		RelatedDisplay:  Placeholder,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if related != nil {
		v.RelatedDisplay = related.Label + ": " + related.Name
	}
	return v
}

// Tasks renders tasks that carry their relation
func (f Formatter) Tasks(ts []services.TaskWithRelated, empty string) List[TaskView] {
	out := make([]TaskView, len(ts))
	for i, t := range ts {
		out[i] = f.Task(t.Task, t.Related)
	}
	return NewList(out, empty)
}

// PlainTasks renders tasks whose relation is implied by the page
func (f Formatter) PlainTasks(ts []models.Task, empty string) List[TaskView] {
	out := make([]TaskView, len(ts))
	for i, t := range ts {
		out[i] = f.Task(t, nil)
	}
	return NewList(out, empty)
}
