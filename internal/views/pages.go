// pages.go
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
	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/localnerve/jam-build-crm/internal/services"
)

// CustomerDetailView is the customer page
type CustomerDetailView struct {
	Customer       CustomerView   `json:"customer"`
	AddressDisplay string         `json:"address_display"`
	NotesDisplay   string         `json:"notes_display"`
	Deals          List[DealView] `json:"deals"`
	Tasks          List[TaskView] `json:"tasks"`
}

// CustomerDetail renders the customer page
func (f Formatter) CustomerDetail(d *services.CustomerDetail) CustomerDetailView {
	v := CustomerDetailView{
		Customer:       f.Customer(d.Customer),
		AddressDisplay: orText(d.Customer.Address, NotInformed),
		NotesDisplay:   orText(d.Customer.Notes, NotInformed),
		Deals:          f.Deals(d.Deals, EmptyDeals),
		Tasks:          f.PlainTasks(d.Tasks, EmptyTasks),
	}
	v.Customer.EmailDisplay = orText(d.Customer.Email, NotInformed)
	v.Customer.PhoneDisplay = orText(d.Customer.Phone, NotInformed)
	v.Customer.CompanyDisplay = orText(d.Customer.Company, NotInformed)
	for i, t := range d.Tasks {
		v.Tasks.Items[i].DueDisplay = f.DatePtr(t.DueDate, NoDueDate)
	}
	return v
}

// DealDetailView is the deal page
type DealDetailView struct {
	Deal         DealView       `json:"deal"`
	NotesDisplay string         `json:"notes_display"`
	NoCustomer   string         `json:"no_customer,omitempty"`
	Tasks        List[TaskView] `json:"tasks"`
}

// DealDetail renders the deal page
func (f Formatter) DealDetail(d *services.DealDetail) DealDetailView {
	v := DealDetailView{
		Deal:         f.Deal(d.Deal),
		NotesDisplay: orText(d.Deal.Notes, "Não informadas"),
		Tasks:        f.PlainTasks(d.Tasks, EmptyTasks),
	}
	v.Deal.ValueDisplay = f.Money(d.Deal.Value, NotInformed)
	v.Deal.ExpectedDisplay = f.CalendarDate(d.Deal.ExpectedCloseDate, "Não informada")
	if d.Deal.Customer == nil {
		v.NoCustomer = "Nenhum cliente associado a este negócio."
	}
	for i, t := range d.Tasks {
		v.Tasks.Items[i].DueDisplay = f.DatePtr(t.DueDate, NoDueDate)
	}
	return v
}

// TaskDetailView is the task page
type TaskDetailView struct {
	Task               TaskView `json:"task"`
	DescriptionDisplay string   `json:"description_display"`
	CreatedDisplay     string   `json:"created_display"`
	UpdatedDisplay     string   `json:"updated_display"`
}

// TaskDetail renders the task page
func (f Formatter) TaskDetail(t *services.TaskWithRelated) TaskDetailView {
	v := TaskDetailView{
		Task:               f.Task(t.Task, t.Related),
		DescriptionDisplay: orText(t.Task.Description, NoDescription),
		CreatedDisplay:     f.Date(t.Task.CreatedAt),
		UpdatedDisplay:     f.Date(t.Task.UpdatedAt),
	}
	v.Task.DueDisplay = f.DatePtr(t.Task.DueDate, NoDueDate)
	return v
}

// StatsView are the dashboard cards
type StatsView struct {
	CustomersCount       int64        `json:"customers_count"`
	DealsCount           int64        `json:"deals_count"`
	TotalWonValue        models.Money `json:"total_won_value"`
	TotalWonValueDisplay string       `json:"total_won_value_display"`
	PendingTasksCount    int64        `json:"pending_tasks_count"`
}

// DashboardView is the dashboard page
type DashboardView struct {
	Stats       StatsView      `json:"stats"`
	TodayTasks  List[TaskView] `json:"today_tasks"`
	RecentDeals List[DealView] `json:"recent_deals"`
}

// Dashboard renders the dashboard page
func (f Formatter) Dashboard(d *services.Dashboard) DashboardView {
	return DashboardView{
		Stats: StatsView{
			CustomersCount:       d.Stats.CustomersCount,
			DealsCount:           d.Stats.DealsCount,
			TotalWonValue:        models.NewMoney(d.Stats.TotalWonValue),
			TotalWonValueDisplay: f.Currency(d.Stats.TotalWonValue),
			PendingTasksCount:    d.Stats.PendingTasksCount,
		},
		TodayTasks:  f.PlainTasks(d.TodayTasks, EmptyTodayTasks),
		RecentDeals: f.Deals(d.RecentDeals, EmptyRecentDeals),
	}
}

// KanbanColumnView is one bucket of the board
type KanbanColumnView struct {
	Status string     `json:"status"`
	Label  string     `json:"label"`
	Color  string     `json:"color"`
	Count  int        `json:"count"`
	Empty  string     `json:"empty,omitempty"`
	Deals  []DealView `json:"deals"`
}

// Kanban renders the board
func (f Formatter) Kanban(columns []services.KanbanColumn) []KanbanColumnView {
	out := make([]KanbanColumnView, len(columns))
	for i, col := range columns {
		badge := col.Status.Badge()
		out[i] = KanbanColumnView{
			Status: string(col.Status),
			Label:  badge.Label,
			Color:  badge.Color,
			Count:  len(col.Deals),
			Deals:  f.dealViews(col.Deals),
		}
		if len(col.Deals) == 0 {
			out[i].Empty = EmptyColumn
		}
	}
	return out
}
