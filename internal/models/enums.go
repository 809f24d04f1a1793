// enums.go
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
	"fmt"
	"strings"
)

// Badge is the display label and color of an enum value
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DealStatus is the pipeline status of a deal
type DealStatus string

const (
	DealStatusNew         DealStatus = "novo"
	DealStatusNegotiating DealStatus = "em_negociacao"
	DealStatusWon         DealStatus = "ganho"
	DealStatusLost        DealStatus = "perdido"
)

// DealStatuses lists the statuses in board order
var DealStatuses = []DealStatus{
	DealStatusNew,
	DealStatusNegotiating,
	DealStatusWon,
	DealStatusLost,
}

var dealStatusAliases = map[string]DealStatus{
	"new":         DealStatusNew,
	"negotiating": DealStatusNegotiating,
	"won":         DealStatusWon,
	"lost":        DealStatusLost,
}

var dealStatusBadges = map[DealStatus]Badge{
	DealStatusNew:         {Label: "Novo", Color: "gray"},
	DealStatusNegotiating: {Label: "Em Negociação", Color: "blue"},
	DealStatusWon:         {Label: "Ganho", Color: "green"},
	DealStatusLost:        {Label: "Perdido", Color: "red"},
}

// ParseDealStatus accepts the stored values and their English aliases
func ParseDealStatus(s string) (DealStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if status, ok := dealStatusAliases[s]; ok {
		return status, nil
	}
	status := DealStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown deal status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the four pipeline statuses
func (s DealStatus) Valid() bool {
	_, ok := dealStatusBadges[s]
	return ok
}

// Badge returns the label and color; unknown values render as new
func (s DealStatus) Badge() Badge {
	if b, ok := dealStatusBadges[s]; ok {
		return b
	}
	return dealStatusBadges[DealStatusNew]
}

// TaskPriority is the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var priorityBadges = map[TaskPriority]Badge{
	PriorityLow:    {Label: "Baixa", Color: "green"},
	PriorityMedium: {Label: "Média", Color: "yellow"},
	PriorityHigh:   {Label: "Alta", Color: "red"},
}

// ParseTaskPriority parses a priority, defaulting an empty value to medium
func ParseTaskPriority(s string) (TaskPriority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := TaskPriority(s)
	if _, ok := priorityBadges[p]; !ok {
		return "", fmt.Errorf("unknown task priority %q", s)
	}
	return p, nil
}

// Badge returns the label and color; unknown values render as low
func (p TaskPriority) Badge() Badge {
	if b, ok := priorityBadges[p]; ok {
		return b
	}
	return priorityBadges[PriorityLow]
}

// RelatedType tags the entity a task points at
type RelatedType string

const (
	RelatedCustomer RelatedType = "customer"
	RelatedDeal     RelatedType = "deal"
)

// Label returns the display prefix for the related entity
func (t RelatedType) Label() string {
	switch t {
	case RelatedCustomer:
		return "Cliente"
	case RelatedDeal:
		return "Negócio"
	}
	return ""
}

// Theme is the UI theme stored in the user settings
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)
