// dashboard.go
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
	"time"

	"github.com/localnerve/jam-build-crm/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RecentDealsLimit is how many deals the dashboard lists
const RecentDealsLimit = 5

// DashboardStats are the four summary scalars of one user
type DashboardStats struct {
	CustomersCount    int64
	DealsCount        int64
	TotalWonValue     decimal.Decimal
	PendingTasksCount int64
}

// Dashboard is the stats plus the day's pending tasks and the newest deals
type Dashboard struct {
	Stats       DashboardStats
	TodayTasks  []models.Task
	RecentDeals []models.Deal
}

// GetDashboardStats runs the four stat queries concurrently. The numbers are
// independent reads; a failing query is logged and reported as zero.
func GetDashboardStats(ctx context.Context, db *gorm.DB, userID string) DashboardStats {
	var stats DashboardStats
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "entity": "dashboard"})

	g, gctx := errgroup.WithContext(ctx)
	degrade := func(name string, run func() error) {
		g.Go(func() error {
			if err := run(); err != nil {
				log.WithError(err).WithField("stat", name).Warn("Dashboard stat failed")
			}
			return nil
		})
	}

	degrade("customers", func() error {
		return reader(gctx, db, "dashboard.customers").
			Model(&models.Customer{}).
			Scopes(ownedBy(userID)).
			Count(&stats.CustomersCount).Error
	})
	degrade("deals", func() error {
		return reader(gctx, db, "dashboard.deals").
			Model(&models.Deal{}).
			Scopes(ownedBy(userID)).
			Count(&stats.DealsCount).Error
	})
	degrade("won_value", func() error {
		total, err := SumWonValue(gctx, db, userID)
		stats.TotalWonValue = total
		return err
	})
	degrade("pending_tasks", func() error {
		return reader(gctx, db, "dashboard.pending").
			Model(&models.Task{}).
			Scopes(ownedBy(userID)).
			Where("is_completed = ?", false).
			Count(&stats.PendingTasksCount).Error
	})

	_ = g.Wait()
	return stats
}

// SumWonValue totals value over the user's won deals, null values counting as zero
func SumWonValue(ctx context.Context, db *gorm.DB, userID string) (decimal.Decimal, error) {
	rows, err := reader(ctx, db, "dashboard.won").
		Model(&models.Deal{}).
		Scopes(ownedBy(userID)).
		Where("status = ?", models.DealStatusWon).
		Select("COALESCE(SUM(value), 0)").
		Rows()
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	var total decimal.NullDecimal
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return decimal.Zero, err
		}
	}
	if !total.Valid {
		return decimal.Zero, rows.Err()
	}
	return total.Decimal, rows.Err()
}

// GetDashboard collects the stats, today's pending tasks in loc, and the newest deals
func GetDashboard(ctx context.Context, db *gorm.DB, userID string, loc *time.Location) *Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	dash := &Dashboard{Stats: GetDashboardStats(ctx, db, userID)}
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "entity": "dashboard"})

	tasks, err := TodayTasks(ctx, db, userID, loc, time.Now())
	if err != nil {
		log.WithError(err).Warn("Today's tasks lookup failed")
	}
	dash.TodayTasks = tasks

	deals, err := RecentDeals(ctx, db, userID, RecentDealsLimit)
	if err != nil {
		log.WithError(err).Warn("Recent deals lookup failed")
	}
	dash.RecentDeals = deals

	return dash
}
