// metrics.go
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

// Package metrics holds the CRM's own Prometheus series. HTTP request
// metrics come from the fiberprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "crm",
	Name:      "mutations_total",
	Help:      "Successful writes by entity and operation.",
}, []string{"entity", "op"})

var degradedReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "crm",
	Name:      "degraded_reads_total",
	Help:      "Read failures answered with an empty or not-found result.",
}, []string{"entity"})

// Mutation counts one successful write
func Mutation(entity, op string) {
	mutations.WithLabelValues(entity, op).Inc()
}

// DegradedRead counts one read failure that was hidden from the caller
func DegradedRead(entity string) {
	degradedReads.WithLabelValues(entity).Inc()
}
