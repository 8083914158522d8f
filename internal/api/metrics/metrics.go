// Package metrics defines and registers all custom Prometheus metrics for
// the TaskHive project API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhive"

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// MembersAddedTotal counts member enrollments.
// Label:
//   - role: the role the member was enrolled under (e.g. "Administrator")
var MembersAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "members_added_total",
		Help:      "Total number of members enrolled into projects, by role.",
	},
	[]string{"role"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportCacheTotal counts report cache decisions.
// Label:
//   - result: "hit" (served from Redis) or "miss" (recomputed)
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of report cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ReportDuration measures end-to-end report generation, cache included.
var ReportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Duration of project report generation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivitiesRecordedTotal counts audit activities persisted by the workers.
// Label:
//   - kind: activity kind (e.g. "member_added")
var ActivitiesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_recorded_total",
		Help:      "Total number of audit activities recorded, by kind.",
	},
	[]string{"kind"},
)

// ActivityQueueDepth tracks activities waiting in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activities pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
