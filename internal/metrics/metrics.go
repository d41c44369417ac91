package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"TrendsReporter/internal/domain"
)

// Drop reason label values reported by the curation stage.
const (
	ReasonMissingTitle = "missing_title"
	ReasonInvalidURL   = "invalid_url"
	ReasonDuplicate    = "duplicate"
	ReasonDomainLimit  = "domain_limit"
)

// Set bundles the Prometheus collectors exposed by the pipeline.
type Set struct {
	CandidatesIn     prometheus.Counter
	Dropped          *prometheus.CounterVec
	Improved         prometheus.Counter
	GroupsRanked     prometheus.Counter
	ReportsGenerated prometheus.Counter
	RunDuration      prometheus.Histogram
}

// New registers the pipeline collectors on the given registerer.
func New(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)
	return &Set{
		CandidatesIn: factory.NewCounter(prometheus.CounterOpts{
			Name: "trendsreporter_candidates_in_total",
			Help: "Raw search result candidates entering the curation stage.",
		}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trendsreporter_candidates_dropped_total",
			Help: "Candidates dropped during curation, labeled by reason.",
		}, []string{"reason"}),
		Improved: factory.NewCounter(prometheus.CounterOpts{
			Name: "trendsreporter_urls_improved_total",
			Help: "Candidates whose URL was replaced by a better sibling URL.",
		}),
		GroupsRanked: factory.NewCounter(prometheus.CounterOpts{
			Name: "trendsreporter_groups_ranked_total",
			Help: "Article groups that survived curation and were ranked.",
		}),
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "trendsreporter_reports_generated_total",
			Help: "Completed report runs.",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendsreporter_run_duration_seconds",
			Help:    "Wall-clock duration of a full report run.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// ObserveStats translates curation stats into counter increments. A
// nil receiver is a no-op so callers can run without metrics wired.
func (s *Set) ObserveStats(stats domain.CurationStats) {
	if s == nil {
		return
	}
	s.CandidatesIn.Add(float64(stats.Input))
	s.Dropped.WithLabelValues(ReasonMissingTitle).Add(float64(stats.DroppedNoTitle))
	s.Dropped.WithLabelValues(ReasonInvalidURL).Add(float64(stats.DroppedInvalidURL))
	s.Dropped.WithLabelValues(ReasonDuplicate).Add(float64(stats.DroppedDuplicate))
	s.Dropped.WithLabelValues(ReasonDomainLimit).Add(float64(stats.DroppedDomainCap))
	s.Improved.Add(float64(stats.Improved))
}
