package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stoik/phishing-detector/internal/domain"
	"github.com/stoik/phishing-detector/internal/lexicon"
)

// scoreBuckets follow the assessment tier boundaries
var scoreBuckets = []float64{0, 15, 40, 60, 75, 90, 100}

// Metrics holds the Prometheus collectors for the detection pipeline
type Metrics struct {
	analyses       *prometheus.CounterVec
	finalScore     prometheus.Histogram
	detectorScore  *prometheus.HistogramVec
	escalations    *prometheus.CounterVec
	multipliers    *prometheus.CounterVec
	cacheHits      prometheus.Counter
	lexiconEntries *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phishing_analyses_total",
			Help: "Total number of emails analyzed, by assessment",
		}, []string{"assessment"}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishing_final_score",
			Help:    "Distribution of final phishing scores",
			Buckets: scoreBuckets,
		}),
		detectorScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phishing_detector_score",
			Help:    "Distribution of raw detector scores",
			Buckets: scoreBuckets,
		}, []string{"category"}),
		escalations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phishing_escalations_total",
			Help: "Total number of analyses where a risk escalation tier applied",
		}, []string{"tier"}),
		multipliers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phishing_multipliers_total",
			Help: "Total number of analyses where a combination multiplier applied",
		}, []string{"rule"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "phishing_cache_hits_total",
			Help: "Total number of analyses served from cache",
		}),
		lexiconEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "phishing_lexicon_entries",
			Help: "Number of entries per lexicon list, -1 when the list failed to load",
		}, []string{"list"}),
	}

	reg.MustRegister(
		m.analyses,
		m.finalScore,
		m.detectorScore,
		m.escalations,
		m.multipliers,
		m.cacheHits,
		m.lexiconEntries,
	)

	return m
}

// ObserveAnalysis records one composite result
func (m *Metrics) ObserveAnalysis(result domain.CompositeResult) {
	m.analyses.WithLabelValues(string(result.Assessment)).Inc()
	m.finalScore.Observe(float64(result.FinalScore))

	for _, r := range result.Results {
		m.detectorScore.WithLabelValues(string(r.Category)).Observe(float64(r.Score))
	}
	if result.Escalation != "" && result.Escalation != domain.EscalationNone {
		m.escalations.WithLabelValues(string(result.Escalation)).Inc()
	}
	if result.Multiplier != "" && result.Multiplier != domain.MultiplierNone {
		m.multipliers.WithLabelValues(string(result.Multiplier)).Inc()
	}
}

// CacheHit records an analysis served from cache
func (m *Metrics) CacheHit() {
	m.cacheHits.Inc()
}

// ObserveLexicon publishes list sizes
func (m *Metrics) ObserveLexicon(lex *lexicon.Lexicon) {
	for _, name := range lexicon.Names {
		size := float64(lex.Size(name))
		if !lex.Loaded(name) {
			size = -1
		}
		m.lexiconEntries.WithLabelValues(string(name)).Set(size)
	}
}
