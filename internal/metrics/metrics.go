// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts check runs by language and result
	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spellshare_checks_total",
		Help: "Total check runs by language and result",
	}, []string{"language", "result"})

	// CheckDuration tracks the annotation pipeline latency
	CheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spellshare_check_duration_seconds",
		Help:    "Annotation pipeline duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"language"})

	// MisspelledTokens tracks the number of misspelled tokens per check
	MisspelledTokens = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spellshare_misspelled_tokens",
		Help:    "Misspelled tokens per check",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	// SharesTotal counts shares by option
	SharesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spellshare_shares_total",
		Help: "Total shares by expiration option",
	}, []string{"option"})

	// ExpiringChecks reports bucket sizes of the last expiration query
	ExpiringChecks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spellshare_expiring_checks",
		Help: "Shared checks per expiration bucket at the last query",
	}, []string{"bucket"})

	// StoreErrors counts record store failures by operation
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spellshare_store_errors_total",
		Help: "Total record store errors by operation",
	}, []string{"operation"})

	// DictionaryReloads counts dictionary reloads by result
	DictionaryReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spellshare_dictionary_reloads_total",
		Help: "Total dictionary reloads by result",
	}, []string{"result"})

	// ExpiredIndexPruned counts expiring-index entries removed by the janitor
	ExpiredIndexPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spellshare_expired_index_pruned_total",
		Help: "Total expiring-index entries pruned",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
