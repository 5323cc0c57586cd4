package metrics

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the storefront's Prometheus collectors.
type MetricsManager struct {
	Registry            *prometheus.Registry
	CartMutationsTotal  *prometheus.CounterVec
	CartStoresOpen      prometheus.Gauge
	CartRecoveriesTotal prometheus.Counter
	CheckoutsTotal      *prometheus.CounterVec
	OrderValue          prometheus.Histogram
	APIErrorsTotal      *prometheus.CounterVec
	APILatency          *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	cartMutationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Committed cart changes by operation.",
	}, []string{"operation"})
	cartStoresOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_stores_open",
		Help:      "Session cart stores currently held in memory.",
	})
	cartRecoveriesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_corrupt_recoveries_total",
		Help:      "Persisted carts that could not be decoded and were reset to empty.",
	})
	checkoutsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Grand total of placed orders.",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 12),
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route.",
	}, []string{"route", "status"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		cartMutationsTotal,
		cartStoresOpen,
		cartRecoveriesTotal,
		checkoutsTotal,
		orderValue,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:            registry,
		CartMutationsTotal:  cartMutationsTotal,
		CartStoresOpen:      cartStoresOpen,
		CartRecoveriesTotal: cartRecoveriesTotal,
		CheckoutsTotal:      checkoutsTotal,
		OrderValue:          orderValue,
		APIErrorsTotal:      apiErrorsTotal,
		APILatency:          apiLatency,
	}
}

// NewMetricsServer returns the /metrics server for port, or nil when no port
// is configured. The caller owns ListenAndServe and Shutdown.
func NewMetricsServer(port string, log logger.Logger, registry *prometheus.Registry) *http.Server {
	if port == "" {
		log.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
}
