package gallery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricWindowRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "window_recomputes_total",
		Help:      "Number of scroll-driven window changes.",
	})
	metricWindowJumps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "window_jumps_total",
		Help:      "Number of scrubber jumps that replaced the window.",
	})
	metricMaterializedItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gallery",
		Name:      "materialized_items",
		Help:      "Items currently inside the window.",
	})
	metricScrubberVisible = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gallery",
		Name:      "scrubber_visible",
		Help:      "1 while the scrubber is shown.",
	})
	metricFetches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "fetches_total",
		Help:      "Page fetches issued to the item fetcher.",
	})
	metricFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "fetch_failures_total",
		Help:      "Page fetches that returned an error.",
	})
)

func recordRecompute() {
	metricWindowRecomputes.Inc()
}

func recordJump() {
	metricWindowJumps.Inc()
}

func setMaterializedItems(n int) {
	metricMaterializedItems.Set(float64(n))
}

func setScrubberVisible(s FadeState) {
	if s == FadeVisible {
		metricScrubberVisible.Set(1)
	} else {
		metricScrubberVisible.Set(0)
	}
}

func recordFetch(err error) {
	metricFetches.Inc()
	if err != nil {
		metricFetchFailures.Inc()
	}
}
