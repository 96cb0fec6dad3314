package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the collector registry, in OpenMetrics when the scraper
// asks for it. Scrapes are themselves counted on the same registry as
// promhttp_metric_handler_requests_total.
//
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func (c *Collector) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(c.registry, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
		ErrorLog:          scrapeErrorLog{},
		Registry:          c.registry,
	}))
}

// scrapeErrorLog routes promhttp gather errors to slog.
type scrapeErrorLog struct{}

func (scrapeErrorLog) Println(v ...any) {
	slog.Error("metrics scrape failed", "component", "metrics", "error", fmt.Sprint(v...))
}
