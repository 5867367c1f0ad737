package handlers

import (
	"fmt"
	"net/http"

	"estagio/internal/http/metrics"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	var requests, errs uint64
	if h.collector != nil {
		requests, errs = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP estagio_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE estagio_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "estagio_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP estagio_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE estagio_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "estagio_errors_total %d\n", errs)
}
