// Package metrics exports logdw transport counters to Prometheus.
//
// The transport keeps its counters in atomics and never talks to Prometheus
// itself. A Collector reads a Stats snapshot on every scrape:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(metrics.NewCollector(logdw.Default(), prometheus.Labels{"process": "radiod"}))
//	http.Handle("/metrics", metrics.Handler(reg))
//
// All series are counters prefixed with logdw_.
package metrics
