// Package metrics exports cache activity as Prometheus counters.
//
// Install a Collector when constructing a cache and serve the scrape
// endpoint with Handler:
//
//	col := metrics.New(nil)
//	c := cache.New[string](ld, cache.WithMetrics(col))
//	http.Handle("/metrics", metrics.Handler())
package metrics
