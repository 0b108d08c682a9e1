// Package metrics exposes Prometheus metrics for the category API: HTTP
// request counts and latencies, category lifecycle event counts and the
// number of stored categories.
package metrics
