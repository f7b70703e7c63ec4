// Package queries contains the read operations of the seller console.
//
// Entity reads (orders, deliveries) go through the repositories so callers get
// domain aggregates with their current version. Notification listings and the
// unread badge count are answered with SQL straight from the notifications
// table. Metrics are computed on every request by the MetricsAggregator.
package queries
