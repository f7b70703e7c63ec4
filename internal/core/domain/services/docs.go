// Package services provides domain services of the seller console that work
// across aggregates or over collections of them.
//
// The package includes:
//   - RecipientResolver: decides who is notified about an order or delivery change
//   - MetricsAggregator: turns a seller's orders into a MetricsSnapshot
//
// Both services are pure: they read the values they are given and never touch storage.
package services
