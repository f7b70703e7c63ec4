// Package order provides the Order aggregate of the seller console.
//
// The package includes:
//   - Order: the aggregate root holding identity, seller/retailer scope, line items,
//     a total fixed at creation, the lifecycle status and an optimistic-concurrency version
//   - Item: an immutable order line
//   - Status: the state machine enforcing the allowed transitions
//
// Key business rules:
//   - totalAmount is the sum of line subtotals at creation and is never recomputed
//   - Status only moves along: pending -> confirmed -> processing -> shipped -> delivered,
//     with cancellation allowed from pending, confirmed and processing
//   - delivered and cancelled are terminal
//   - Every status write increments the version; a write carrying a stale version is rejected
package order
