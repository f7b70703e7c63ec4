// Package kernel provides the shared value objects of the seller console domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid, including
//     deterministic name-based identifiers used for notification dedup keys
//   - Money: a non-negative decimal amount backed by github.com/shopspring/decimal
//   - Clock: the time source injected into aggregates and handlers
//
// These primitives are immutable and safe for concurrent use.
package kernel
