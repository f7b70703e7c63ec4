package order

import (
	"fmt"
	"strings"

	"sellerconsole/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of every order.
	Pending

	// Confirmed means the seller accepted the order.
	Confirmed

	// Processing means the order is being packed.
	Processing

	// Shipped means the order left the seller.
	Shipped

	// Delivered is terminal: the retailer received the goods.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getTransitions returns the allowed-target set for every valid status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status][]Status{
		Pending:    {Confirmed, Cancelled},
		Confirmed:  {Processing, Cancelled},
		Processing: {Shipped, Cancelled},
		Shipped:    {Delivered},
		Delivered:  {},
		Cancelled:  {},
	}
}

// ParseStatus converts the lowercase name of a status into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is accepted.
func (s Status) IsTerminal() bool {
	targets, ok := getTransitions()[s]
	return ok && len(targets) == 0
}

// AllowedTargets returns the statuses reachable in one step.
func (s Status) AllowedTargets() []Status {
	targets := getTransitions()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether target is in the allowed-target set of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition returns target if the move is allowed, or an InvalidTransitionError.
func (s Status) Transition(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), target.String())
	}
	return target, nil
}
