package delivery

import (
	"fmt"
	"strings"

	"sellerconsole/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
type Status int

const (
	Unknown Status = iota
	Pending
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status][]Status{
		Pending:   {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// ParseStatus converts a status name such as "in_transit" into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery status", s))
}

func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	targets, ok := getTransitions()[s]
	return ok && len(targets) == 0
}

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
		return Unknown, errs.NewInvalidTransitionError("delivery", s.String(), target.String())
	}
	return target, nil
}
