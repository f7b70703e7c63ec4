package queries

import (
	"errors"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/services"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var (
	ErrComputeMetricsQueryIsNotConstructed = errors.New(
		"ComputeMetricsQuery must be created via NewComputeMetricsQuery constructor",
	)
)

// ComputeMetricsQuery asks for a seller's metrics over the trailing windowDays.
type ComputeMetricsQuery struct {
	sellerID   kernel.UUID
	windowDays int
	guard      guard.ConstructorGuard
}

func NewComputeMetricsQuery(sellerID kernel.UUID, windowDays int) (ComputeMetricsQuery, error) {
	var sellerErr, windowErr error
	if err := sellerID.Validate(); err != nil {
		sellerErr = errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	if windowDays < 1 || windowDays > services.MaxWindowDays {
		windowErr = errs.NewValueIsOutOfRangeError("windowDays", windowDays, 1, services.MaxWindowDays)
	}
	if err := errors.Join(sellerErr, windowErr); err != nil {
		return ComputeMetricsQuery{}, err
	}

	return ComputeMetricsQuery{
		sellerID:   sellerID,
		windowDays: windowDays,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ComputeMetricsQuery) Validate() error {
	return q.guard.Validate(ErrComputeMetricsQueryIsNotConstructed)
}

func (q ComputeMetricsQuery) SellerID() kernel.UUID { return q.sellerID }

func (q ComputeMetricsQuery) WindowDays() int { return q.windowDays }
