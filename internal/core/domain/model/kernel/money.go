package kernel

import (
	"fmt"

	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or Zero")

// Money is a non-negative monetary amount in the seller's currency.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MustMoney parses a decimal string and panics on failure. Intended for
// constants and tests.
func MustMoney(value string) Money {
	m, err := NewMoney(decimal.RequireFromString(value))
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a valid zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate ensures the Money value was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Times returns m multiplied by a non-negative quantity.
func (m Money) Times(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically (2.50 equals 2.5).
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewMoney(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
