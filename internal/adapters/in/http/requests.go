package http

import (
	"strconv"
	"strings"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RequestValidator adapts validator/v10 to echo.Validator. Failures are
// reported as ValueIsInvalid errors so they map to 400.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	return nil
}

type orderItemRequest struct {
	ProductID string          `json:"productId" validate:"required,max=64"`
	Name      string          `json:"name"      validate:"required,max=200"`
	Quantity  int             `json:"quantity"  validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type createOrderRequest struct {
	RetailerID   *string            `json:"retailerId"   validate:"omitempty,uuid"`
	CustomerName string             `json:"customerName" validate:"required_without=RetailerID,max=200"`
	Items        []orderItemRequest `json:"items"        validate:"required,min=1,dive"`
}

type manualRecipientRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone"   validate:"omitempty,max=32"`
}

type createDeliveryRequest struct {
	RetailerID            *string                 `json:"retailerId"            validate:"omitempty,uuid"`
	ManualRecipient       *manualRecipientRequest `json:"manualRecipient"`
	EstimatedDeliveryTime time.Time               `json:"estimatedDeliveryTime" validate:"required"`
	AmountToCollect       *decimal.Decimal        `json:"amountToCollect"`
}

type transitionRequest struct {
	TargetStatus    string `json:"targetStatus"    validate:"required"`
	ExpectedVersion *int64 `json:"expectedVersion" validate:"required,gte=0"`
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalUUID(name string, value *string) (*kernel.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func actingUser(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get(UserIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(UserIDHeader)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(UserIDHeader, err)
	}
	return id, nil
}

// windowDays reads the windowDays query parameter, defaulting to 30.
func windowDays(c echo.Context) (int, error) {
	raw := c.QueryParam("windowDays")
	if raw == "" {
		return 30, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("windowDays", err)
	}
	return days, nil
}

func money(name string, amount decimal.Decimal) (kernel.Money, error) {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return m, nil
}
