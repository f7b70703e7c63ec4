package delivery

import (
	"errors"
	"fmt"
	"strings"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"

	"github.com/ttacon/libphonenumber"
)

// DefaultPhoneRegion is used to parse manual recipient phone numbers written
// without a country prefix.
const DefaultPhoneRegion = "IN"

var ErrRecipientIsNotConstructed = errors.New(
	"Recipient must be created via RetailerRecipient or NewManualRecipient constructor")

// ManualRecipient is a delivery target without a user account.
type ManualRecipient struct {
	Name    string
	Address string
	// Phone is stored in E.164 form, empty when not provided.
	Phone string
}

// Recipient is exactly one of a retailer account or a manual recipient.
type Recipient struct { //nolint:recvcheck //using for validation
	retailerID *kernel.UUID
	manual     *ManualRecipient
	guard      guard.ConstructorGuard
}

// RetailerRecipient targets a registered retailer.
func RetailerRecipient(retailerID kernel.UUID) (Recipient, error) {
	if err := retailerID.Validate(); err != nil {
		return Recipient{}, errs.NewValueIsRequiredErrorWithCause("retailerId", err)
	}
	return Recipient{retailerID: &retailerID, guard: guard.NewConstructorGuard()}, nil
}

// NewManualRecipient validates a manually entered recipient. Name and address
// are required. A non-empty phone must be a valid number for region (or carry
// an international prefix) and is normalized to E.164.
func NewManualRecipient(name, address, phone, region string) (Recipient, error) {
	manual := &ManualRecipient{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
	}

	var nameErr, addressErr, phoneErr error
	if manual.Name == "" {
		nameErr = errs.NewValueIsRequiredError("manualRecipient.name")
	}
	if manual.Address == "" {
		addressErr = errs.NewValueIsRequiredError("manualRecipient.address")
	}
	manual.Phone, phoneErr = normalizePhone(phone, region)

	if err := errors.Join(nameErr, addressErr, phoneErr); err != nil {
		return Recipient{}, err
	}

	return Recipient{manual: manual, guard: guard.NewConstructorGuard()}, nil
}

func normalizePhone(phone, region string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultPhoneRegion
	}

	number, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("manualRecipient.phone", err)
	}
	if !libphonenumber.IsValidNumber(number) {
		return "", errs.NewValueIsInvalidErrorWithCause("manualRecipient.phone",
			fmt.Errorf("%q is not a valid number", phone))
	}

	return libphonenumber.Format(number, libphonenumber.E164), nil
}

func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// RetailerID returns the retailer, or nil for a manual recipient.
func (r Recipient) RetailerID() *kernel.UUID {
	if r.retailerID == nil {
		return nil
	}
	id := *r.retailerID
	return &id
}

// Manual returns the manual recipient, or nil for a retailer.
func (r Recipient) Manual() *ManualRecipient {
	if r.manual == nil {
		return nil
	}
	m := *r.manual
	return &m
}

func (r Recipient) IsManual() bool {
	return r.manual != nil
}
