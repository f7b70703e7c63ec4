package http

import (
	"net/http"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateDelivery handles POST /api/v1/sellers/:sellerId/deliveries. Exactly
// one of retailerId and manualRecipient must be given.
func (s *Server) CreateDelivery(c echo.Context) error {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req createDeliveryRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	recipient, err := s.recipient(req)
	if err != nil {
		return s.writeError(c, err)
	}

	var amount *kernel.Money
	if req.AmountToCollect != nil {
		m, moneyErr := money("amountToCollect", *req.AmountToCollect)
		if moneyErr != nil {
			return s.writeError(c, moneyErr)
		}
		amount = &m
	}

	cmd, err := commands.NewCreateDeliveryCommand(sellerID, recipient, req.EstimatedDeliveryTime, amount)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toDeliveryResponse(created))
}

func (s *Server) recipient(req createDeliveryRequest) (delivery.Recipient, error) {
	retailerID, err := optionalUUID("retailerId", req.RetailerID)
	if err != nil {
		return delivery.Recipient{}, err
	}

	switch {
	case retailerID != nil && req.ManualRecipient != nil:
		return delivery.Recipient{}, errs.NewValueIsInvalidError("recipient: retailerId and manualRecipient are exclusive")
	case retailerID != nil:
		return delivery.RetailerRecipient(*retailerID)
	case req.ManualRecipient != nil:
		m := req.ManualRecipient
		return delivery.NewManualRecipient(m.Name, m.Address, m.Phone, s.phoneRegion)
	default:
		return delivery.Recipient{}, errs.NewValueIsRequiredError("retailerId or manualRecipient")
	}
}

// TransitionDelivery handles POST /api/v1/deliveries/:deliveryId/transitions.
func (s *Server) TransitionDelivery(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req transitionRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	target, err := delivery.ParseStatus(req.TargetStatus)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionDeliveryCommand(deliveryID, target, *req.ExpectedVersion)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.TransitionDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryResponse(updated))
}

// GetDelivery handles GET /api/v1/deliveries/:deliveryId.
func (s *Server) GetDelivery(c echo.Context) error {
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return s.writeError(c, err)
	}

	found, err := s.handlers.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryResponse(found))
}

// ListDeliveries handles GET /api/v1/sellers/:sellerId/deliveries?status=.
func (s *Server) ListDeliveries(c echo.Context) error {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return s.writeError(c, err)
	}

	var status *delivery.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, parseErr := delivery.ParseStatus(raw)
		if parseErr != nil {
			return s.writeError(c, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListDeliveriesQuery(sellerID, status)
	if err != nil {
		return s.writeError(c, err)
	}

	deliveries, err := s.handlers.ListDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}
