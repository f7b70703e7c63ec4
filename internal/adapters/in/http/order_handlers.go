package http

import (
	"net/http"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/sellers/:sellerId/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req createOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	retailerID, err := optionalUUID("retailerId", req.RetailerID)
	if err != nil {
		return s.writeError(c, err)
	}

	lines := make([]commands.OrderLine, len(req.Items))
	for i, item := range req.Items {
		price, priceErr := money("unitPrice", item.UnitPrice)
		if priceErr != nil {
			return s.writeError(c, priceErr)
		}
		lines[i] = commands.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: price,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(sellerID, retailerID, req.CustomerName, lines)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderResponse(created))
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transitions.
// A 409 means the caller's copy is stale; a 422 means the move is not allowed.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
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

	target, err := order.ParseStatus(req.TargetStatus)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, *req.ExpectedVersion)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(updated))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	found, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(found))
}

// ListOrders handles GET /api/v1/sellers/:sellerId/orders?status=.
func (s *Server) ListOrders(c echo.Context) error {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return s.writeError(c, err)
	}

	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.writeError(c, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(sellerID, status)
	if err != nil {
		return s.writeError(c, err)
	}

	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponses(orders))
}
