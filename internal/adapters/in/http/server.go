// Package http exposes the seller console operations over REST and streams
// change events to the screens as server-sent events.
package http

import (
	"context"
	"net/http"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserIDHeader carries the acting user, set by the gateway that authenticated it.
const UserIDHeader = "X-User-ID"

// UseCase is a command or query handler that returns a result.
type UseCase[Q any, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Action is a command handler without a result.
type Action[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     UseCase[commands.CreateOrderCommand, *order.Order]
	TransitionOrder UseCase[commands.TransitionOrderCommand, *order.Order]
	GetOrder        UseCase[queries.GetOrderQuery, *order.Order]
	ListOrders      UseCase[queries.ListOrdersQuery, []*order.Order]

	CreateDelivery     UseCase[commands.CreateDeliveryCommand, *delivery.Delivery]
	TransitionDelivery UseCase[commands.TransitionDeliveryCommand, *delivery.Delivery]
	GetDelivery        UseCase[queries.GetDeliveryQuery, *delivery.Delivery]
	ListDeliveries     UseCase[queries.ListDeliveriesQuery, []*delivery.Delivery]

	ListNotifications  UseCase[queries.ListNotificationsQuery, []queries.NotificationView]
	UnreadCount        UseCase[queries.UnreadCountQuery, int64]
	MarkRead           Action[commands.MarkNotificationReadCommand]
	MarkAllRead        UseCase[commands.MarkAllReadCommand, int64]
	DeleteNotification Action[commands.DeleteNotificationCommand]

	ComputeMetrics UseCase[queries.ComputeMetricsQuery, *metrics.Snapshot]
	ExportMetrics  UseCase[queries.ComputeMetricsQuery, *queries.ExportedMetrics]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	feed        ports.ChangeFeed
	phoneRegion string
	logger      logrus.FieldLogger
}

// NewServer creates a server. phoneRegion is the default region for manual
// recipient phone numbers without an international prefix.
func NewServer(handlers Handlers, feed ports.ChangeFeed, phoneRegion string, logger logrus.FieldLogger) *Server {
	if phoneRegion == "" {
		phoneRegion = delivery.DefaultPhoneRegion
	}
	return &Server{
		handlers:    handlers,
		feed:        feed,
		phoneRegion: phoneRegion,
		logger:      logger.WithField("component", "http"),
	}
}

// NewEcho builds an echo instance with request validation and the routes of s.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/sellers/:sellerId/orders", s.CreateOrder)
	api.GET("/sellers/:sellerId/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/transitions", s.TransitionOrder)

	api.POST("/sellers/:sellerId/deliveries", s.CreateDelivery)
	api.GET("/sellers/:sellerId/deliveries", s.ListDeliveries)
	api.GET("/deliveries/:deliveryId", s.GetDelivery)
	api.POST("/deliveries/:deliveryId/transitions", s.TransitionDelivery)

	api.GET("/notifications", s.ListNotifications)
	api.GET("/notifications/unread-count", s.UnreadCount)
	api.POST("/notifications/read-all", s.MarkAllRead)
	api.POST("/notifications/:notificationId/read", s.MarkNotificationRead)
	api.DELETE("/notifications/:notificationId", s.DeleteNotification)

	api.GET("/sellers/:sellerId/metrics", s.ComputeMetrics)
	api.GET("/sellers/:sellerId/metrics/export", s.ExportMetrics)

	api.GET("/sellers/:sellerId/events", s.StreamSellerEvents)
}
