package http

import (
	"net/http"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications?filter= for the acting user.
func (s *Server) ListNotifications(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return s.writeError(c, err)
	}

	filter, err := notification.ParseFilter(c.QueryParam("filter"))
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewListNotificationsQuery(userID, filter)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// UnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) UnreadCount(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewUnreadCountQuery(userID)
	if err != nil {
		return s.writeError(c, err)
	}

	count, err := s.handlers.UnreadCount.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, unreadCountResponse{Unread: count})
}

// MarkNotificationRead handles POST /api/v1/notifications/:notificationId/read.
// Another user's notification is reported as not found.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return s.writeError(c, err)
	}
	notificationID, err := pathUUID(c, "notificationId")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, userID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.MarkRead.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllRead(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewMarkAllReadCommand(userID)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.MarkAllRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, markAllReadResponse{Updated: updated})
}

// DeleteNotification handles DELETE /api/v1/notifications/:notificationId.
func (s *Server) DeleteNotification(c echo.Context) error {
	userID, err := actingUser(c)
	if err != nil {
		return s.writeError(c, err)
	}
	notificationID, err := pathUUID(c, "notificationId")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewDeleteNotificationCommand(notificationID, userID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.DeleteNotification.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
