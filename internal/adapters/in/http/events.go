package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	streamBuffer      = 64
	keepAliveInterval = 15 * time.Second
)

// StreamSellerEvents handles GET /api/v1/sellers/:sellerId/events.
//
// Change events of the seller are written as server-sent events until the
// client disconnects. When the acting user is known, notification events
// addressed to other users are skipped. A client that cannot keep up loses
// events and is expected to refetch.
func (s *Server) StreamSellerEvents(c echo.Context) error {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return s.writeError(c, err)
	}

	var viewer *kernel.UUID
	if c.Request().Header.Get(UserIDHeader) != "" {
		userID, userErr := actingUser(c)
		if userErr != nil {
			return s.writeError(c, userErr)
		}
		viewer = &userID
	}

	ctx := c.Request().Context()
	logger := s.logger.WithField("seller_id", sellerID.String())

	events := make(chan event.ChangeEvent, streamBuffer)
	sub, err := s.feed.Subscribe(sellerID, func(_ context.Context, e event.ChangeEvent) {
		if !visibleTo(e, viewer) {
			return
		}
		select {
		case events <- e:
		default:
			logger.WithField("event_id", e.SourceEventID().String()).Warn("event stream is full, dropping event")
		}
	})
	if err != nil {
		return s.writeError(c, err)
	}
	defer sub.Unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keepAlive.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case e := <-events:
			if err = writeEvent(w, e); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"entity_type": e.EntityType,
					"entity_id":   e.EntityID.String(),
				}).Debug("event stream closed")
				return nil
			}
			w.Flush()
		}
	}
}

func visibleTo(e event.ChangeEvent, viewer *kernel.UUID) bool {
	if viewer == nil || !e.IsNotification() || e.RecipientID == nil {
		return true
	}
	return e.RecipientID.IsEqual(*viewer)
}

func writeEvent(w *echo.Response, e event.ChangeEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.SourceEventID(), e.EntityType, data)
	return err
}
