package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	httpadapter "sellerconsole/internal/adapters/in/http"
	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
)

type sseMessage struct {
	id    string
	event string
	data  string
}

func readSSE(scanner *bufio.Scanner) (sseMessage, bool) {
	var msg sseMessage
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if msg.data != "" {
				return msg, true
			}
		case strings.HasPrefix(line, "id: "):
			msg.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			msg.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			msg.data = strings.TrimPrefix(line, "data: ")
		}
	}
	return msg, false
}

func (suite *ServerTestSuite) openStream(userID *kernel.UUID) (*bufio.Scanner, func()) {
	srv := httptest.NewServer(suite.e)
	ctx, cancel := context.WithCancel(context.Background())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/sellers/"+suite.sellerID.String()+"/events", nil)
	suite.Require().NoError(err)
	if userID != nil {
		req.Header.Set(httpadapter.UserIDHeader, userID.String())
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	suite.Require().Eventually(func() bool {
		return suite.feed.SubscriberCount(suite.sellerID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	return bufio.NewScanner(resp.Body), func() {
		cancel()
		_ = resp.Body.Close()
		srv.Close()
	}
}

func (suite *ServerTestSuite) TestStreamSellerEvents_DeliversChangeEvents() {
	scanner, closeStream := suite.openStream(nil)

	published := event.ChangeEvent{
		EntityType: event.EntityOrder,
		EntityID:   kernel.NewUUID(),
		SellerID:   suite.sellerID,
		Version:    2,
		NewStatus:  "processing",
		OccurredAt: fixedNow,
	}
	suite.feed.Publish(context.Background(), published)

	msg, ok := readSSE(scanner)
	suite.Require().True(ok)
	suite.Equal("order", msg.event)
	suite.Equal(published.SourceEventID().String(), msg.id)

	var got event.ChangeEvent
	suite.Require().NoError(json.Unmarshal([]byte(msg.data), &got))
	suite.True(got.EntityID.IsEqual(published.EntityID))
	suite.Equal(int64(2), got.Version)
	suite.Equal("processing", got.NewStatus)

	closeStream()
	suite.Eventually(func() bool {
		return suite.feed.SubscriberCount(suite.sellerID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func (suite *ServerTestSuite) TestStreamSellerEvents_SkipsOtherUsersNotifications() {
	scanner, closeStream := suite.openStream(&suite.userID)
	defer closeStream()

	other := kernel.NewUUID()
	suite.feed.Publish(context.Background(), event.ChangeEvent{
		EntityType:  event.EntityNotification,
		EntityID:    kernel.NewUUID(),
		SellerID:    suite.sellerID,
		RecipientID: &other,
		OccurredAt:  fixedNow,
	})
	mine := event.ChangeEvent{
		EntityType:  event.EntityNotification,
		EntityID:    kernel.NewUUID(),
		SellerID:    suite.sellerID,
		RecipientID: &suite.userID,
		OccurredAt:  fixedNow,
	}
	suite.feed.Publish(context.Background(), mine)

	msg, ok := readSSE(scanner)
	suite.Require().True(ok)
	suite.Equal("notification", msg.event)
	suite.Contains(msg.data, mine.EntityID.String())
}

func (suite *ServerTestSuite) TestStreamSellerEvents_InvalidSeller() {
	rec := suite.do(http.MethodGet, "/api/v1/sellers/nope/events", "", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal(httpadapter.ReasonValidation, suite.decodeError(rec).Reason)
}
