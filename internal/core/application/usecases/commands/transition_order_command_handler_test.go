package commands_test

import (
	"testing"
	"time"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, status order.Status, version int64) *order.Order {
	t.Helper()
	item, err := order.NewItem("sku-1", "Basmati 5kg", 2, kernel.MustMoney("100"))
	require.NoError(t, err)
	retailerID := kernel.NewUUID()
	created := fixedNow.Add(-time.Hour)
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), &retailerID, "Sharma Stores",
		[]order.Item{item}, kernel.MustMoney("200"), status, created, created, version)
	require.NoError(t, err)
	return o
}

func TestNewTransitionOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(kernel.UUID{}, order.Unknown, -1)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Pending, 0)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Confirmed, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	feed := &recordingFeed{}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o, int64(0)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, feed, fixedClock{fixedNow})
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	assert.Equal(t, int64(1), updated.Version())
	assert.Equal(t, fixedNow, updated.UpdatedAt())

	published := feed.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "confirmed", published[0].NewStatus)
	assert.Equal(t, int64(1), published[0].Version)
	assert.True(t, published[0].SellerID.IsEqual(o.SellerID()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SkippingStepsIsInvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Pending, 0)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Shipped, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	feed := &recordingFeed{}
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, feed, fixedClock{fixedNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, o.Status())
	assert.Empty(t, feed.Published())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_StaleVersionIsConflict(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Confirmed, 1)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Processing, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	feed := &recordingFeed{}
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, feed, fixedClock{fixedNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Empty(t, feed.Published())
}

func TestTransitionOrderCommandHandler_Handle_LostRaceAtUpdateIsConflict(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Pending, 0)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Cancelled, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	feed := &recordingFeed{}
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o, int64(0)).Return(errs.NewConflictError("order", o.ID().String(), 0, 1)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, feed, fixedClock{fixedNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Empty(t, feed.Published())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_TerminalOrderRejectsEveryTarget(t *testing.T) {
	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		for _, target := range []order.Status{order.Pending, order.Confirmed, order.Processing,
			order.Shipped, order.Delivered, order.Cancelled} {
			for _, expected := range []int64{4, 3, 0} {
				ctx := t.Context()
				o := storedOrder(t, terminal, 4)
				cmd, err := commands.NewTransitionOrderCommand(o.ID(), target, expected)
				require.NoError(t, err)

				repo := new(MockOrderRepository)
				uow := new(MockUoW)
				feed := &recordingFeed{}
				uow.On("Begin", ctx).Return(nil)
				uow.On("OrderRepository").Return(repo)
				uow.On("Rollback", ctx).Return(nil)
				repo.On("Get", ctx, o.ID()).Return(o, nil)

				h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, feed, fixedClock{fixedNow})
				_, err = h.Handle(ctx, cmd)

				require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s at v%d", terminal, target, expected)
				assert.NotErrorIs(t, err, errs.ErrConflict)
				assert.Equal(t, terminal, o.Status())
				assert.Equal(t, int64(4), o.Version())
				assert.Empty(t, feed.Published())
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
		}
	}
}

func TestTransitionOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(id, order.Confirmed, 0)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id))

	h := commands.NewTransitionOrderCommandHandler(MockOrderUoWFactory{uow}, &recordingFeed{}, fixedClock{fixedNow})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
