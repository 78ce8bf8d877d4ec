package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resto-dashboard/internal/cart"
	"resto-dashboard/internal/domain"
	"resto-dashboard/internal/mocks"
	"resto-dashboard/internal/order"
)

func seedCart(t *testing.T, store cart.Store, sessionID string) []domain.CartEntry {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, sessionID, domain.Dish{ID: 1, Name: "Soup", Price: 5}))
	require.NoError(t, store.Add(ctx, sessionID, domain.Dish{ID: 1, Name: "Soup", Price: 5}))
	require.NoError(t, store.Add(ctx, sessionID, domain.Dish{ID: 2, Name: "Cake", Price: 8}))
	entries, err := store.Entries(ctx, sessionID)
	require.NoError(t, err)
	return entries
}

func testOrder(entries []domain.CartEntry) domain.Order {
	return domain.Order{
		TableID:       4,
		EstimatedTime: 20,
		CreatedAt:     time.Now(),
		TotalPrice:    cart.Total(entries),
		Dishes:        entries,
	}
}

func TestGateway_SubmitSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	entries := seedCart(t, store, "s1")

	backendMock := new(mocks.BackendAPI)
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").Return(nil).Once()

	gw := order.NewGateway(backendMock, store, nil)
	err := gw.Submit(ctx, "s1", testOrder(entries), "token")
	require.NoError(t, err)

	remaining, err := store.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
	backendMock.AssertExpectations(t)
}

func TestGateway_SubmitFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	entries := seedCart(t, store, "s1")

	backendMock := new(mocks.BackendAPI)
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").
		Return(errors.New("upstream rejected")).Once()

	gw := order.NewGateway(backendMock, store, nil)
	err := gw.Submit(ctx, "s1", testOrder(entries), "token")
	assert.Error(t, err)

	remaining, err := store.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entries, remaining)
	backendMock.AssertExpectations(t)
}

func TestGateway_PublishesEventAfterAcceptance(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	entries := seedCart(t, store, "s1")

	backendMock := new(mocks.BackendAPI)
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").Return(nil).Once()

	publisher := new(mocks.EventPublisher)
	publisher.On("PublishOrderSubmitted", ctx, mock.MatchedBy(func(ev order.SubmittedEvent) bool {
		return ev.Type == "order_submitted" && ev.TableID == 4 && ev.ItemCount == 2
	})).Return(nil).Once()

	gw := order.NewGateway(backendMock, store, publisher)
	require.NoError(t, gw.Submit(ctx, "s1", testOrder(entries), "token"))

	publisher.AssertExpectations(t)
}

func TestGateway_NoEventOnFailure(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	entries := seedCart(t, store, "s1")

	backendMock := new(mocks.BackendAPI)
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").
		Return(errors.New("boom")).Once()

	publisher := new(mocks.EventPublisher)

	gw := order.NewGateway(backendMock, store, publisher)
	assert.Error(t, gw.Submit(ctx, "s1", testOrder(entries), "token"))

	publisher.AssertNotCalled(t, "PublishOrderSubmitted", mock.Anything, mock.Anything)
}

func TestGateway_RejectsOverlappingSubmission(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	entries := seedCart(t, store, "s1")

	started := make(chan struct{})
	release := make(chan struct{})

	backendMock := new(mocks.BackendAPI)
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).Return(nil).Once()

	gw := order.NewGateway(backendMock, store, nil)

	done := make(chan error, 1)
	go func() {
		done <- gw.Submit(ctx, "s1", testOrder(entries), "token")
	}()

	<-started
	err := gw.Submit(ctx, "s1", testOrder(entries), "token")
	assert.ErrorIs(t, err, order.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)

	// once the first submission resolved, the session accepts new ones
	entries = seedCart(t, store, "s1")
	backendMock.On("SubmitOrder", ctx, mock.AnythingOfType("domain.Order"), "token").Return(nil).Once()
	require.NoError(t, gw.Submit(ctx, "s1", testOrder(entries), "token"))
}
