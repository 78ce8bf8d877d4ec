package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resto-dashboard/internal/order"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderSubmitted(ctx context.Context, event order.SubmittedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
