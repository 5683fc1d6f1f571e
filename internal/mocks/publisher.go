package mocks

import (
	"context"

	"github.com/paydesk/backoffice/internal/publishers"
	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishStatusChanged(ctx context.Context, event publishers.TransactionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}
