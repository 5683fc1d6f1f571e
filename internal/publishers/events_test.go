package publishers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paydesk/backoffice/internal/mocks"
	"github.com/paydesk/backoffice/internal/model"
	"github.com/paydesk/backoffice/internal/publishers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishStatusChanged(t *testing.T) {
	event := publishers.TransactionEvent{
		TrxID:          "T1",
		PreviousStatus: model.StatusPending,
		Status:         model.StatusSuccess,
		ReferenceID:    "REF123",
	}

	t.Run("publishes the event to the events queue", func(t *testing.T) {
		pub := &mocks.Publisher{}
		pub.On("Publish", mock.Anything, "", publishers.EventsQueue,
			mock.MatchedBy(func(body []byte) bool {
				var got publishers.TransactionEvent
				if err := json.Unmarshal(body, &got); err != nil {
					return false
				}
				return got == event
			})).Return(nil)

		events := publishers.NewEventPublisher(pub, zap.NewNop())
		require.NoError(t, events.PublishStatusChanged(context.Background(), event))
		pub.AssertExpectations(t)
	})

	t.Run("broker errors propagate to the caller", func(t *testing.T) {
		pub := &mocks.Publisher{}
		pub.On("Publish", mock.Anything, "", publishers.EventsQueue, mock.Anything).
			Return(assert.AnError)

		events := publishers.NewEventPublisher(pub, zap.NewNop())
		assert.Error(t, events.PublishStatusChanged(context.Background(), event))
	})
}
