package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventIssueCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventIssueStatusChanged, func(_ context.Context, e Event) error {
		t.Fatal("handler for another event type must not fire")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueCreated, IssueID: 7}))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].IssueID)
}

func TestDispatcher_HandlerErrorsDoNotPropagate(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventIssueAssigned, func(context.Context, Event) error {
		calls++
		return errors.New("subscriber failed")
	})
	d.Subscribe(EventIssueAssigned, func(context.Context, Event) error {
		calls++
		return nil
	})

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueAssigned}))
	assert.Equal(t, 2, calls, "all handlers run despite earlier failures")
}
