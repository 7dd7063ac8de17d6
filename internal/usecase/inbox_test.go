package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

func TestInboxListCountsUnread(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListRecent", mock.Anything, 20).Return([]entity.SystemNotification{
		{ID: "3", Type: entity.NotificationSale, Read: false},
		{ID: "2", Type: entity.NotificationNewLead, Read: true},
		{ID: "1", Type: entity.NotificationStatusChange, Read: false},
	}, nil)

	view, err := NewInbox(repo, logger.Nop()).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Notifications, 3)
	assert.Equal(t, 2, view.UnreadCount)
}

func TestInboxMarkAllReadSkipsWhenNothingUnread(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListRecent", mock.Anything, 20).Return([]entity.SystemNotification{{ID: "1", Read: true}}, nil)

	view, err := NewInbox(repo, logger.Nop()).MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, view.UnreadCount)
	repo.AssertNotCalled(t, "MarkAllRead", mock.Anything)
}

func TestInboxMarkAllRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListRecent", mock.Anything, 20).Return([]entity.SystemNotification{{ID: "1"}, {ID: "2"}}, nil)
	repo.On("MarkAllRead", mock.Anything).Return(nil).Once()

	inbox := NewInbox(repo, logger.Nop())
	view, err := inbox.MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, view.UnreadCount)
	for _, n := range view.Notifications {
		assert.True(t, n.Read)
	}

	// segunda chamada não chega no banco
	_, err = inbox.MarkAllRead(context.Background())
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "MarkAllRead", 1)
}

func TestInboxMarkAllReadError(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListRecent", mock.Anything, 20).Return([]entity.SystemNotification{{ID: "1"}}, nil)
	repo.On("MarkAllRead", mock.Anything).Return(errors.New("rls"))

	_, err := NewInbox(repo, logger.Nop()).MarkAllRead(context.Background())
	assert.True(t, IsTechnicalError(err))
}

func TestInboxPush(t *testing.T) {
	repo := new(MockNotificationRepository)
	items := make([]entity.SystemNotification, 20)
	for i := range items {
		items[i] = entity.SystemNotification{ID: entity.NotificationID(string(rune('a' + i))), Read: true}
	}
	repo.On("ListRecent", mock.Anything, 20).Return(items, nil).Once()

	inbox := NewInbox(repo, logger.Nop())
	_, err := inbox.List(context.Background())
	require.NoError(t, err)

	stream, cancel := inbox.Events().Subscribe()
	defer cancel()

	inbox.Push(entity.SystemNotification{ID: "novo", Type: entity.NotificationNewLead})
	inbox.Push(entity.SystemNotification{ID: "novo", Type: entity.NotificationNewLead})

	assert.Equal(t, entity.NotificationID("novo"), (<-stream).ID)
	assert.Len(t, stream, 0)

	repo.On("MarkAllRead", mock.Anything).Return(nil).Once()
	view, err := inbox.MarkAllRead(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Notifications, 20)
	assert.Equal(t, entity.NotificationID("novo"), view.Notifications[0].ID)
	repo.AssertExpectations(t)
}
