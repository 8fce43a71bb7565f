package notifications

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
)

func newService() *Service {
	store := memory.NewStore(domain.DefaultBookingCodePrefix)
	return NewService(store.Notifications(), logger.NewWithWriter(io.Discard, logger.LevelError))
}

func TestService_Inbox(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(ctx, &domain.Notification{
			UserID:  1,
			Type:    domain.NotificationBooking,
			Title:   "Booking",
			Message: "created",
		}))
	}
	require.NoError(t, svc.Notify(ctx, &domain.Notification{UserID: 2, Title: "Other"}))

	items, err := svc.List(ctx, 1, false, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	unread, err := svc.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	require.NoError(t, svc.MarkAsRead(ctx, items[0].ID, 1))
	unread, err = svc.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	// Чужое уведомление
	err = svc.MarkAsRead(ctx, items[1].ID, 2)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	onlyUnread, err := svc.List(ctx, 1, true, 10)
	require.NoError(t, err)
	assert.Len(t, onlyUnread, 2)

	marked, err := svc.MarkAllAsRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	unread, err = svc.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestService_Notify_Validation(t *testing.T) {
	err := newService().Notify(context.Background(), &domain.Notification{Title: "no user"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Notify_DefaultType(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	require.NoError(t, svc.Notify(ctx, &domain.Notification{UserID: 5, Title: "hello"}))
	items, err := svc.List(ctx, 5, false, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.NotificationSystem, items[0].Type)
}
