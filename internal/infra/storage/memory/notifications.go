package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	notificationRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/notification"
)

// NotificationRepository уведомления в памяти
type NotificationRepository struct {
	store *Store
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	defer r.store.lock(ctx)()

	data := r.store.data
	data.nextNotificationID++
	n.ID = data.nextNotificationID
	n.IsRead = false
	n.CreatedAt = time.Now()
	data.notifications[n.ID] = *n

	created := *n
	return &created, nil
}

func (r *NotificationRepository) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	defer r.store.lock(ctx)()

	var out []domain.Notification
	for _, n := range r.store.data.notifications {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	defer r.store.lock(ctx)()

	count := 0
	for _, n := range r.store.data.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	defer r.store.lock(ctx)()

	n, ok := r.store.data.notifications[id]
	if !ok || n.UserID != userID {
		return notificationRepo.ErrNotificationNotFound
	}
	n.IsRead = true
	r.store.data.notifications[id] = n
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	defer r.store.lock(ctx)()

	var marked int64
	for id, n := range r.store.data.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.store.data.notifications[id] = n
			marked++
		}
	}
	return marked, nil
}
