package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	notificationRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/notification"
)

const defaultPageSize = 20

// Service уведомления пользователей: запись и входящие
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Notify сохраняет уведомление для пользователя
func (s *Service) Notify(ctx context.Context, n *domain.Notification) error {
	if n.UserID <= 0 || n.Title == "" {
		return fmt.Errorf("%w: user id and title are required", ErrInvalidInput)
	}
	if n.Type == "" {
		n.Type = domain.NotificationSystem
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Notify: failed to create notification for user=%d: %v", n.UserID, err)
		return fmt.Errorf("%w: Notify - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Notify: notification id=%d, user=%d, type=%s", created.ID, created.UserID, created.Type)
	return nil
}

// List возвращает уведомления пользователя, новые сначала
func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > domain.MaxNotificationsPageSize:
		limit = domain.MaxNotificationsPageSize
	}

	items, err := s.repo.List(ctx, domain.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Limit:      limit,
	})
	if err != nil {
		s.logger.Error("ListNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return items, nil
}

// CountUnread возвращает количество непрочитанных уведомлений
func (s *Service) CountUnread(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("CountUnread: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: CountUnread - repository error: %v", ErrInternal, err)
	}
	return count, nil
}

// MarkAsRead отмечает уведомление прочитанным. Чужое уведомление считается ненайденным
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkAsRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkAsRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkAsRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// MarkAllAsRead отмечает все уведомления пользователя прочитанными
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllAsRead: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: MarkAllAsRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllAsRead: user=%d, marked=%d", userID, count)
	return count, nil
}
