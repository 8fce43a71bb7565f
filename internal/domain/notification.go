package domain

import "time"

// NotificationType groups notifications in the patient inbox
type NotificationType string

const (
	NotificationBooking  NotificationType = "booking"
	NotificationPayment  NotificationType = "payment"
	NotificationSchedule NotificationType = "schedule"
	NotificationRating   NotificationType = "rating"
	NotificationSystem   NotificationType = "system"
)

// Notification is an in-app message for a user
type Notification struct {
	ID        int64
	UserID    int64
	BookingID *int64
	Type      NotificationType
	Title     string
	Message   string
	Link      *string
	IsRead    bool
	CreatedAt time.Time
}

// NotificationFilter фильтр для списка уведомлений
type NotificationFilter struct {
	UserID     int64
	UnreadOnly bool
	Limit      int
}
