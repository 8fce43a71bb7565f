package handlers

import (
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// SlotView HTTP модель слота
type SlotView struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	BookingID   *int64  `json:"bookingId,omitempty"`
	BookingCode *string `json:"bookingCode,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// FromDomainSlot конвертирует слот в HTTP модель
func FromDomainSlot(s domain.Slot) SlotView {
	return SlotView{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Status:      string(s.Status),
		BookingID:   s.BookingID,
		BookingCode: s.BookingCode,
		Note:        s.Note,
	}
}

// FromDomainSlots конвертирует список слотов, пустой список отдается как []
func FromDomainSlots(slots []domain.Slot) []SlotView {
	views := make([]SlotView, len(slots))
	for i, s := range slots {
		views[i] = FromDomainSlot(s)
	}
	return views
}

// ScheduleEntryView HTTP модель записи недельного шаблона
type ScheduleEntryView struct {
	Weekday   string    `json:"weekday"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainScheduleEntry конвертирует запись шаблона в HTTP модель
func FromDomainScheduleEntry(e domain.WeeklyScheduleEntry) ScheduleEntryView {
	return ScheduleEntryView{
		Weekday:   string(e.Weekday),
		StartTime: e.StartTime.String(),
		EndTime:   e.EndTime.String(),
		IsActive:  e.IsActive,
		UpdatedAt: e.UpdatedAt,
	}
}

// NotificationView HTTP модель уведомления
type NotificationView struct {
	ID        int64     `json:"id"`
	BookingID *int64    `json:"bookingId,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainNotifications конвертирует список уведомлений
func FromDomainNotifications(items []domain.Notification) []NotificationView {
	views := make([]NotificationView, len(items))
	for i, n := range items {
		views[i] = NotificationView{
			ID:        n.ID,
			BookingID: n.BookingID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return views
}

// CountResponse ответ для массовых операций
type CountResponse struct {
	Count int64 `json:"count"`
}
