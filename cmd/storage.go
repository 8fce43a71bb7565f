package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/HomeCare-BookingService/internal/config"
	bookingRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HomeCare-BookingService/internal/infra/storage/memory"
	notificationRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/notification"
	paymentRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/payment"
	scheduleRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/HomeCare-BookingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/HomeCare-BookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/HomeCare-BookingService/internal/service/notifications"
	paymentsService "github.com/m04kA/HomeCare-BookingService/internal/service/payments"
	scheduleService "github.com/m04kA/HomeCare-BookingService/internal/service/schedule"
	"github.com/m04kA/HomeCare-BookingService/internal/service/slotgen"
	slotsService "github.com/m04kA/HomeCare-BookingService/internal/service/slots"
	cancelBookingUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/cancel_booking"
	changeStatusUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/change_booking_status"
	createBookingUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/HomeCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/metrics"
	"github.com/m04kA/HomeCare-BookingService/pkg/txmanager"
)

// Объединенные контракты: одна реализация хранилища обслуживает все сервисы и use cases
type (
	scheduleStore interface {
		scheduleService.Repository
		slotgen.ScheduleRepository
	}

	slotStore interface {
		slotgen.SlotRepository
		slotsService.SlotRepository
		bookingsService.SlotRepository
		createBookingUC.SlotRepository
		getAvailableSlotsUC.SlotRepository
		changeStatusUC.SlotRepository
	}

	bookingStore interface {
		bookingsService.BookingRepository
		paymentsService.BookingRepository
		createBookingUC.BookingRepository
		changeStatusUC.BookingRepository
		cancelBookingUC.BookingRepository
	}

	paymentStore interface {
		bookingsService.PaymentRepository
		paymentsService.PaymentRepository
		createBookingUC.PaymentRepository
	}

	transactionManager interface {
		bookingsService.TransactionManager
		paymentsService.TransactionManager
		createBookingUC.TransactionManager
	}
)

// storage набор репозиториев выбранного драйвера
type storage struct {
	schedule      scheduleStore
	slots         slotStore
	bookings      bookingStore
	payments      paymentStore
	notifications notificationsService.Repository
	txManager     transactionManager

	close func() error
}

// newMemoryStorage хранилище в памяти процесса (для локального запуска и демо)
func newMemoryStorage(cfg *config.Config) *storage {
	store := memory.NewStore(cfg.Booking.BookingCodePrefix)
	return &storage{
		schedule:      store.Schedule(),
		slots:         store.Slots(),
		bookings:      store.Bookings(),
		payments:      store.Payments(),
		notifications: store.Notifications(),
		txManager:     store,
		close:         func() error { return nil },
	}
}

// newPostgresStorage подключается к PostgreSQL и оборачивает соединение метриками запросов
func newPostgresStorage(cfg *config.Config, collector *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без коллектора обёртка работает как обычный *sql.DB
	var recorder dbmetrics.Recorder
	if collector != nil {
		recorder = collector
		log.Info("Database metrics collection started")
	}
	wrapped := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)

	return &storage{
		schedule:      scheduleRepo.NewRepository(wrapped),
		slots:         slotRepo.NewRepository(wrapped),
		bookings:      bookingRepo.NewRepository(wrapped, cfg.Booking.BookingCodePrefix),
		payments:      paymentRepo.NewRepository(wrapped),
		notifications: notificationRepo.NewRepository(wrapped),
		txManager:     txmanager.NewTransactionManager(wrapped),
		close:         db.Close,
	}, nil
}
