package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	blockSlotHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/cancel_booking"
	cancelHolidayHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/cancel_holiday"
	changeBookingStatusHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/change_booking_status"
	changePaymentMethodHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/change_payment_method"
	createBookingHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/delete_booking"
	generateSlotsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/generate_slots"
	getAvailableDatesHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_booking"
	getBookingByCodeHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_booking_by_code"
	getPaymentHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_payment"
	getScheduleHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_schedule"
	getSlotsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_slots"
	getUnreadCountHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_unread_count"
	getUserBookingsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/list_bookings"
	listNotificationsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/list_notifications"
	markAllNotificationsReadHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/mark_all_notifications_read"
	markNotificationReadHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/mark_notification_read"
	pruneSlotsHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/prune_slots"
	rateBookingHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/rate_booking"
	setHolidayHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/set_holiday"
	toggleScheduleHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/toggle_schedule"
	unblockSlotHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/unblock_slot"
	updatePaymentStatusHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/update_payment_status"
	updateScheduleHandler "github.com/m04kA/HomeCare-BookingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/HomeCare-BookingService/internal/api/middleware"
	"github.com/m04kA/HomeCare-BookingService/internal/config"
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	"github.com/m04kA/HomeCare-BookingService/internal/integrations/catalog"
	"github.com/m04kA/HomeCare-BookingService/internal/integrations/mailqueue"
	bookingsService "github.com/m04kA/HomeCare-BookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/HomeCare-BookingService/internal/service/notifications"
	paymentsService "github.com/m04kA/HomeCare-BookingService/internal/service/payments"
	scheduleService "github.com/m04kA/HomeCare-BookingService/internal/service/schedule"
	"github.com/m04kA/HomeCare-BookingService/internal/service/slotgen"
	slotsService "github.com/m04kA/HomeCare-BookingService/internal/service/slots"
	cancelBookingUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/cancel_booking"
	changeStatusUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/change_booking_status"
	createBookingUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/HomeCare-BookingService/pkg/logger"
	"github.com/m04kA/HomeCare-BookingService/pkg/metrics"
)

// mailSink отправка писем: очередь RabbitMQ или запись в лог
type mailSink interface {
	SendBookingEmail(ctx context.Context, booking *domain.Booking, kind domain.EmailKind, extra map[string]string) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HomeCare-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	rules, err := cfg.Booking.Rules()
	if err != nil {
		log.Fatal("Invalid booking rules: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	var store *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = newMemoryStorage(cfg)
		log.Warn("Using in-memory storage, data will be lost on restart")
	default:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh, log)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
	}
	defer store.close()

	// Инициализируем интеграции
	var catalogSource catalog.Source
	if cfg.Catalog.URL != "" {
		catalogSource = catalog.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
		log.Info("Service catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	} else {
		catalogSource = catalog.NewStatic(catalogServices(cfg.Catalog.Services))
		log.Info("Static service catalog initialized (services=%d)", len(cfg.Catalog.Services))
	}
	serviceCatalog := catalog.NewCached(
		catalogSource,
		cfg.Catalog.CacheSize,
		time.Duration(cfg.Catalog.CacheTTL)*time.Second,
		log,
	)

	var emails mailSink
	if cfg.MailQueue.Enabled {
		publisher, err := mailqueue.NewPublisher(mailqueue.Config{
			URL:        cfg.MailQueue.URL,
			Exchange:   cfg.MailQueue.Exchange,
			RoutingKey: cfg.MailQueue.RoutingKey,
			Queue:      cfg.MailQueue.Queue,
			AdminEmail: cfg.Provider.AdminEmail,
		}, log)
		if err != nil {
			log.Fatal("Failed to connect to mail queue: %v", err)
		}
		emails = publisher
		log.Info("Mail queue publisher initialized (queue=%s)", cfg.MailQueue.Queue)
	} else {
		emails = mailqueue.NewLogSink(cfg.Provider.AdminEmail, log)
		log.Info("Mail queue disabled, emails will be logged")
	}
	defer emails.Close()

	// Инициализируем сервисы
	generator := slotgen.NewGenerator(store.schedule, store.slots, rules.SlotDurationMinutes, log)
	scheduleSvc := scheduleService.NewService(store.schedule, log)
	slotsSvc := slotsService.NewService(store.slots, generator, log)
	notificationsSvc := notificationsService.NewService(store.notifications, log)
	paymentsSvc := paymentsService.NewService(
		store.bookings,
		store.payments,
		notificationsSvc,
		store.txManager,
		nil,
		log,
	)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.payments,
		store.slots,
		notificationsSvc,
		store.txManager,
		nil,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.slots,
		generator,
		rules,
		nil,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		getAvailableSlotsUseCase,
		rules,
		nil,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.slots,
		store.payments,
		generator,
		serviceCatalog,
		notificationsSvc,
		emails,
		store.txManager,
		rules,
		nil,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		store.bookings,
		store.slots,
		notificationsSvc,
		emails,
		changeStatusUC.ProviderContact{
			Name:  cfg.Provider.Name,
			Phone: cfg.Provider.Phone,
			Email: cfg.Provider.Email,
		},
		nil,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store.bookings,
		changeStatusUseCase,
		rules,
		nil,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByCode := getBookingByCodeHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rateBooking := rateBookingHandler.NewHandler(bookingSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentsSvc, log)
	changePaymentMethod := changePaymentMethodHandler.NewHandler(paymentsSvc, log)

	listNotifications := listNotificationsHandler.NewHandler(notificationsSvc, log)
	getUnreadCount := getUnreadCountHandler.NewHandler(notificationsSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationsSvc, log)
	markAllNotificationsRead := markAllNotificationsReadHandler.NewHandler(notificationsSvc, log)

	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(changeStatusUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(paymentsSvc, log)

	getSlots := getSlotsHandler.NewHandler(slotsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(slotsSvc, log)
	pruneSlots := pruneSlotsHandler.NewHandler(slotsSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotsSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotsSvc, log)
	setHoliday := setHolidayHandler.NewHandler(slotsSvc, log)
	cancelHoliday := cancelHolidayHandler.NewHandler(slotsSvc, log)

	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	toggleSchedule := toggleScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Рабочее расписание по дням недели
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату и даты со свободными слотами
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", changeBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/payment/status", updatePaymentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты и выходные ---
	admin.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots", pruneSlots.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/holidays/{date}", setHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{date}", cancelHoliday.Handle).Methods(http.MethodDelete)

	// --- Недельное расписание ---
	admin.HandleFunc("/schedule/{weekday}", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/{weekday}/toggle", toggleSchedule.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/code/{bookingCode}", getBookingByCode.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/rating", rateBooking.Handle).Methods(http.MethodPost)

	// --- Оплата ---
	protected.HandleFunc("/bookings/{bookingId}/payment", getPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/payment/method", changePaymentMethod.Handle).Methods(http.MethodPatch)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", getUnreadCount.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", markAllNotificationsRead.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// CORS для веб-клиента
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (storage=%s)", addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// catalogServices переводит услуги из конфигурации в доменные модели
func catalogServices(services []config.CatalogServiceConfig) []domain.Service {
	result := make([]domain.Service, 0, len(services))
	for _, s := range services {
		result = append(result, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			IsActive:        s.Active,
		})
	}
	return result
}
