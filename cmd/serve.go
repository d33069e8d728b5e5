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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	createReservationHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/delete_reservation"
	getAnalyticsHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/get_analytics"
	getEmailHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/get_email"
	getReservationHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/get_reservation"
	ingestEmailHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/ingest_email"
	listEmailsHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/list_emails"
	listReservationsHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/list_reservations"
	listStaffHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/list_staff"
	loginHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/login"
	sendDailySummaryHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/send_daily_summary"
	sendReservationNoticeHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/send_reservation_notice"
	updateEmailHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/update_email"
	updateReservationHandler "github.com/m04kA/SMC-TattooStudio/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-TattooStudio/internal/api/middleware"
	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	emailRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/email"
	reservationRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/reservation"
	staffRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/staff"
	authService "github.com/m04kA/SMC-TattooStudio/internal/service/auth"
	emailsService "github.com/m04kA/SMC-TattooStudio/internal/service/emails"
	reservationsService "github.com/m04kA/SMC-TattooStudio/internal/service/reservations"
	dailySummaryUC "github.com/m04kA/SMC-TattooStudio/internal/usecase/daily_summary"
	ingestEmailUC "github.com/m04kA/SMC-TattooStudio/internal/usecase/ingest_email"
	notifyReservationUC "github.com/m04kA/SMC-TattooStudio/internal/usecase/notify_reservation"
	reservationAnalyticsUC "github.com/m04kA/SMC-TattooStudio/internal/usecase/reservation_analytics"
	"github.com/m04kA/SMC-TattooStudio/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-TattooStudio...")

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(a.db)
	staffRepository := staffRepo.NewRepository(a.db)
	emailRepository := emailRepo.NewRepository(a.db)
	txMgr := txmanager.NewTransactionManager(a.db)

	relayClient := a.relayClient()
	log.Info("Chat relay configured (telegram=%t, whatsapp=%t, timeout=%ds)",
		relayClient.Configured(domain.ChannelTelegram), relayClient.Configured(domain.ChannelWhatsApp), cfg.Relay.Timeout)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, staffRepository, txMgr, log)
	defer reservationSvc.Close()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := reservationSvc.Load(loadCtx); err != nil {
		// Повторная загрузка произойдет при первом запросе
		log.Warn("Initial reservations load failed: %v", err)
	}
	cancelLoad()

	emailSvc := emailsService.NewService(emailRepository, log)
	authSvc := authService.NewService(staffRepository, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log)

	// Инициализируем use cases
	currency := cfg.Studio.Currency
	notifyUseCase := notifyReservationUC.NewUseCase(reservationSvc, relayClient, a.metrics, notifyReservationUC.Settings{
		StudioName:     cfg.Studio.Name,
		CurrencySymbol: currency,
		DefaultChannel: domain.Channel(cfg.Notifications.DefaultChannel),
		Recipients:     a.recipients(),
		AsyncTimeout:   time.Duration(cfg.Relay.Timeout) * time.Second,
	}, log.With("component", "notify_reservation"))

	dailySummaryUseCase := dailySummaryUC.NewUseCase(reservationRepository, staffRepository, relayClient, a.metrics, dailySummaryUC.Settings{
		StudioName:     cfg.Studio.Name,
		CurrencySymbol: currency,
		DefaultChannel: domain.Channel(cfg.Notifications.DefaultChannel),
		Recipients:     a.recipients(),
		Location:       cfg.Studio.Location(),
	}, log.With("component", "daily_summary"))

	analyticsUseCase := reservationAnalyticsUC.NewUseCase(reservationSvc, cfg.Studio.Location(), log)
	ingestEmailUseCase := ingestEmailUC.NewUseCase(emailRepository, txMgr, a.metrics, log.With("component", "ingest_email"))

	var notifier createReservationHandler.Notifier
	if cfg.Notifications.NotifyOnCreate {
		notifier = notifyUseCase
		log.Info("Notices on reservation create enabled (channel=%s)", cfg.Notifications.DefaultChannel)
	}

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	createReservation := createReservationHandler.NewHandler(reservationSvc, notifier, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	sendNotice := sendReservationNoticeHandler.NewHandler(notifyUseCase, log)
	sendDailySummary := sendDailySummaryHandler.NewHandler(dailySummaryUseCase, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsUseCase, log)
	listStaff := listStaffHandler.NewHandler(reservationSvc, log)
	ingestEmail := ingestEmailHandler.NewHandler(ingestEmailUseCase, cfg.Webhook.Secret, cfg.Webhook.MaxBodyBytes, log)
	listEmails := listEmailsHandler.NewHandler(emailSvc, log)
	getEmail := getEmailHandler.NewHandler(emailSvc, log)
	updateEmail := updateEmailHandler.NewHandler(emailSvc, log)

	// Rate limiter для публичных вебхуков
	var limiter middleware.Limiter
	limitSettings := middleware.RateLimitSettings{
		Capacity:       cfg.RateLimit.Capacity,
		RefillTokens:   cfg.RateLimit.RefillTokens,
		RefillInterval: cfg.RateLimit.RefillInterval(),
		Prefix:         cfg.RateLimit.Prefix,
		TrustedProxies: cfg.RateLimit.TrustedProxies,
	}
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, rate limiting passes requests through until it recovers: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		limiter = middleware.NewRedisLimiter(rdb, limitSettings)
		log.Info("Webhook rate limiting enabled (capacity=%d, refill=%d/%s)",
			cfg.RateLimit.Capacity, cfg.RateLimit.RefillTokens, cfg.RateLimit.RefillInterval())
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	webhooks := api.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(middleware.RateLimit(limiter, limitSettings, log.With("component", "rate_limit")))
	webhooks.HandleFunc("/email", ingestEmail.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// --- Записи ---
	reservationRoutes := protected.PathPrefix("").Subrouter()
	reservationRoutes.Use(middleware.RequirePermission(domain.PermissionReservations, log))
	reservationRoutes.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	reservationRoutes.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	reservationRoutes.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	reservationRoutes.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPatch)
	reservationRoutes.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)
	reservationRoutes.HandleFunc("/reservations/{id}/notify", sendNotice.Handle).Methods(http.MethodPost)
	reservationRoutes.HandleFunc("/notifications/daily-summary", sendDailySummary.Handle).Methods(http.MethodPost)

	// --- Экономика ---
	economicsRoutes := protected.PathPrefix("").Subrouter()
	economicsRoutes.Use(middleware.RequirePermission(domain.PermissionEconomics, log))
	economicsRoutes.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)

	// --- Сотрудники ---
	staffRoutes := protected.PathPrefix("").Subrouter()
	staffRoutes.Use(middleware.RequirePermission(domain.PermissionStaff, log))
	staffRoutes.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)

	// --- Почта ---
	emailRoutes := protected.PathPrefix("").Subrouter()
	emailRoutes.Use(middleware.RequirePermission(domain.PermissionEmails, log))
	emailRoutes.HandleFunc("/emails", listEmails.Handle).Methods(http.MethodGet)
	emailRoutes.HandleFunc("/emails/{id}", getEmail.Handle).Methods(http.MethodGet)
	emailRoutes.HandleFunc("/emails/{id}", updateEmail.Handle).Methods(http.MethodPatch)

	// Сводка по расписанию
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if hour := cfg.Notifications.DailySummaryHour; hour >= 0 {
		go dailySummaryUseCase.RunDaily(schedulerCtx, hour)
		log.Info("Daily summary scheduled at %02d:00 %s", hour, cfg.Studio.Timezone)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	}

	log.Info("Shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
