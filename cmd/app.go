package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TattooStudio/internal/config"
	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/integrations/chatrelay"
	"github.com/m04kA/SMC-TattooStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
	"github.com/m04kA/SMC-TattooStudio/pkg/metrics"
)

// app общие зависимости команд: конфигурация, логгер, метрики и пул БД
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	sqlDB   *sql.DB
	db      *dbmetrics.DB

	stopMetricsCh chan struct{}
}

func newApp(path string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.NewWithEncoding(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", path)

	// Метрики создаются всегда, наружу отдаются только если включены
	m := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		_ = log.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopCh := make(chan struct{})
	var collector dbmetrics.Collector
	if cfg.Metrics.Enabled {
		collector = m
		log.Info("Database metrics collection started")
	}

	return &app{
		cfg:           cfg,
		log:           log,
		metrics:       m,
		sqlDB:         sqlDB,
		db:            dbmetrics.WrapWithDefault(sqlDB, collector, stopCh),
		stopMetricsCh: stopCh,
	}, nil
}

// relayClient клиент чат-релеев из секции [relay]
func (a *app) relayClient() *chatrelay.Client {
	return chatrelay.NewClient(map[domain.Channel]string{
		domain.ChannelTelegram: a.cfg.Relay.TelegramURL,
		domain.ChannelWhatsApp: a.cfg.Relay.WhatsAppURL,
	}, time.Duration(a.cfg.Relay.Timeout)*time.Second, a.log)
}

// recipients получатели по умолчанию из секции [notifications]
func (a *app) recipients() map[domain.Channel]string {
	return map[domain.Channel]string{
		domain.ChannelTelegram: a.cfg.Notifications.TelegramChatID,
		domain.ChannelWhatsApp: a.cfg.Notifications.WhatsAppNumber,
	}
}

func (a *app) Close() {
	close(a.stopMetricsCh)
	if err := a.sqlDB.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
	_ = a.log.Close()
}
