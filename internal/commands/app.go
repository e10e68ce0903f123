package commands

import (
	"fmt"

	"taskflow/internal/config"
	"taskflow/internal/notify"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

// app holds the wired services shared by all commands.
type app struct {
	cfg           config.Config
	rules         *service.RecurrenceService
	notifications *service.NotificationService
	close         func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var sender service.Sender = notify.NewLogSender()
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramSender(cfg.TelegramToken, userRepo)
		if err != nil {
			closeDB()
			return nil, fmt.Errorf("telegram: %w", err)
		}
		sender = telegram
	}

	clock := service.SystemClock()
	notificationSvc := service.NewNotificationService(notificationRepo, sender, clock)
	recurrenceSvc := service.NewRecurrenceService(ruleRepo, taskRepo, notificationSvc, clock)

	return &app{
		cfg:           cfg,
		rules:         recurrenceSvc,
		notifications: notificationSvc,
		close:         closeDB,
	}, nil
}
