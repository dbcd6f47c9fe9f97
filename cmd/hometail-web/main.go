// Hometail Web — серверный веб-интерфейс приложения усыновления животных.
// Всё состояние живёт на бэкенде Hometail (REST API); здесь только
// рендеринг страниц, сессии в зашифрованных cookie и проксирование
// действий пользователя в API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/config"
	"github.com/yonatanle/hometail-web/internal/server"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/handlers"
	uimw "github.com/yonatanle/hometail-web/internal/ui/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка запуска:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}

	logger := config.SetupLogger(cfg)
	logger.Info("Hometail Web запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	client := apiclient.New(cfg.APIConnectTimeout, cfg.APIReadTimeout, logger)

	authSvc := service.NewAuthService(client, cfg.APIBaseURL, logger)
	animals := service.NewAnimalService(client, cfg.APIBaseURL, logger)
	categories := service.NewCategoryService(client, cfg.APIBaseURL, logger)
	breeds := service.NewBreedService(client, cfg.APIBaseURL, logger)
	requests := service.NewAdoptionRequestService(client, cfg.APIBaseURL, logger)

	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SecureCookie)
	if err != nil {
		return fmt.Errorf("инициализация менеджера сессий: %w", err)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("HW_SESSION_SECRET не задан — сессии не переживут рестарт")
	}

	h := handlers.New(authSvc, animals, categories, breeds, requests,
		sessions, cfg.UploadsBaseURL, logger)
	sessionAuth := uimw.NewSessionAuth(sessions, logger)

	srv := server.New(cfg.Port, cfg.ShutdownTimeout, h, sessionAuth, logger)
	return srv.Run()
}
