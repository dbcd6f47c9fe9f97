// Пакет server — HTTP-сервер Hometail Web: маршрутизация, middleware,
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yonatanle/hometail-web/internal/middleware"
	"github.com/yonatanle/hometail-web/internal/ui/handlers"
	uimw "github.com/yonatanle/hometail-web/internal/ui/middleware"
	"github.com/yonatanle/hometail-web/internal/ui/static"
)

// Server — HTTP-сервер приложения.
type Server struct {
	httpServer      *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New создаёт сервер с собранным роутером.
func New(port int, shutdownTimeout time.Duration, h *handlers.Handlers, sessionAuth *uimw.SessionAuth, logger *slog.Logger) *Server {
	router := buildRouter(h, sessionAuth, logger)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:          logger.With(slog.String("component", "server")),
		shutdownTimeout: shutdownTimeout,
	}
}

// buildRouter собирает chi-роутер со всеми маршрутами приложения.
// Порядок middleware: recover → метрики → логирование → сессия.
func buildRouter(h *handlers.Handlers, sessionAuth *uimw.SessionAuth, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(middleware.RequestLogger(logger))
	r.Use(sessionAuth.Attach())

	// Служебные эндпоинты
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Статика из бинарника
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	// Публичные страницы
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/animals", http.StatusFound)
	})
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/animals", h.AnimalsPage)
	r.Get("/partials/animal-table", h.AnimalTablePartial)
	r.Get("/animals/{id:[0-9]+}", h.AnimalDetailPage)

	// Страницы, требующие входа
	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.Require())

		r.Get("/animals/new", h.NewAnimalPage)
		r.Get("/animals/{id:[0-9]+}/edit", h.EditAnimalPage)
		r.Post("/animals/save", h.SaveAnimal)
		r.Post("/animals/category-change", h.AnimalCategoryChange)
		r.Post("/animals/{id:[0-9]+}/delete", h.DeleteAnimal)

		r.Post("/animals/{id:[0-9]+}/request", h.CreateAdoptionRequest)
		r.Post("/animals/{id:[0-9]+}/request/note", h.UpdateRequestNote)
		r.Post("/animals/{id:[0-9]+}/request/cancel", h.CancelAdoptionRequest)

		r.Get("/animals/{id:[0-9]+}/requests", h.RequestsForAnimalPage)
		r.Post("/animals/{id:[0-9]+}/requests/{requestId:[0-9]+}/approve", h.ApproveRequest)
		r.Post("/animals/{id:[0-9]+}/requests/{requestId:[0-9]+}/reject", h.RejectRequest)

		r.Get("/my-animals", h.MyAnimalsPage)
		r.Get("/my-requests", h.MyRequestsPage)
		r.Post("/my-requests/{id:[0-9]+}/delete", h.DeleteMyRequest)
	})

	// Админ-страницы
	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.Require())
		r.Use(sessionAuth.RequireAdmin())

		r.Get("/admin/categories", h.AdminCategoriesPage)
		r.Post("/admin/categories/save", h.SaveAdminCategory)
		r.Post("/admin/categories/delete", h.DeleteAdminCategory)
		r.Get("/admin/breeds", h.AdminBreedsPage)
		r.Post("/admin/breeds/save", h.SaveAdminBreed)
		r.Post("/admin/breeds/delete", h.DeleteAdminBreed)
	})

	return r
}

// Run запускает сервер и блокируется до SIGINT/SIGTERM,
// после чего выполняет graceful shutdown с настроенным таймаутом.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка HTTP-сервера: %w", err)
	case sig := <-stop:
		s.logger.Info("Получен сигнал остановки", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
