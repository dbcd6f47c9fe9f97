// Пакет handlers — HTTP-обработчики страниц Hometail Web.
// Обработчики тонкие: разбирают запрос, дёргают контроллеры и сервисы,
// рендерят страницы. Успешные POST завершаются redirect (PRG),
// ошибки рендерятся на той же странице с сохранёнными полями формы.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	uimw "github.com/yonatanle/hometail-web/internal/ui/middleware"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
)

// Лимит разбора multipart-форм (фото животного).
const maxMultipartMemory = 10 << 20

// Handlers — обработчики страниц с общими зависимостями.
type Handlers struct {
	auth       *service.AuthService
	animals    *service.AnimalService
	categories *service.CategoryService
	breeds     *service.BreedService
	requests   *service.AdoptionRequestService

	sessions       *auth.SessionManager
	uploadsBaseURL string
	logger         *slog.Logger
}

// New создаёт Handlers.
func New(
	authSvc *service.AuthService,
	animals *service.AnimalService,
	categories *service.CategoryService,
	breeds *service.BreedService,
	requests *service.AdoptionRequestService,
	sessions *auth.SessionManager,
	uploadsBaseURL string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		auth:           authSvc,
		animals:        animals,
		categories:     categories,
		breeds:         breeds,
		requests:       requests,
		sessions:       sessions,
		uploadsBaseURL: strings.TrimRight(uploadsBaseURL, "/"),
		logger:         logger.With(slog.String("component", "ui.handlers")),
	}
}

// session достаёт сессию из контекста запроса (nil — аноним).
func (h *Handlers) session(r *http.Request) *auth.SessionData {
	return uimw.SessionFromContext(r.Context())
}

// viewer собирает данные шапки страницы из сессии.
func viewerFrom(session *auth.SessionData) pages.Viewer {
	if session == nil {
		return pages.Viewer{}
	}
	return pages.Viewer{
		LoggedIn: true,
		FullName: session.FullName,
		IsAdmin:  session.IsAdmin(),
	}
}

// render пишет компонент в ответ. Ошибка рендеринга логируется;
// заголовки к этому моменту могли уйти, так что только лог.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// redirectFlash делает redirect с flash-сообщением в query string.
func redirectFlash(w http.ResponseWriter, r *http.Request, target, flash string) {
	if flash != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "flash=" + url.QueryEscape(flash)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// flashMessages читает flash-сообщение из query string (после PRG).
func flashMessages(r *http.Request) []pages.Message {
	flash := strings.TrimSpace(r.URL.Query().Get("flash"))
	if flash == "" {
		return nil
	}
	return []pages.Message{pages.SuccessMessage(flash)}
}

// messageFor превращает ошибку в текст для пользователя.
// Локальная валидация и сентинелы сервисного слоя дают готовый текст;
// прочие ошибки API показываются со статусом, сетевые — обобщённо.
func messageFor(err error) string {
	if controller.IsValidation(err) {
		return err.Error()
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return "требуется вход в систему"
	case errors.Is(err, service.ErrForbidden):
		return "недостаточно прав для этого действия"
	case errors.Is(err, service.ErrNotFound):
		return "ресурс не найден — возможно, он был удалён"
	case errors.Is(err, service.ErrConflict):
		return "конфликт: " + conflictDetail(err)
	}

	if apiErr := apiclient.AsAPIError(err); apiErr != nil {
		detail := strings.TrimSpace(apiErr.Body)
		if detail == "" {
			detail = "ошибка бэкенда"
		}
		return fmt.Sprintf("ошибка API (статус %d): %s", apiErr.Status, detail)
	}

	var transport *apiclient.TransportError
	if errors.As(err, &transport) {
		return "сервис временно недоступен, попробуйте позже"
	}

	return err.Error()
}

// conflictDetail достаёт тело 409-ответа, если оно есть.
func conflictDetail(err error) string {
	if apiErr := apiclient.AsAPIError(err); apiErr != nil && strings.TrimSpace(apiErr.Body) != "" {
		return strings.TrimSpace(apiErr.Body)
	}
	return "ресурс уже существует или был изменён"
}

// errorMessages — одно сообщение об ошибке.
func errorMessages(err error) []pages.Message {
	return []pages.Message{pages.ErrorMessage(messageFor(err))}
}

// sessionToken возвращает токен сессии либо пустую строку (аноним).
func sessionToken(session *auth.SessionData) string {
	if session == nil {
		return ""
	}
	return session.Token
}

// requireSessionToken возвращает токен либо ErrNoSession —
// для действий, где аноним сюда попасть не должен.
func requireSessionToken(session *auth.SessionData) (string, error) {
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return "", controller.ErrNoSession
	}
	return session.Token, nil
}

// pathValue достаёт именованный сегмент пути из chi-роутера.
func pathValue(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// pathID разбирает числовой сегмент пути (chi URLParam).
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный идентификатор %q", raw)
	}
	return id, nil
}

// imageURL разрешает путь картинки бэкенда в абсолютный URL.
// Абсолютные URL проходят как есть, относительные пристыковываются
// к базе раздачи загрузок.
func (h *Handlers) imageURL(image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if !strings.HasPrefix(image, "/") {
		image = "/" + image
	}
	return h.uploadsBaseURL + image
}

// safeNext валидирует адрес возврата после входа: только локальные
// пути, чтобы не превратиться в open redirect.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/animals"
	}
	return next
}
