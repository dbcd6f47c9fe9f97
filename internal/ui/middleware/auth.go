// Пакет middleware — HTTP middleware страниц Hometail Web.
// auth.go — извлечение сессии из cookie, обязательный вход,
// проверка роли администратора.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

// contextKey — тип ключей контекста UI.
type contextKey string

// ContextKeySession — данные сессии в контексте запроса.
const ContextKeySession contextKey = "session"

// SessionAuth — middleware аутентификации страниц.
type SessionAuth struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
}

// NewSessionAuth создаёт SessionAuth.
func NewSessionAuth(sessionManager *auth.SessionManager, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		sessionManager: sessionManager,
		logger:         logger.With(slog.String("component", "session_auth")),
	}
}

// Attach извлекает сессию из cookie и кладёт в контекст, если она есть
// и не просрочена. Запрос проходит всегда — для публичных страниц,
// которым сессия нужна только для шапки.
func (sa *SessionAuth) Attach() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sa.sessionManager.GetSessionFromRequest(r)
			if err != nil {
				// Повреждённый cookie чистим молча
				sa.logger.Debug("Ошибка чтения сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				sa.sessionManager.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			if session == nil || session.IsExpired() {
				if session != nil {
					sa.sessionManager.ClearSessionCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require пропускает только аутентифицированные запросы,
// остальные перенаправляет на /login с возвратом на исходную страницу.
func (sa *SessionAuth) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				redirect := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, redirect, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только пользователей с ролью ADMIN.
// Это удобство интерфейса: реальные права проверяет бэкенд.
func (sa *SessionAuth) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			if !session.IsAdmin() {
				sa.logger.Warn("Отказ в доступе к админ-странице",
					slog.String("email", session.Email),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Доступ только для администраторов", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext извлекает сессию из контекста запроса.
// nil — запрос не аутентифицирован.
func SessionFromContext(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(ContextKeySession).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}
