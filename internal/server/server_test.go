package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/handlers"
	uimw "github.com/yonatanle/hometail-web/internal/ui/middleware"
)

// newTestApp собирает роутер приложения поверх httptest-бэкенда.
func newTestApp(t *testing.T, backend http.Handler) http.Handler {
	t.Helper()

	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := apiclient.New(2*time.Second, 5*time.Second, logger)

	sessions, err := auth.NewSessionManager("test-secret", false)
	if err != nil {
		t.Fatalf("менеджер сессий: %v", err)
	}

	h := handlers.New(
		service.NewAuthService(client, api.URL, logger),
		service.NewAnimalService(client, api.URL, logger),
		service.NewCategoryService(client, api.URL, logger),
		service.NewBreedService(client, api.URL, logger),
		service.NewAdoptionRequestService(client, api.URL, logger),
		sessions, api.URL, logger,
	)

	return buildRouter(h, uimw.NewSessionAuth(sessions, logger), logger)
}

// handleMethod регистрирует обработчик для конкретного метода: аналог
// паттернов вида "POST /path" из go1.22+, которых нет в go1.21.
func handleMethod(mux *http.ServeMux, method, path string, h http.HandlerFunc) {
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}

// fakeBackend — минимальный бэкенд Hometail для интеграционных проверок.
func fakeBackend() http.Handler {
	mux := http.NewServeMux()
	handleMethod(mux, http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"jwt-abc","user":{"id":5,"fullName":"Иван Петров","email":"ivan@example.com","role":"ROLE_USER"}}`))
	})
	handleMethod(mux, http.MethodGet, "/animals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Барсик","categoryName":"Кошки","adopted":false}]`))
	})
	handleMethod(mux, http.MethodGet, "/animals/by-owner/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Барсик","categoryName":"Кошки","ownerId":5}]`))
	})
	handleMethod(mux, http.MethodGet, "/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Кошки"}]`))
	})
	handleMethod(mux, http.MethodGet, "/adoption-requests/animal/1/pending/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("2"))
	})
	return mux
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz: %d %q", rec.Code, rec.Body.String())
	}
}

// Каталог доступен анониму и содержит загруженных животных.
func TestAnimalsPagePublic(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Барсик") {
		t.Error("страница должна содержать имя животного")
	}
	if !strings.Contains(body, "Войти") {
		t.Error("аноним должен видеть ссылку входа")
	}
}

// Защищённые страницы уводят анонима на /login с возвратом.
func TestRequireRedirectsAnonymous(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/my-animals", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("статус = %d, ожидался 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?next=") {
		t.Errorf("Location = %q", loc)
	}
}

// Полный цикл: вход → cookie → защищённая страница → выход.
func TestLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	// Вход
	form := strings.NewReader("email=ivan%40example.com&password=secret&next=%2Fmy-animals")
	loginReq := httptest.NewRequest(http.MethodPost, "/login", form)
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginRec := httptest.NewRecorder()
	app.ServeHTTP(loginRec, loginReq)

	if loginRec.Code != http.StatusSeeOther {
		t.Fatalf("login: статус = %d, тело: %s", loginRec.Code, loginRec.Body.String())
	}
	if loc := loginRec.Header().Get("Location"); loc != "/my-animals" {
		t.Errorf("Location = %q", loc)
	}

	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != auth.SessionCookieName {
		t.Fatalf("session cookie не установлен: %+v", cookies)
	}

	// Защищённая страница с cookie
	pageReq := httptest.NewRequest(http.MethodGet, "/my-animals", nil)
	pageReq.AddCookie(cookies[0])
	pageRec := httptest.NewRecorder()
	app.ServeHTTP(pageRec, pageReq)

	if pageRec.Code != http.StatusOK {
		t.Fatalf("my-animals: статус = %d", pageRec.Code)
	}
	body := pageRec.Body.String()
	if !strings.Contains(body, "Иван Петров") {
		t.Error("шапка должна показывать имя пользователя")
	}
	if !strings.Contains(body, "2 в ожидании") {
		t.Error("счётчик ожидающих заявок должен отображаться")
	}

	// Выход
	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.AddCookie(cookies[0])
	logoutRec := httptest.NewRecorder()
	app.ServeHTTP(logoutRec, logoutReq)

	cleared := logoutRec.Result().Cookies()
	if len(cleared) == 0 || cleared[0].MaxAge != -1 {
		t.Errorf("logout должен чистить cookie: %+v", cleared)
	}
}

// Неверные креденшалы — форма входа с сообщением, без cookie.
func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	handleMethod(mux, http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	})
	app := newTestApp(t, mux)

	form := strings.NewReader("email=ivan%40example.com&password=wrong")
	req := httptest.NewRequest(http.MethodPost, "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "неверный email или пароль") {
		t.Error("нет сообщения о неверных креденшалах")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie не должен устанавливаться при неудачном входе")
	}
	// Email возвращается в форму
	if !strings.Contains(rec.Body.String(), "ivan@example.com") {
		t.Error("email должен сохраниться в форме")
	}
}

// Админ-страницы закрыты для обычного пользователя (403).
func TestAdminForbiddenForUser(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	// Входим обычным пользователем (ROLE_USER из fakeBackend)
	form := strings.NewReader("email=ivan%40example.com&password=secret")
	loginReq := httptest.NewRequest(http.MethodPost, "/login", form)
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	app.ServeHTTP(loginRec, loginReq)
	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("нет session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/categories", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d, ожидался 403", rec.Code)
	}
}

// HTMX-partial отдаёт только таблицу, без каркаса страницы.
func TestAnimalTablePartial(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partials/animal-table?sort=name&order=asc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="animal-table"`) {
		t.Error("partial должен содержать таблицу")
	}
	if strings.Contains(body, "<html") {
		t.Error("partial не должен содержать каркас страницы")
	}
}

// Корень редиректит в каталог.
func TestRootRedirect(t *testing.T) {
	app := newTestApp(t, fakeBackend())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/animals" {
		t.Errorf("корень: %d → %q", rec.Code, rec.Header().Get("Location"))
	}
}
