// auth.go — вход, выход и регистрация.
// Login кладёт сессию в зашифрованный cookie; logout — безусловная
// локальная инвалидация cookie без обращения к бэкенду.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
)

// LoginPage — GET /login.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.session(r) != nil {
		http.Redirect(w, r, "/animals", http.StatusFound)
		return
	}

	h.render(w, r, pages.Login(pages.LoginData{
		Next:     r.URL.Query().Get("next"),
		Messages: flashMessages(r),
	}))
}

// Login — POST /login. Неверные креденшалы (401/403) дают понятное
// сообщение, email возвращается в форму.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	renderError := func(msg string) {
		h.render(w, r, pages.Login(pages.LoginData{
			Email:    email,
			Next:     next,
			Messages: []pages.Message{pages.ErrorMessage(msg)},
		}))
	}

	if email == "" || password == "" {
		renderError("укажите email и пароль")
		return
	}

	token, user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		h.logger.Warn("Неудачная попытка входа",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		renderError(loginErrorMessage(err))
		return
	}

	session := auth.NewSessionFromLogin(token, user)
	if err := h.sessions.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie",
			slog.String("error", err.Error()),
		)
		renderError("не удалось сохранить сессию, попробуйте ещё раз")
		return
	}

	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// loginErrorMessage — для формы входа 401/403 не различаются:
// пользователю важно лишь, что креденшалы не подошли.
func loginErrorMessage(err error) string {
	msg := messageFor(err)
	if msg == "требуется вход в систему" || msg == "недостаточно прав для этого действия" {
		return "неверный email или пароль"
	}
	return msg
}

// Logout — POST /logout. Чистит cookie и уводит в каталог.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearSessionCookie(w)
	http.Redirect(w, r, "/animals", http.StatusSeeOther)
}

// RegisterPage — GET /register.
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.session(r) != nil {
		http.Redirect(w, r, "/animals", http.StatusFound)
		return
	}
	h.render(w, r, pages.Register(pages.RegisterData{Messages: flashMessages(r)}))
}

// Register — POST /register. Успех уводит на /login; при ошибке поля
// формы (кроме паролей) возвращаются пользователю.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	form := controller.NewRegisterForm(h.auth, h.logger)
	form.FirstName = r.PostFormValue("firstName")
	form.LastName = r.PostFormValue("lastName")
	form.Email = r.PostFormValue("email")
	form.PhoneNumber = r.PostFormValue("phoneNumber")
	form.Password = r.PostFormValue("password")
	form.ConfirmPassword = r.PostFormValue("confirmPassword")

	if err := form.Submit(r.Context()); err != nil {
		h.render(w, r, pages.Register(pages.RegisterData{
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			Email:       form.Email,
			PhoneNumber: form.PhoneNumber,
			Messages:    errorMessages(err),
		}))
		return
	}

	redirectFlash(w, r, "/login", "аккаунт создан, войдите с вашим email и паролем")
}
