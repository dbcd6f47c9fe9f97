// register.go — контроллер формы регистрации.
// Локальная валидация (обязательные поля, совпадение паролей) блокирует
// сетевой вызов целиком; полное имя склеивается из имени и фамилии.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yonatanle/hometail-web/internal/service"
)

// RegisterForm — контроллер формы регистрации.
type RegisterForm struct {
	auth   *service.AuthService
	logger *slog.Logger

	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
}

// NewRegisterForm создаёт контроллер регистрации.
func NewRegisterForm(auth *service.AuthService, logger *slog.Logger) *RegisterForm {
	return &RegisterForm{
		auth:   auth,
		logger: logger.With(slog.String("component", "ui.register_form")),
	}
}

// Submit валидирует форму и регистрирует пользователя.
// 409 превращается в понятное «email уже занят», 400 — в
// «некорректные данные»; поля формы при ошибке не трогаются.
func (f *RegisterForm) Submit(ctx context.Context) error {
	firstName := strings.TrimSpace(f.FirstName)
	lastName := strings.TrimSpace(f.LastName)
	email := strings.TrimSpace(f.Email)

	if firstName == "" || lastName == "" {
		return &ValidationError{Msg: "укажите имя и фамилию"}
	}
	if email == "" {
		return &ValidationError{Msg: "укажите email"}
	}
	if f.Password == "" {
		return &ValidationError{Msg: "укажите пароль"}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Msg: "пароли не совпадают"}
	}

	err := f.auth.Register(ctx, service.RegisterRequest{
		FullName:    firstName + " " + lastName,
		Email:       email,
		Password:    f.Password,
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return &ValidationError{Msg: "этот email уже зарегистрирован"}
		}
		return err
	}

	return nil
}
