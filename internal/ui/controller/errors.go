// errors.go — локальные (pre-flight) ошибки контроллеров.
// Блокируют сетевой вызов целиком: валидация формы, отсутствующий токен,
// недопустимое действие над выбранным элементом.
package controller

import (
	"errors"
	"strings"

	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

// ValidationError — локальная ошибка валидации. Запрос к бэкенду
// при такой ошибке не выполняется.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation сообщает, является ли err локальной ошибкой валидации.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrNoSession — попытка вызвать авторизованный эндпоинт без токена.
// Контроллеры обязаны обнаружить это до сетевого вызова.
var ErrNoSession = &ValidationError{Msg: "сессия отсутствует или истекла, войдите заново"}

// requireToken возвращает токен сессии либо ErrNoSession.
func requireToken(session *auth.SessionData) (string, error) {
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return "", ErrNoSession
	}
	return session.Token, nil
}

// optionalToken возвращает токен сессии либо пустую строку —
// для публичных эндпоинтов, где авторизация не обязательна.
func optionalToken(session *auth.SessionData) string {
	if session == nil {
		return ""
	}
	return session.Token
}
