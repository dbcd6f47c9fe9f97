// errors.go — типизированные ошибки HTTP-клиента.
// Три класса: ConfigError (некорректный запрос, чинить вызывающего),
// TransportError (сеть/таймаут, «попробуйте позже»),
// APIError (бэкенд отклонил запрос, несёт статус и тело ответа).
package apiclient

import (
	"errors"
	"fmt"
)

// ConfigError — ошибка построения запроса (некорректный URL или тело).
// Повтор запроса бессмыслен, нужно исправлять вызывающий код.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("некорректный запрос: %s: %v", e.Reason, e.Err)
	}
	return "некорректный запрос: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError — сетевая ошибка или таймаут.
// Состояние на бэкенде неизвестно, автоматический повтор не выполняется.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ошибка сети: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError — бэкенд вернул статус вне диапазона [200, 300).
// Body — тело error-ответа как есть (пустая строка, если тела нет).
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API вернул статус %d", e.Status)
	}
	return fmt.Sprintf("API вернул статус %d: %s", e.Status, e.Body)
}

// AsAPIError извлекает *APIError из цепочки ошибок.
// Возвращает nil, если ошибка другого класса.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsStatus сообщает, является ли err ошибкой API с указанным статусом.
func IsStatus(err error, status int) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.Status == status
}
