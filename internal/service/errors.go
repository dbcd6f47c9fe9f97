// errors.go — ошибки сервисного слоя поверх REST API Hometail.
package service

import (
	"errors"
	"fmt"

	"github.com/yonatanle/hometail-web/internal/apiclient"
)

var (
	// ErrUnauthorized — нет или просрочен токен (401).
	ErrUnauthorized = errors.New("требуется вход в систему")
	// ErrForbidden — действие запрещено для текущего пользователя (403).
	ErrForbidden = errors.New("недостаточно прав для этого действия")
	// ErrNotFound — ресурс не найден (404).
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт, ресурс уже существует или состояние изменилось (409).
	ErrConflict = errors.New("конфликт — ресурс уже существует или был изменён")
)

// classify оборачивает ошибку API-клиента в сентинел по статусу,
// сохраняя исходную ошибку в цепочке. Не-APIError (сеть, конфигурация)
// возвращаются как есть.
func classify(err error) error {
	apiErr := apiclient.AsAPIError(err)
	if apiErr == nil {
		return err
	}

	switch apiErr.Status {
	case 401:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case 403:
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case 404:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case 409:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
