// requests.go — заявки на усыновление: мои заявки, заявки на моё животное,
// счётчик ожидающих, создание, смена статуса, правка заметки, отмена.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
)

// AdoptionRequestService — операции над ресурсом /adoption-requests.
// Все эндпоинты требуют авторизации.
type AdoptionRequestService struct {
	client  *apiclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewAdoptionRequestService создаёт AdoptionRequestService.
func NewAdoptionRequestService(client *apiclient.Client, baseURL string, logger *slog.Logger) *AdoptionRequestService {
	return &AdoptionRequestService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "adoption_request_service")),
	}
}

// MyRequests возвращает заявки текущего пользователя.
func (s *AdoptionRequestService) MyRequests(ctx context.Context, token string) ([]model.AdoptionRequest, error) {
	_, respBody, err := s.client.Do(ctx, http.MethodGet,
		s.baseURL+"/adoption-requests/my-requests", nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var requests []model.AdoptionRequest
	if err := json.Unmarshal(respBody, &requests); err != nil {
		return nil, fmt.Errorf("декодирование заявок: %w", err)
	}
	return requests, nil
}

// ForAnimal возвращает заявки на животное текущего владельца.
func (s *AdoptionRequestService) ForAnimal(ctx context.Context, token string, animalID int64) ([]model.AdoptionRequest, error) {
	reqURL := fmt.Sprintf("%s/adoption-requests/requests-for-my-animal/%d", s.baseURL, animalID)

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var requests []model.AdoptionRequest
	if err := json.Unmarshal(respBody, &requests); err != nil {
		return nil, fmt.Errorf("декодирование заявок на животное: %w", err)
	}
	return requests, nil
}

// PendingCount возвращает число ожидающих заявок на животное.
// Бэкенд отвечает голым целым числом в теле.
func (s *AdoptionRequestService) PendingCount(ctx context.Context, token string, animalID int64) (int, error) {
	reqURL := fmt.Sprintf("%s/adoption-requests/animal/%d/pending/count", s.baseURL, animalID)

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return 0, classify(err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(respBody)))
	if err != nil {
		return 0, fmt.Errorf("декодирование счётчика заявок: %w", err)
	}
	return count, nil
}

// Create отправляет заявку на усыновление. Заметка обрезается по краям,
// пустая допустима. Дубликат заявки бэкенд отвергает 409 → ErrConflict.
func (s *AdoptionRequestService) Create(ctx context.Context, token string, animalID int64, note string) error {
	payload, err := json.Marshal(map[string]any{
		"animalId": animalID,
		"note":     strings.TrimSpace(note),
	})
	if err != nil {
		return fmt.Errorf("сериализация заявки: %w", err)
	}

	_, _, err = s.client.Do(ctx, http.MethodPost, s.baseURL+"/adoption-requests",
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Заявка на усыновление отправлена", slog.Int64("animal_id", animalID))
	return nil
}

// UpdateStatus переводит заявку в новый статус:
// PUT /adoption-requests/{id}/status?status=APPROVED|REJECTED.
// Повторный перевод уже решённой заявки бэкенд отвергает (409/400) —
// ошибка доводится до вызывающего, не глотается.
func (s *AdoptionRequestService) UpdateStatus(ctx context.Context, token string, id int64, status string) error {
	reqURL := fmt.Sprintf("%s/adoption-requests/%d/status?status=%s",
		s.baseURL, id, url.QueryEscape(status))

	_, _, err := s.client.Do(ctx, http.MethodPut, reqURL, nil, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Статус заявки обновлён",
		slog.Int64("request_id", id),
		slog.String("status", status),
	)
	return nil
}

// UpdateNote обновляет заметку заявки: PUT /adoption-requests/{id}/note {note}.
func (s *AdoptionRequestService) UpdateNote(ctx context.Context, token string, id int64, note string) error {
	payload, err := json.Marshal(map[string]string{
		"note": strings.TrimSpace(note),
	})
	if err != nil {
		return fmt.Errorf("сериализация заметки: %w", err)
	}

	reqURL := fmt.Sprintf("%s/adoption-requests/%d/note", s.baseURL, id)
	_, _, err = s.client.Do(ctx, http.MethodPut, reqURL,
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Delete отменяет заявку (доступно только заявителю, только из PENDING).
func (s *AdoptionRequestService) Delete(ctx context.Context, token string, id int64) error {
	reqURL := fmt.Sprintf("%s/adoption-requests/%d", s.baseURL, id)

	_, _, err := s.client.Do(ctx, http.MethodDelete, reqURL, nil, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Заявка отменена", slog.Int64("request_id", id))
	return nil
}
