// breeds.go — породы: листинг с фильтром по категории и админ-CRUD
// под /admin/breeds.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
)

// BreedService — операции над ресурсом /breeds.
type BreedService struct {
	client  *apiclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewBreedService создаёт BreedService.
func NewBreedService(client *apiclient.Client, baseURL string, logger *slog.Logger) *BreedService {
	return &BreedService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "breed_service")),
	}
}

// List возвращает породы, опционально ограничивая категорией
// (GET /breeds?categoryId=). Так форма животного перезагружает
// варианты пород при смене категории.
func (s *BreedService) List(ctx context.Context, token string, categoryID *int64) ([]model.Breed, error) {
	reqURL := s.baseURL + "/breeds"
	if categoryID != nil {
		reqURL += "?categoryId=" + strconv.FormatInt(*categoryID, 10)
	}

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var breeds []model.Breed
	if err := json.Unmarshal(respBody, &breeds); err != nil {
		return nil, fmt.Errorf("декодирование пород: %w", err)
	}
	return breeds, nil
}

// AdminList возвращает все породы, включая неактивные.
func (s *BreedService) AdminList(ctx context.Context, token string) ([]model.Breed, error) {
	_, respBody, err := s.client.Do(ctx, http.MethodGet, s.baseURL+"/admin/breeds", nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var breeds []model.Breed
	if err := json.Unmarshal(respBody, &breeds); err != nil {
		return nil, fmt.Errorf("декодирование пород: %w", err)
	}
	return breeds, nil
}

// AdminCreate создаёт породу.
func (s *BreedService) AdminCreate(ctx context.Context, token string, breed model.Breed) error {
	payload, err := json.Marshal(breed)
	if err != nil {
		return fmt.Errorf("сериализация породы: %w", err)
	}

	_, _, err = s.client.Do(ctx, http.MethodPost, s.baseURL+"/admin/breeds",
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Порода создана", slog.String("name", breed.Name))
	return nil
}

// AdminUpdate обновляет породу по id.
func (s *BreedService) AdminUpdate(ctx context.Context, token string, breed model.Breed) error {
	if breed.ID == nil {
		return fmt.Errorf("обновление породы без id")
	}

	payload, err := json.Marshal(breed)
	if err != nil {
		return fmt.Errorf("сериализация породы: %w", err)
	}

	reqURL := fmt.Sprintf("%s/admin/breeds/%d", s.baseURL, *breed.ID)
	_, _, err = s.client.Do(ctx, http.MethodPut, reqURL,
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Порода обновлена", slog.Int64("breed_id", *breed.ID))
	return nil
}

// AdminDelete удаляет породу.
func (s *BreedService) AdminDelete(ctx context.Context, token string, id int64) error {
	reqURL := fmt.Sprintf("%s/admin/breeds/%d", s.baseURL, id)

	_, _, err := s.client.Do(ctx, http.MethodDelete, reqURL, nil, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Порода удалена", slog.Int64("breed_id", id))
	return nil
}
