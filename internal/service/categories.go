// categories.go — категории: публичный листинг и админ-CRUD
// под /admin/categories.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
)

// CategoryService — операции над ресурсом /categories.
type CategoryService struct {
	client  *apiclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewCategoryService создаёт CategoryService.
func NewCategoryService(client *apiclient.Client, baseURL string, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "category_service")),
	}
}

// List возвращает категории. activeOnly добавляет ?active=true —
// так заполняются фильтры публичных страниц.
func (s *CategoryService) List(ctx context.Context, token string, activeOnly bool) ([]model.Category, error) {
	reqURL := s.baseURL + "/categories"
	if activeOnly {
		reqURL += "?active=true"
	}

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var categories []model.Category
	if err := json.Unmarshal(respBody, &categories); err != nil {
		return nil, fmt.Errorf("декодирование категорий: %w", err)
	}
	return categories, nil
}

// AdminList возвращает все категории, включая неактивные (админ-эндпоинт).
func (s *CategoryService) AdminList(ctx context.Context, token string) ([]model.Category, error) {
	_, respBody, err := s.client.Do(ctx, http.MethodGet, s.baseURL+"/admin/categories", nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var categories []model.Category
	if err := json.Unmarshal(respBody, &categories); err != nil {
		return nil, fmt.Errorf("декодирование категорий: %w", err)
	}
	return categories, nil
}

// AdminCreate создаёт категорию.
func (s *CategoryService) AdminCreate(ctx context.Context, token string, category model.Category) error {
	payload, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("сериализация категории: %w", err)
	}

	_, _, err = s.client.Do(ctx, http.MethodPost, s.baseURL+"/admin/categories",
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Категория создана", slog.String("name", category.Name))
	return nil
}

// AdminUpdate обновляет категорию по id.
func (s *CategoryService) AdminUpdate(ctx context.Context, token string, category model.Category) error {
	if category.ID == nil {
		return fmt.Errorf("обновление категории без id")
	}

	payload, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("сериализация категории: %w", err)
	}

	reqURL := fmt.Sprintf("%s/admin/categories/%d", s.baseURL, *category.ID)
	_, _, err = s.client.Do(ctx, http.MethodPut, reqURL,
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Категория обновлена", slog.Int64("category_id", *category.ID))
	return nil
}

// AdminDelete удаляет категорию.
func (s *CategoryService) AdminDelete(ctx context.Context, token string, id int64) error {
	reqURL := fmt.Sprintf("%s/admin/categories/%d", s.baseURL, id)

	_, _, err := s.client.Do(ctx, http.MethodDelete, reqURL, nil, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Категория удалена", slog.Int64("category_id", id))
	return nil
}
