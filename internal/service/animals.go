// animals.go — операции над животными каталога.
// Листинг с фильтрами, карточка, животные владельца, создание и обновление
// multipart-запросом (JSON-часть "animal" + опциональная часть "image"),
// удаление.
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

// AnimalFilters — параметры фильтрации листинга GET /animals.
// Нулевое значение — «без фильтров».
type AnimalFilters struct {
	// Query — свободный поиск (параметр q).
	Query string
	// CategoryID — фильтр по категории.
	CategoryID *int64
	// Gender — MALE/FEMALE.
	Gender string
	// Size — SMALL/MEDIUM/LARGE/EXTRA_LARGE (параметр animalSize).
	Size string
	// AgeGroup — BABY/YOUNG/ADULT/SENIOR.
	AgeGroup string
	// OnlyAvailable — показывать только не усыновлённых (adopted=false).
	OnlyAvailable bool
}

// Encode сериализует фильтры в query string. Одно и то же состояние
// всегда даёт одну и ту же строку: параметры идут в фиксированном порядке
// q, categoryId, gender, animalSize, ageGroup, adopted; включаются только
// отличные от дефолта; пробелы кодируются как %20.
// Пустые фильтры дают пустую строку (без «?»).
func (f AnimalFilters) Encode() string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+escapeQuery(value))
	}

	if strings.TrimSpace(f.Query) != "" {
		add("q", f.Query)
	}
	if f.CategoryID != nil {
		add("categoryId", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.Gender != "" {
		add("gender", f.Gender)
	}
	if f.Size != "" {
		add("animalSize", f.Size)
	}
	if f.AgeGroup != "" {
		add("ageGroup", f.AgeGroup)
	}
	if f.OnlyAvailable {
		add("adopted", "false")
	}

	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// escapeQuery кодирует значение query-параметра, используя %20 вместо «+»
// для пробелов. Литеральный «+» уходит как %2B, так что замена безопасна.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// AnimalService — операции над ресурсом /animals.
type AnimalService struct {
	client  *apiclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewAnimalService создаёт AnimalService.
func NewAnimalService(client *apiclient.Client, baseURL string, logger *slog.Logger) *AnimalService {
	return &AnimalService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "animal_service")),
	}
}

// List возвращает животных по текущим фильтрам.
// Бэкенд отвечает либо голым массивом, либо Spring-страницей {content: [...]} —
// оба варианта принимаются. Публичный листинг работает и без токена.
func (s *AnimalService) List(ctx context.Context, token string, filters AnimalFilters) ([]model.Animal, error) {
	reqURL := s.baseURL + "/animals" + filters.Encode()

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	animals, err := decodeAnimalList(respBody)
	if err != nil {
		return nil, fmt.Errorf("декодирование списка животных: %w", err)
	}
	return animals, nil
}

// decodeAnimalList принимает и массив, и объект-страницу {content: [...]}.
func decodeAnimalList(data []byte) ([]model.Animal, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var animals []model.Animal
		if err := json.Unmarshal(data, &animals); err != nil {
			return nil, err
		}
		return animals, nil
	}

	var page struct {
		Content []model.Animal `json:"content"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

// Get возвращает одно животное по id.
func (s *AnimalService) Get(ctx context.Context, token string, id int64) (*model.Animal, error) {
	reqURL := fmt.Sprintf("%s/animals/%d", s.baseURL, id)

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	var animal model.Animal
	if err := json.Unmarshal(respBody, &animal); err != nil {
		return nil, fmt.Errorf("декодирование животного: %w", err)
	}
	return &animal, nil
}

// ByOwner возвращает животных владельца.
func (s *AnimalService) ByOwner(ctx context.Context, token string, ownerID int64) ([]model.Animal, error) {
	reqURL := fmt.Sprintf("%s/animals/by-owner/%d", s.baseURL, ownerID)

	_, respBody, err := s.client.Do(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, classify(err)
	}

	animals, err := decodeAnimalList(respBody)
	if err != nil {
		return nil, fmt.Errorf("декодирование животных владельца: %w", err)
	}
	return animals, nil
}

// Create создаёт животное: POST /animals, multipart с JSON-частью "animal"
// и опциональной файловой частью "image".
func (s *AnimalService) Create(ctx context.Context, token string, animal *model.Animal, image *apiclient.FilePart) error {
	return s.save(ctx, http.MethodPost, s.baseURL+"/animals", token, animal, image)
}

// Update обновляет животное: PUT /animals/{id}, тот же multipart-формат.
func (s *AnimalService) Update(ctx context.Context, token string, animal *model.Animal, image *apiclient.FilePart) error {
	if animal.ID == nil {
		return fmt.Errorf("обновление животного без id")
	}
	reqURL := fmt.Sprintf("%s/animals/%d", s.baseURL, *animal.ID)
	return s.save(ctx, http.MethodPut, reqURL, token, animal, image)
}

func (s *AnimalService) save(ctx context.Context, method, reqURL, token string, animal *model.Animal, image *apiclient.FilePart) error {
	payload, err := json.Marshal(animal)
	if err != nil {
		return fmt.Errorf("сериализация животного: %w", err)
	}

	if image != nil {
		image.FieldName = "image"
	}

	_, _, err = s.client.Do(ctx, method, reqURL, &apiclient.Body{
		Kind:         apiclient.ContentMultipart,
		JSON:         payload,
		JSONPartName: "animal",
		File:         image,
	}, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Животное сохранено",
		slog.String("method", method),
		slog.String("name", animal.Name),
	)
	return nil
}

// Delete удаляет животное владельца. Каскадное удаление заявок —
// ответственность бэкенда.
func (s *AnimalService) Delete(ctx context.Context, token string, id int64) error {
	reqURL := fmt.Sprintf("%s/animals/%d", s.baseURL, id)

	_, _, err := s.client.Do(ctx, http.MethodDelete, reqURL, nil, token)
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Животное удалено", slog.Int64("animal_id", id))
	return nil
}
