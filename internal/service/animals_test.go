package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAPIClient() *apiclient.Client {
	return apiclient.New(2*time.Second, 5*time.Second, testLogger())
}

func int64Ptr(v int64) *int64 { return &v }

// Одно и то же состояние фильтров всегда даёт одну и ту же строку:
// фиксированный порядок параметров, %20 вместо «+».
func TestAnimalFiltersEncode(t *testing.T) {
	tests := []struct {
		name     string
		filters  AnimalFilters
		expected string
	}{
		{"пустые фильтры", AnimalFilters{}, ""},
		{"поиск с пробелом", AnimalFilters{Query: "golden retriever"}, "?q=golden%20retriever"},
		{"поиск и категория", AnimalFilters{Query: "golden retriever", CategoryID: int64Ptr(3)},
			"?q=golden%20retriever&categoryId=3"},
		{"все фильтры", AnimalFilters{
			Query:         "рекс",
			CategoryID:    int64Ptr(2),
			Gender:        "MALE",
			Size:          "LARGE",
			AgeGroup:      "YOUNG",
			OnlyAvailable: true,
		}, "?q=%D1%80%D0%B5%D0%BA%D1%81&categoryId=2&gender=MALE&animalSize=LARGE&ageGroup=YOUNG&adopted=false"},
		{"только доступные", AnimalFilters{OnlyAvailable: true}, "?adopted=false"},
		{"пробельный поиск игнорируется", AnimalFilters{Query: "   "}, ""},
		{"плюс кодируется отдельно", AnimalFilters{Query: "a+b c"}, "?q=a%2Bb%20c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Encode(); got != tt.expected {
				t.Errorf("Encode() = %q, ожидалось %q", got, tt.expected)
			}
			// Повторный вызов обязан дать ту же строку
			if got := tt.filters.Encode(); got != tt.expected {
				t.Errorf("повторный Encode() = %q", got)
			}
		})
	}
}

// Листинг принимает и голый массив, и Spring-страницу {content: [...]}.
func TestAnimalListDecodeBothShapes(t *testing.T) {
	bodies := map[string]string{
		"массив":   `[{"id":1,"name":"Рекс"},{"id":2,"name":"Мурка"}]`,
		"страница": `{"content":[{"id":1,"name":"Рекс"},{"id":2,"name":"Мурка"}],"totalElements":2}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
			animals, err := svc.List(context.Background(), "", AnimalFilters{})
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if len(animals) != 2 || animals[0].Name != "Рекс" || animals[1].Name != "Мурка" {
				t.Errorf("animals = %+v", animals)
			}
		})
	}
}

// Фильтры доходят до бэкенда в детерминированном виде.
func TestAnimalListSendsFilters(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
	filters := AnimalFilters{Query: "golden retriever", CategoryID: int64Ptr(3)}
	if _, err := svc.List(context.Background(), "", filters); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if gotURI != "/animals?q=golden%20retriever&categoryId=3" {
		t.Errorf("URI = %q", gotURI)
	}
}

// 404 от бэкенда оборачивается в ErrNotFound, исходная ошибка в цепочке.
func TestAnimalGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
	_, err := svc.Get(context.Background(), "tok", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получено %v", err)
	}
	if apiclient.AsAPIError(err) == nil {
		t.Error("исходный *APIError должен оставаться в цепочке")
	}
}

// Создание — POST /animals, multipart с JSON-частью "animal" и файлом "image".
func TestAnimalCreateMultipart(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
	animal := &model.Animal{Name: "Рекс", CategoryID: int64Ptr(1), OwnerID: int64Ptr(5)}
	image := &apiclient.FilePart{Filename: "rex.png", ContentType: "image/png", Data: []byte{1}}

	if err := svc.Create(context.Background(), "tok", animal, image); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/animals" {
		t.Errorf("запрос = %s %s", gotMethod, gotPath)
	}

	_, params, _ := mime.ParseMediaType(gotContentType)
	reader := multipart.NewReader(strings.NewReader(string(gotBody)), params["boundary"])

	jsonPart, err := reader.NextPart()
	if err != nil {
		t.Fatalf("чтение JSON-части: %v", err)
	}
	if jsonPart.FormName() != "animal" {
		t.Errorf("имя JSON-части = %q", jsonPart.FormName())
	}
	var sent model.Animal
	if err := json.NewDecoder(jsonPart).Decode(&sent); err != nil {
		t.Fatalf("декодирование: %v", err)
	}
	if sent.Name != "Рекс" || sent.OwnerID == nil || *sent.OwnerID != 5 {
		t.Errorf("отправлено %+v", sent)
	}

	filePart, err := reader.NextPart()
	if err != nil {
		t.Fatalf("чтение файловой части: %v", err)
	}
	if filePart.FormName() != "image" {
		t.Errorf("имя файловой части = %q, ожидалось image", filePart.FormName())
	}
}

// Обновление — PUT /animals/{id}; без id — ошибка без сетевого вызова.
func TestAnimalUpdate(t *testing.T) {
	var calls int
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())

	if err := svc.Update(context.Background(), "tok", &model.Animal{Name: "без id"}, nil); err == nil {
		t.Error("обновление без id должно вернуть ошибку")
	}
	if calls != 0 {
		t.Errorf("сетевых вызовов = %d, ожидалось 0", calls)
	}

	animal := &model.Animal{ID: int64Ptr(7), Name: "Рекс"}
	if err := svc.Update(context.Background(), "tok", animal, nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/animals/7" {
		t.Errorf("запрос = %s %s", gotMethod, gotPath)
	}
}

func TestAnimalDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
	if err := svc.Delete(context.Background(), "tok", 3); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/animals/3" {
		t.Errorf("запрос = %s %s", gotMethod, gotPath)
	}
}

// ByOwner ходит на /animals/by-owner/{id}.
func TestAnimalsByOwner(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"id":1,"name":"Рекс","ownerId":5}]`))
	}))
	defer srv.Close()

	svc := NewAnimalService(testAPIClient(), srv.URL, testLogger())
	animals, err := svc.ByOwner(context.Background(), "tok", 5)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotPath != "/animals/by-owner/5" {
		t.Errorf("path = %q", gotPath)
	}
	if len(animals) != 1 {
		t.Errorf("animals = %+v", animals)
	}
}
