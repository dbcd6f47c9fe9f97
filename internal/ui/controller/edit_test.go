package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

func newFormController(srvURL string) *AnimalForm {
	animals := service.NewAnimalService(testAPIClient(), srvURL, testLogger())
	categories := service.NewCategoryService(testAPIClient(), srvURL, testLogger())
	breeds := service.NewBreedService(testAPIClient(), srvURL, testLogger())
	return NewAnimalForm(animals, categories, breeds, testLogger())
}

func testSession() *auth.SessionData {
	return &auth.SessionData{Token: "tok", UserID: int64Ptr(5)}
}

// Локальная валидация блокирует сетевой вызов целиком.
func TestAnimalFormSubmitValidationBlocksNetwork(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	f := newFormController(srv.URL)

	// Без имени
	f.CategoryID = int64Ptr(1)
	if err := f.Submit(context.Background(), testSession()); !IsValidation(err) {
		t.Errorf("без имени: ожидалась ValidationError, получено %v", err)
	}

	// Без категории
	f.Name = "Рекс"
	f.CategoryID = nil
	if err := f.Submit(context.Background(), testSession()); !IsValidation(err) {
		t.Errorf("без категории: ожидалась ValidationError, получено %v", err)
	}

	// Кривая дата
	f.CategoryID = int64Ptr(1)
	f.Birthday = "28.08.2026"
	if err := f.Submit(context.Background(), testSession()); !IsValidation(err) {
		t.Errorf("кривая дата: ожидалась ValidationError, получено %v", err)
	}

	// Без сессии
	f.Birthday = ""
	if err := f.Submit(context.Background(), nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("без сессии: ожидался ErrNoSession, получено %v", err)
	}

	if calls != 0 {
		t.Errorf("сетевых вызовов = %d, ожидалось 0", calls)
	}
}

// Создание — POST, владелец берётся из сессии, enum нормализуются;
// на успехе форма очищается.
func TestAnimalFormSubmitCreate(t *testing.T) {
	var gotMethod, gotPath string
	var sent model.Animal
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		decodeAnimalPart(t, r, &sent)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	f := newFormController(srv.URL)
	f.Name = "  Рекс  "
	f.CategoryID = int64Ptr(1)
	f.Gender = "male"
	f.Size = "extra large"
	f.Birthday = "2024-03-15"

	if err := f.Submit(context.Background(), testSession()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/animals" {
		t.Errorf("запрос = %s %s", gotMethod, gotPath)
	}
	if sent.Name != "Рекс" {
		t.Errorf("имя = %q, пробелы должны обрезаться", sent.Name)
	}
	if sent.Gender != "MALE" || sent.Size != "EXTRA_LARGE" {
		t.Errorf("enum: gender=%q size=%q", sent.Gender, sent.Size)
	}
	if sent.OwnerID == nil || *sent.OwnerID != 5 {
		t.Errorf("OwnerID = %v, должен прийти из сессии", sent.OwnerID)
	}
	if f.Name != "" || f.CategoryID != nil {
		t.Error("форма должна очиститься после успеха")
	}
}

// Редактирование — PUT /animals/{id}.
func TestAnimalFormSubmitUpdate(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	f := newFormController(srv.URL)
	f.ID = int64Ptr(7)
	f.Name = "Рекс"
	f.CategoryID = int64Ptr(1)

	if err := f.Submit(context.Background(), testSession()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/animals/7" {
		t.Errorf("запрос = %s %s", gotMethod, gotPath)
	}
}

// Отказ бэкенда (409) оставляет поля формы нетронутыми,
// текст ошибки несёт статус.
func TestAnimalFormSubmitConflictKeepsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"duplicate"}`, http.StatusConflict)
	}))
	defer srv.Close()

	f := newFormController(srv.URL)
	f.Name = "Рекс"
	f.CategoryID = int64Ptr(1)
	f.ShortDescription = "дружелюбный"

	err := f.Submit(context.Background(), testSession())
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("ожидался ErrConflict, получено %v", err)
	}
	if f.Name != "Рекс" || f.CategoryID == nil || f.ShortDescription != "дружелюбный" {
		t.Error("поля формы при ошибке должны сохраняться")
	}
}

// LoadForEdit: бэкенд прислал только имена категории и породы —
// id разрешаются поиском по вариантам без учёта регистра.
func TestAnimalFormLoadForEditResolvesByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/animals/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"Рекс","category":"Собаки","breed":"Овчарка","birthday":"2024-03-15"}`))
		case r.URL.Path == "/categories":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Кошки"},{"id":2,"name":"собаки"}]`))
		case r.URL.Path == "/breeds":
			_, _ = w.Write([]byte(`[{"id":10,"name":"овчарка","categoryId":2}]`))
		default:
			t.Errorf("неожиданный запрос %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	f := newFormController(srv.URL)
	if err := f.LoadForEdit(context.Background(), testSession(), 7); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if f.CategoryID == nil || *f.CategoryID != 2 {
		t.Errorf("CategoryID = %v, ожидался 2 (поиск по имени)", f.CategoryID)
	}
	if f.BreedID == nil || *f.BreedID != 10 {
		t.Errorf("BreedID = %v, ожидался 10", f.BreedID)
	}
	if f.Birthday != "2024-03-15" {
		t.Errorf("Birthday = %q", f.Birthday)
	}
}

// Смена категории сбрасывает породу и перезагружает варианты.
func TestAnimalFormOnCategoryChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/breeds" || r.URL.Query().Get("categoryId") != "2" {
			t.Errorf("запрос = %s", r.URL.RequestURI())
		}
		_, _ = w.Write([]byte(`[{"id":20,"name":"Хаски","categoryId":2}]`))
	}))
	defer srv.Close()

	f := newFormController(srv.URL)
	f.CategoryID = int64Ptr(2)
	f.BreedID = int64Ptr(10)

	if err := f.OnCategoryChange(context.Background(), testSession()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if f.BreedID != nil {
		t.Error("порода должна сброситься")
	}
	if len(f.BreedOptions) != 1 || f.BreedOptions[0].Name != "Хаски" {
		t.Errorf("BreedOptions = %+v", f.BreedOptions)
	}
}

func TestNormalizeEnum(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"male", "MALE"},
		{"  female  ", "FEMALE"},
		{"extra large", "EXTRA_LARGE"},
		{"Extra  Large", "EXTRA_LARGE"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEnum(tt.in); got != tt.out {
			t.Errorf("NormalizeEnum(%q) = %q, ожидалось %q", tt.in, got, tt.out)
		}
	}
}

// decodeAnimalPart достаёт JSON-часть "animal" из multipart-запроса.
func decodeAnimalPart(t *testing.T, r *http.Request, dst *model.Animal) {
	t.Helper()
	body, _ := io.ReadAll(r.Body)
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("разбор Content-Type: %v", err)
	}
	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	part, err := reader.NextPart()
	if err != nil {
		t.Fatalf("чтение части: %v", err)
	}
	if err := json.NewDecoder(part).Decode(dst); err != nil {
		t.Fatalf("декодирование animal: %v", err)
	}
}
