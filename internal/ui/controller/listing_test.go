package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAPIClient() *apiclient.Client {
	return apiclient.New(2*time.Second, 5*time.Second, testLogger())
}

func int64Ptr(v int64) *int64 { return &v }

// newListController собирает контроллер листинга поверх httptest-сервера
// с фиксированным «текущим» временем для возраста.
func newListController(srvURL string) *AnimalList {
	animals := service.NewAnimalService(testAPIClient(), srvURL, testLogger())
	categories := service.NewCategoryService(testAPIClient(), srvURL, testLogger())
	c := NewAnimalList(animals, categories, testLogger())
	c.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}
	return c
}

// Успешная загрузка заменяет коллекцию целиком и дозаполняет возраст.
func TestAnimalListLoadReplacesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":2,"name":"Мурка","birthday":"2024-08-28"},
			{"id":1,"name":"Барсик"}
		]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(c.Animals) != 2 {
		t.Fatalf("животных = %d", len(c.Animals))
	}
	// Сортировка по имени asc
	if c.Animals[0].Name != "Барсик" || c.Animals[1].Name != "Мурка" {
		t.Errorf("порядок: %s, %s", c.Animals[0].Name, c.Animals[1].Name)
	}
	if c.Animals[1].AgeDescription != "2 years" {
		t.Errorf("AgeDescription = %q", c.Animals[1].AgeDescription)
	}
	if c.Animals[0].AgeDescription != "Unknown" {
		t.Errorf("AgeDescription без даты = %q", c.Animals[0].AgeDescription)
	}
}

// Ошибка загрузки сохраняет прежнюю коллекцию и возвращает ошибку —
// «пусто» и «не загрузилось» различимы.
func TestAnimalListLoadErrorKeepsOld(t *testing.T) {
	var fail bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Барсик"}]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatalf("первая загрузка: %v", err)
	}

	fail = true
	if err := c.Load(context.Background(), nil); err == nil {
		t.Fatal("ожидалась ошибка")
	}
	if len(c.Animals) != 1 || c.Animals[0].Name != "Барсик" {
		t.Errorf("прежняя коллекция должна сохраниться: %+v", c.Animals)
	}
}

// Сортировка по возрасту: неизвестная дата рождения в конце (asc),
// desc инвертирует, тай-брейк по имени не зависит от направления.
func TestAnimalListSortByAge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Старый","birthday":"2016-01-01"},
			{"id":2,"name":"Безвозраста"},
			{"id":3,"name":"Щенок","birthday":"2026-06-01"}
		]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	c.SortKey = SortByAge

	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatalf("загрузка: %v", err)
	}
	got := []string{c.Animals[0].Name, c.Animals[1].Name, c.Animals[2].Name}
	want := []string{"Щенок", "Старый", "Безвозраста"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asc порядок = %v, ожидалось %v", got, want)
		}
	}

	c.SortDir = SortDesc
	c.sortAnimals()
	got = []string{c.Animals[0].Name, c.Animals[1].Name, c.Animals[2].Name}
	want = []string{"Безвозраста", "Старый", "Щенок"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("desc порядок = %v, ожидалось %v", got, want)
		}
	}
}

// Сортировка по категории: без учёта регистра, пустые в конце.
func TestAnimalListSortByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"А","category":""},
			{"id":2,"name":"Б","categoryName":"собаки"},
			{"id":3,"name":"В","category":"Кошки"}
		]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	c.SortKey = SortByCategory
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatalf("загрузка: %v", err)
	}

	got := []string{c.Animals[0].Name, c.Animals[1].Name, c.Animals[2].Name}
	want := []string{"В", "Б", "А"} // Кошки, собаки, пустая категория
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("порядок = %v, ожидалось %v", got, want)
		}
	}
}

// Повторный сброс фильтров даёт в точности тот же запрос к бэкенду.
func TestAnimalListClearFiltersIdempotent(t *testing.T) {
	var uris []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uris = append(uris, r.URL.RequestURI())
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	c.Filters = service.AnimalFilters{Query: "рекс", CategoryID: int64Ptr(2), OnlyAvailable: true}
	c.SortKey = SortByAge
	c.SortDir = SortDesc

	if err := c.ClearFilters(context.Background(), nil); err != nil {
		t.Fatalf("первый сброс: %v", err)
	}
	if err := c.ClearFilters(context.Background(), nil); err != nil {
		t.Fatalf("второй сброс: %v", err)
	}

	if len(uris) != 2 {
		t.Fatalf("запросов = %d", len(uris))
	}
	if uris[0] != uris[1] {
		t.Errorf("запросы различаются: %q vs %q", uris[0], uris[1])
	}
	if uris[0] != "/animals" {
		t.Errorf("сброшенный запрос = %q, ожидался /animals", uris[0])
	}
	if c.SortKey != SortByName || c.SortDir != SortAsc {
		t.Errorf("сортировка после сброса: %s %s", c.SortKey, c.SortDir)
	}
}

// Категории фильтра сортируются по имени без учёта регистра.
func TestAnimalListLoadCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RequestURI() != "/categories?active=true" {
			t.Errorf("URI = %q", r.URL.RequestURI())
		}
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"собаки"},
			{"id":2,"name":"Кошки"},
			{"id":3,"name":"Птицы"}
		]`))
	}))
	defer srv.Close()

	c := newListController(srv.URL)
	if err := c.LoadCategories(context.Background(), nil); err != nil {
		t.Fatalf("загрузка категорий: %v", err)
	}

	got := []string{c.Categories[0].Name, c.Categories[1].Name, c.Categories[2].Name}
	want := []string{"Кошки", "Птицы", "собаки"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("порядок категорий = %v, ожидалось %v", got, want)
		}
	}
}

func TestParseSortKeyAndDir(t *testing.T) {
	if ParseSortKey("category") != SortByCategory || ParseSortKey("age") != SortByAge {
		t.Error("известные ключи должны распознаваться")
	}
	if ParseSortKey("мусор") != SortByName || ParseSortKey("") != SortByName {
		t.Error("неизвестный ключ — дефолт name")
	}
	if ParseSortDir("desc") != SortDesc {
		t.Error("desc должен распознаваться")
	}
	if ParseSortDir("вверх") != SortAsc || ParseSortDir("") != SortAsc {
		t.Error("неизвестное направление — дефолт asc")
	}
}
