// listing.go — контроллер страницы каталога животных.
// Держит состояние фильтров и сортировки, загружает коллекцию через
// сервисный слой и сортирует её локально. Коллекция заменяется только
// целиком: при ошибке загрузки прежний список остаётся нетронутым.
package controller

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

// Ключи сортировки каталога.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByAge      SortKey = "age"
)

// Направления сортировки.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortKey валидирует ключ сортировки, дефолт — name.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByName, SortByCategory, SortByAge:
		return SortKey(s)
	default:
		return SortByName
	}
}

// ParseSortDir валидирует направление сортировки, дефолт — asc.
func ParseSortDir(s string) SortDir {
	if SortDir(s) == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// AnimalList — контроллер листинга. Живёт в пределах одного запроса;
// состояние фильтров приходит из query string и возвращается в разметку.
type AnimalList struct {
	animals    *service.AnimalService
	categories *service.CategoryService
	logger     *slog.Logger

	// Filters — текущее состояние фильтров.
	Filters service.AnimalFilters
	// SortKey/SortDir — текущая сортировка.
	SortKey SortKey
	SortDir SortDir

	// Animals — загруженная коллекция (целиком заменяется при успехе Load).
	Animals []model.Animal
	// Categories — варианты категорий для селекта фильтра.
	Categories []model.Category

	// now — источник времени для вычисления возраста (подменяется в тестах).
	now func() time.Time
}

// NewAnimalList создаёт контроллер листинга с дефолтным состоянием.
func NewAnimalList(animals *service.AnimalService, categories *service.CategoryService, logger *slog.Logger) *AnimalList {
	return &AnimalList{
		animals:    animals,
		categories: categories,
		logger:     logger.With(slog.String("component", "ui.animal_list")),
		SortKey:    SortByName,
		SortDir:    SortAsc,
		now:        time.Now,
	}
}

// Load загружает коллекцию по текущим фильтрам. На успехе коллекция
// заменяется целиком, дозаполняются описания возраста и применяется
// локальная сортировка. На ошибке прежняя коллекция сохраняется,
// ошибка возвращается вызывающему («пусто» и «не загрузилось» различимы).
func (c *AnimalList) Load(ctx context.Context, session *auth.SessionData) error {
	fetched, err := c.animals.List(ctx, optionalToken(session), c.Filters)
	if err != nil {
		c.logger.Warn("Ошибка загрузки каталога",
			slog.String("error", err.Error()),
		)
		return err
	}

	now := c.now()
	for i := range fetched {
		fetched[i].EnsureAgeDescription(now)
	}

	c.Animals = fetched
	c.sortAnimals()
	return nil
}

// ApplyFilters повторяет загрузку с текущим состоянием фильтров.
func (c *AnimalList) ApplyFilters(ctx context.Context, session *auth.SessionData) error {
	return c.Load(ctx, session)
}

// ClearFilters сбрасывает фильтры и сортировку к дефолту и перезагружает
// коллекцию. Повторный вызов даёт в точности тот же запрос.
func (c *AnimalList) ClearFilters(ctx context.Context, session *auth.SessionData) error {
	c.Filters = service.AnimalFilters{}
	c.SortKey = SortByName
	c.SortDir = SortAsc
	return c.Load(ctx, session)
}

// LoadCategories загружает активные категории для селекта фильтра
// и сортирует их по имени без учёта регистра. На ошибке прежний
// список вариантов сохраняется.
func (c *AnimalList) LoadCategories(ctx context.Context, session *auth.SessionData) error {
	fetched, err := c.categories.List(ctx, optionalToken(session), true)
	if err != nil {
		c.logger.Warn("Ошибка загрузки категорий",
			slog.String("error", err.Error()),
		)
		return err
	}

	sort.SliceStable(fetched, func(i, j int) bool {
		return strings.ToLower(fetched[i].Name) < strings.ToLower(fetched[j].Name)
	})
	c.Categories = fetched
	return nil
}

// sortAnimals сортирует коллекцию локально.
// Базовый (asc) компаратор: строки — без учёта регистра, пустые в конце;
// возраст — по AgeInDays, неизвестная дата рождения в конце.
// Направление desc инвертирует базовый компаратор.
// Тай-брейк: имя без учёта регистра, затем id.
func (c *AnimalList) sortAnimals() {
	now := c.now()

	base := func(a, b *model.Animal) int {
		switch c.SortKey {
		case SortByCategory:
			return compareStringsNullsLast(a.DisplayCategory(), b.DisplayCategory())
		case SortByAge:
			ai, bi := a.AgeInDays(now), b.AgeInDays(now)
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		default:
			return compareStringsNullsLast(a.Name, b.Name)
		}
	}

	sort.SliceStable(c.Animals, func(i, j int) bool {
		a, b := &c.Animals[i], &c.Animals[j]

		cmp := base(a, b)
		if c.SortDir == SortDesc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}

		// Тай-брейк не зависит от направления
		if nameCmp := compareStringsNullsLast(a.Name, b.Name); nameCmp != 0 {
			return nameCmp < 0
		}
		return derefID(a.ID) < derefID(b.ID)
	})
}

// compareStringsNullsLast сравнивает строки без учёта регистра,
// пустые значения уходят в конец.
func compareStringsNullsLast(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
