// edit.go — контроллер формы животного (создание и редактирование).
// Держит поля формы, загружает запись для правки и отправляет
// JSON/multipart-пэйлоад. Выбор POST или PUT — по наличию id.
// При ошибке отправки поля формы остаются нетронутыми.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime/types"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

// AnimalForm — контроллер формы животного.
type AnimalForm struct {
	animals    *service.AnimalService
	categories *service.CategoryService
	breeds     *service.BreedService
	logger     *slog.Logger

	// --- Поля формы ---

	ID               *int64
	Name             string
	CategoryID       *int64
	BreedID          *int64
	Gender           string
	Birthday         string // yyyy-MM-dd, пустая строка — неизвестно
	Size             string
	ShortDescription string
	LongDescription  string
	// Image — загружаемое изображение (nil — без изменения картинки).
	Image *apiclient.FilePart

	// --- Варианты селектов ---

	CategoryOptions []model.Category
	BreedOptions    []model.Breed
}

// NewAnimalForm создаёт контроллер формы.
func NewAnimalForm(animals *service.AnimalService, categories *service.CategoryService, breeds *service.BreedService, logger *slog.Logger) *AnimalForm {
	return &AnimalForm{
		animals:    animals,
		categories: categories,
		breeds:     breeds,
		logger:     logger.With(slog.String("component", "ui.animal_form")),
	}
}

// LoadOptions загружает варианты категорий и, если категория выбрана, пород.
func (f *AnimalForm) LoadOptions(ctx context.Context, session *auth.SessionData) error {
	token := optionalToken(session)

	cats, err := f.categories.List(ctx, token, true)
	if err != nil {
		return err
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
	})
	f.CategoryOptions = cats

	if f.CategoryID != nil {
		breeds, err := f.breeds.List(ctx, token, f.CategoryID)
		if err != nil {
			return err
		}
		f.BreedOptions = breeds
	}
	return nil
}

// LoadForEdit загружает животное и заполняет поля формы.
// Если бэкенд прислал только имя категории/породы без id, id
// разрешается поиском по загруженным вариантам (fallback только
// при отсутствующем первичном id).
func (f *AnimalForm) LoadForEdit(ctx context.Context, session *auth.SessionData, id int64) error {
	token, err := requireToken(session)
	if err != nil {
		return err
	}

	animal, err := f.animals.Get(ctx, token, id)
	if err != nil {
		return err
	}

	f.ID = animal.ID
	f.Name = animal.Name
	f.CategoryID = animal.CategoryID
	f.BreedID = animal.BreedID
	f.Gender = animal.Gender
	f.Size = animal.Size
	f.ShortDescription = animal.ShortDescription
	f.LongDescription = animal.LongDescription
	if animal.Birthday != nil {
		f.Birthday = animal.Birthday.Format(types.DateFormat)
	}

	if err := f.LoadOptions(ctx, session); err != nil {
		return err
	}

	if f.CategoryID == nil {
		f.CategoryID = resolveCategoryID(f.CategoryOptions, animal.DisplayCategory())
		if f.CategoryID != nil {
			breeds, bErr := f.breeds.List(ctx, token, f.CategoryID)
			if bErr != nil {
				return bErr
			}
			f.BreedOptions = breeds
		}
	}

	if f.BreedID == nil {
		f.BreedID = resolveBreedID(f.BreedOptions, animal.DisplayBreed())
	}
	return nil
}

// OnCategoryChange сбрасывает выбранную породу и перезагружает
// варианты пород под новую категорию.
func (f *AnimalForm) OnCategoryChange(ctx context.Context, session *auth.SessionData) error {
	f.BreedID = nil
	f.BreedOptions = nil

	if f.CategoryID == nil {
		return nil
	}

	breeds, err := f.breeds.List(ctx, optionalToken(session), f.CategoryID)
	if err != nil {
		return err
	}
	f.BreedOptions = breeds
	return nil
}

// Submit валидирует форму и отправляет её на бэкенд.
// POST при отсутствии id (создание), PUT при наличии (обновление).
// На успехе форма очищается; на ошибке все поля остаются как были,
// текст ошибки передаётся вызывающему дословно.
func (f *AnimalForm) Submit(ctx context.Context, session *auth.SessionData) error {
	token, err := requireToken(session)
	if err != nil {
		return err
	}

	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Msg: "укажите имя животного"}
	}
	if f.CategoryID == nil {
		return &ValidationError{Msg: "выберите категорию"}
	}

	var birthday *types.Date
	if strings.TrimSpace(f.Birthday) != "" {
		parsed, pErr := time.Parse(types.DateFormat, strings.TrimSpace(f.Birthday))
		if pErr != nil {
			return &ValidationError{Msg: fmt.Sprintf("некорректная дата рождения %q, формат yyyy-MM-dd", f.Birthday)}
		}
		birthday = &types.Date{Time: parsed}
	}

	animal := &model.Animal{
		ID:               f.ID,
		Name:             strings.TrimSpace(f.Name),
		CategoryID:       f.CategoryID,
		BreedID:          f.BreedID,
		Gender:           NormalizeEnum(f.Gender),
		Size:             NormalizeEnum(f.Size),
		ShortDescription: strings.TrimSpace(f.ShortDescription),
		LongDescription:  strings.TrimSpace(f.LongDescription),
		Birthday:         birthday,
		OwnerID:          session.UserID,
	}

	if f.ID == nil {
		err = f.animals.Create(ctx, token, animal, f.Image)
	} else {
		err = f.animals.Update(ctx, token, animal, f.Image)
	}
	if err != nil {
		return err
	}

	f.clear()
	return nil
}

// clear сбрасывает поля формы после успешной отправки.
func (f *AnimalForm) clear() {
	f.ID = nil
	f.Name = ""
	f.CategoryID = nil
	f.BreedID = nil
	f.Gender = ""
	f.Birthday = ""
	f.Size = ""
	f.ShortDescription = ""
	f.LongDescription = ""
	f.Image = nil
}

// NormalizeEnum приводит введённое значение к канону бэкенда:
// обрезает пробелы по краям, внутренние пробелы заменяет на «_»,
// поднимает регистр. Защитное удобство клиента — валидирует бэкенд.
func NormalizeEnum(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), "_")
	return strings.ToUpper(s)
}

// resolveCategoryID ищет id категории по имени без учёта регистра.
func resolveCategoryID(options []model.Category, name string) *int64 {
	if name == "" {
		return nil
	}
	for i := range options {
		if strings.EqualFold(options[i].Name, name) {
			return options[i].ID
		}
	}
	return nil
}

// resolveBreedID ищет id породы по имени без учёта регистра.
func resolveBreedID(options []model.Breed, name string) *int64 {
	if name == "" {
		return nil
	}
	for i := range options {
		if strings.EqualFold(options[i].Name, name) {
			return options[i].ID
		}
	}
	return nil
}
