// animal_form.go — создание и редактирование животного.
// Одна форма на оба случая: POST или PUT выбирает контроллер по
// наличию id. Смена категории — отдельный submit, перезагружающий
// варианты пород с сохранением остальных полей.
package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
)

// NewAnimalPage — GET /animals/new.
func (h *Handlers) NewAnimalPage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	form := controller.NewAnimalForm(h.animals, h.categories, h.breeds, h.logger)

	var messages []pages.Message
	if err := form.LoadOptions(r.Context(), session); err != nil {
		messages = errorMessages(err)
	}

	h.render(w, r, pages.AnimalForm(h.formData(session, form, true, messages)))
}

// EditAnimalPage — GET /animals/{id}/edit.
func (h *Handlers) EditAnimalPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session := h.session(r)
	form := controller.NewAnimalForm(h.animals, h.categories, h.breeds, h.logger)

	if err := form.LoadForEdit(r.Context(), session, id); err != nil {
		h.render(w, r, pages.AnimalForm(pages.AnimalFormData{
			Viewer:   viewerFrom(session),
			IsNew:    false,
			Messages: errorMessages(err),
		}))
		return
	}

	h.render(w, r, pages.AnimalForm(h.formData(session, form, false, flashMessages(r))))
}

// SaveAnimal — POST /animals/save. Multipart: поля формы + фото.
// Успех уводит на «мои животные»; при ошибке форма рендерится заново
// с нетронутыми полями.
func (h *Handlers) SaveAnimal(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	form, err := h.formFromRequest(r)
	if err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	isNew := form.ID == nil
	if err := form.Submit(r.Context(), session); err != nil {
		if optErr := form.LoadOptions(r.Context(), session); optErr != nil {
			h.logger.Warn("Ошибка перезагрузки вариантов формы",
				slog.String("error", optErr.Error()),
			)
		}
		h.render(w, r, pages.AnimalForm(h.formData(session, form, isNew, errorMessages(err))))
		return
	}

	flash := "животное добавлено"
	if !isNew {
		flash = "изменения сохранены"
	}
	redirectFlash(w, r, "/my-animals", flash)
}

// AnimalCategoryChange — POST /animals/category-change.
// Перерисовывает форму с породами новой категории; порода сбрасывается.
func (h *Handlers) AnimalCategoryChange(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	form, err := h.formFromRequest(r)
	if err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	var messages []pages.Message
	if err := form.LoadOptions(r.Context(), session); err != nil {
		messages = append(messages, pages.ErrorMessage(messageFor(err)))
	}
	if err := form.OnCategoryChange(r.Context(), session); err != nil {
		messages = append(messages, pages.ErrorMessage(messageFor(err)))
	}

	h.render(w, r, pages.AnimalForm(h.formData(session, form, form.ID == nil, messages)))
}

// formFromRequest разбирает multipart-форму животного в контроллер.
// Файловая часть опциональна: без выбранного файла картинка не меняется.
func (h *Handlers) formFromRequest(r *http.Request) (*controller.AnimalForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}

	form := controller.NewAnimalForm(h.animals, h.categories, h.breeds, h.logger)
	form.Name = r.PostFormValue("name")
	form.Gender = r.PostFormValue("gender")
	form.Size = r.PostFormValue("size")
	form.Birthday = r.PostFormValue("birthday")
	form.ShortDescription = r.PostFormValue("shortDescription")
	form.LongDescription = r.PostFormValue("longDescription")
	form.ID = optionalID(r.PostFormValue("id"))
	form.CategoryID = optionalID(r.PostFormValue("categoryId"))
	form.BreedID = optionalID(r.PostFormValue("breedId"))

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return nil, readErr
		}
		if len(data) > 0 {
			form.Image = &apiclient.FilePart{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	}

	return form, nil
}

// formData собирает данные страницы формы из контроллера.
func (h *Handlers) formData(session *auth.SessionData, form *controller.AnimalForm, isNew bool, messages []pages.Message) pages.AnimalFormData {
	data := pages.AnimalFormData{
		Viewer:           viewerFrom(session),
		IsNew:            isNew,
		Name:             form.Name,
		Gender:           form.Gender,
		Birthday:         form.Birthday,
		Size:             form.Size,
		ShortDescription: form.ShortDescription,
		LongDescription:  form.LongDescription,
		CategoryOptions:  form.CategoryOptions,
		BreedOptions:     form.BreedOptions,
		Messages:         messages,
	}
	if form.ID != nil {
		data.ID = strconv.FormatInt(*form.ID, 10)
	}
	if form.CategoryID != nil {
		data.CategoryID = strconv.FormatInt(*form.CategoryID, 10)
	}
	if form.BreedID != nil {
		data.BreedID = strconv.FormatInt(*form.BreedID, 10)
	}
	return data
}

// optionalID парсит id из поля формы; пустое или мусорное значение — nil.
func optionalID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
