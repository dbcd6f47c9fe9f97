// admin.go — админ-страницы справочников: категории и породы.
// Доступ ограничен middleware RequireAdmin; фактические права
// всё равно проверяет бэкенд на /admin-эндпоинтах.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
)

// AdminCategoriesPage — GET /admin/categories. Параметр edit=id
// заполняет форму выбранной категорией.
func (h *Handlers) AdminCategoriesPage(w http.ResponseWriter, r *http.Request) {
	h.renderAdminCategories(w, r, flashMessages(r), nil)
}

// renderAdminCategories рендерит страницу категорий. form — поля формы
// после неудачного сохранения (nil — форма из edit-параметра либо пустая).
func (h *Handlers) renderAdminCategories(w http.ResponseWriter, r *http.Request, messages []pages.Message, form *pages.CategoryAdminData) {
	session := h.session(r)

	data := pages.CategoryAdminData{
		Viewer: viewerFrom(session),
		Active: true,
	}
	if form != nil {
		data = *form
		data.Viewer = viewerFrom(session)
	}
	data.Messages = messages

	items, err := h.categories.AdminList(r.Context(), sessionToken(session))
	if err != nil {
		data.Messages = append(data.Messages, pages.ErrorMessage(messageFor(err)))
		h.render(w, r, pages.CategoryAdmin(data))
		return
	}
	data.Items = items

	if form == nil {
		if editID := strings.TrimSpace(r.URL.Query().Get("edit")); editID != "" {
			for i := range items {
				c := &items[i]
				if c.ID != nil && strconv.FormatInt(*c.ID, 10) == editID {
					data.EditID = editID
					data.Name = c.Name
					data.Active = c.Active
					if c.SortOrder != nil {
						data.SortOrder = strconv.Itoa(*c.SortOrder)
					}
					break
				}
			}
		}
	}

	h.render(w, r, pages.CategoryAdmin(data))
}

// SaveAdminCategory — POST /admin/categories/save.
// Пустой id — создание, иначе обновление.
func (h *Handlers) SaveAdminCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	session := h.session(r)
	form := &pages.CategoryAdminData{
		EditID:    strings.TrimSpace(r.PostFormValue("id")),
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Active:    r.PostFormValue("active") == "true",
		SortOrder: strings.TrimSpace(r.PostFormValue("sortOrder")),
	}

	if form.Name == "" {
		h.renderAdminCategories(w, r, []pages.Message{pages.ErrorMessage("укажите имя категории")}, form)
		return
	}

	category := model.Category{
		ID:        optionalID(form.EditID),
		Name:      form.Name,
		Active:    form.Active,
		SortOrder: optionalInt(form.SortOrder),
	}

	var err error
	if category.ID == nil {
		err = h.categories.AdminCreate(r.Context(), sessionToken(session), category)
	} else {
		err = h.categories.AdminUpdate(r.Context(), sessionToken(session), category)
	}
	if err != nil {
		h.renderAdminCategories(w, r, errorMessages(err), form)
		return
	}

	redirectFlash(w, r, "/admin/categories", "категория сохранена")
}

// DeleteAdminCategory — POST /admin/categories/delete.
// Категорию с животными бэкенд отвергает 409.
func (h *Handlers) DeleteAdminCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	id, err := pathID(r.PostFormValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.categories.AdminDelete(r.Context(), sessionToken(h.session(r)), id); err != nil {
		h.renderAdminCategories(w, r, errorMessages(err), nil)
		return
	}

	redirectFlash(w, r, "/admin/categories", "категория удалена")
}

// AdminBreedsPage — GET /admin/breeds. Параметры: categoryId — фильтр
// списка, edit=id — заполнение формы.
func (h *Handlers) AdminBreedsPage(w http.ResponseWriter, r *http.Request) {
	h.renderAdminBreeds(w, r, flashMessages(r), nil)
}

func (h *Handlers) renderAdminBreeds(w http.ResponseWriter, r *http.Request, messages []pages.Message, form *pages.BreedAdminData) {
	session := h.session(r)

	data := pages.BreedAdminData{
		Viewer: viewerFrom(session),
		Active: true,
	}
	if form != nil {
		data = *form
		data.Viewer = viewerFrom(session)
	}
	data.Messages = messages
	if data.FilterCategoryID == "" {
		data.FilterCategoryID = strings.TrimSpace(r.URL.Query().Get("categoryId"))
	}

	categories, err := h.categories.AdminList(r.Context(), sessionToken(session))
	if err != nil {
		data.Messages = append(data.Messages, pages.ErrorMessage(messageFor(err)))
		h.render(w, r, pages.BreedAdmin(data))
		return
	}
	data.Categories = categories

	breeds, err := h.breeds.AdminList(r.Context(), sessionToken(session))
	if err != nil {
		data.Messages = append(data.Messages, pages.ErrorMessage(messageFor(err)))
		h.render(w, r, pages.BreedAdmin(data))
		return
	}
	data.Items = filterBreedsByCategory(breeds, data.FilterCategoryID)

	if form == nil {
		// Форма создания наследует текущий фильтр категории
		data.CategoryID = data.FilterCategoryID
		if editID := strings.TrimSpace(r.URL.Query().Get("edit")); editID != "" {
			for i := range breeds {
				b := &breeds[i]
				if b.ID != nil && strconv.FormatInt(*b.ID, 10) == editID {
					data.EditID = editID
					data.Name = b.Name
					data.Active = b.Active
					if b.CategoryID != nil {
						data.CategoryID = strconv.FormatInt(*b.CategoryID, 10)
					}
					if b.SortOrder != nil {
						data.SortOrder = strconv.Itoa(*b.SortOrder)
					}
					break
				}
			}
		}
	}

	h.render(w, r, pages.BreedAdmin(data))
}

// filterBreedsByCategory оставляет породы указанной категории
// (пустой фильтр — все).
func filterBreedsByCategory(breeds []model.Breed, categoryID string) []model.Breed {
	if categoryID == "" {
		return breeds
	}
	var filtered []model.Breed
	for i := range breeds {
		if breeds[i].CategoryID != nil && strconv.FormatInt(*breeds[i].CategoryID, 10) == categoryID {
			filtered = append(filtered, breeds[i])
		}
	}
	return filtered
}

// SaveAdminBreed — POST /admin/breeds/save.
func (h *Handlers) SaveAdminBreed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	session := h.session(r)
	form := &pages.BreedAdminData{
		EditID:     strings.TrimSpace(r.PostFormValue("id")),
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		CategoryID: strings.TrimSpace(r.PostFormValue("categoryId")),
		Active:     r.PostFormValue("active") == "true",
		SortOrder:  strings.TrimSpace(r.PostFormValue("sortOrder")),
	}

	if form.Name == "" {
		h.renderAdminBreeds(w, r, []pages.Message{pages.ErrorMessage("укажите имя породы")}, form)
		return
	}
	if form.CategoryID == "" {
		h.renderAdminBreeds(w, r, []pages.Message{pages.ErrorMessage("выберите категорию породы")}, form)
		return
	}

	breed := model.Breed{
		ID:         optionalID(form.EditID),
		Name:       form.Name,
		CategoryID: optionalID(form.CategoryID),
		Active:     form.Active,
		SortOrder:  optionalInt(form.SortOrder),
	}

	var err error
	if breed.ID == nil {
		err = h.breeds.AdminCreate(r.Context(), sessionToken(session), breed)
	} else {
		err = h.breeds.AdminUpdate(r.Context(), sessionToken(session), breed)
	}
	if err != nil {
		h.renderAdminBreeds(w, r, errorMessages(err), form)
		return
	}

	redirectFlash(w, r, "/admin/breeds", "порода сохранена")
}

// DeleteAdminBreed — POST /admin/breeds/delete.
func (h *Handlers) DeleteAdminBreed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	id, err := pathID(r.PostFormValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.breeds.AdminDelete(r.Context(), sessionToken(h.session(r)), id); err != nil {
		h.renderAdminBreeds(w, r, errorMessages(err), nil)
		return
	}

	redirectFlash(w, r, "/admin/breeds", "порода удалена")
}

// optionalInt парсит целое из поля формы; пустое или мусорное — nil.
func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
