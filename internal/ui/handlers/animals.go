// animals.go — каталог животных: полная страница и HTMX-partial таблицы.
// Состояние фильтров и сортировки живёт в query string; одно и то же
// состояние всегда даёт один и тот же запрос к бэкенду.
package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
	"github.com/yonatanle/hometail-web/internal/ui/pages/partials"
)

// AnimalsPage — GET /animals. clear=true сбрасывает фильтры и сортировку.
func (h *Handlers) AnimalsPage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	list := controller.NewAnimalList(h.animals, h.categories, h.logger)

	var messages []pages.Message

	if r.URL.Query().Get("clear") == "true" {
		if err := list.ClearFilters(r.Context(), session); err != nil {
			messages = append(messages, pages.ErrorMessage(messageFor(err)))
		}
	} else {
		list.Filters = parseFilters(r.URL.Query())
		list.SortKey = controller.ParseSortKey(r.URL.Query().Get("sort"))
		list.SortDir = controller.ParseSortDir(r.URL.Query().Get("order"))
		if err := list.Load(r.Context(), session); err != nil {
			messages = append(messages, pages.ErrorMessage(messageFor(err)))
		}
	}

	if err := list.LoadCategories(r.Context(), session); err != nil {
		messages = append(messages, pages.ErrorMessage("не удалось загрузить категории для фильтра"))
	}

	messages = append(messages, flashMessages(r)...)

	h.render(w, r, pages.AnimalList(pages.AnimalListData{
		Viewer:     viewerFrom(session),
		Filters:    filterValues(list.Filters),
		Categories: list.Categories,
		Table:      h.tableData(list),
		Messages:   messages,
	}))
}

// AnimalTablePartial — GET /partials/animal-table. Возвращает только
// таблицу для HTMX-подмены по клику на заголовок сортировки.
func (h *Handlers) AnimalTablePartial(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	list := controller.NewAnimalList(h.animals, h.categories, h.logger)

	list.Filters = parseFilters(r.URL.Query())
	list.SortKey = controller.ParseSortKey(r.URL.Query().Get("sort"))
	list.SortDir = controller.ParseSortDir(r.URL.Query().Get("order"))

	if err := list.Load(r.Context(), session); err != nil {
		h.render(w, r, partials.Alert("error", messageFor(err)))
		return
	}

	h.render(w, r, partials.AnimalTable(h.tableData(list)))
}

// parseFilters собирает фильтры листинга из query string.
func parseFilters(q url.Values) service.AnimalFilters {
	filters := service.AnimalFilters{
		Query:         strings.TrimSpace(q.Get("q")),
		Gender:        controller.NormalizeEnum(q.Get("gender")),
		Size:          controller.NormalizeEnum(q.Get("animalSize")),
		AgeGroup:      controller.NormalizeEnum(q.Get("ageGroup")),
		OnlyAvailable: q.Get("onlyAvailable") == "true",
	}

	if raw := strings.TrimSpace(q.Get("categoryId")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filters.CategoryID = &id
		}
	}
	return filters
}

// filterValues переводит фильтры в строковые значения формы.
func filterValues(f service.AnimalFilters) pages.FilterValues {
	values := pages.FilterValues{
		Query:         f.Query,
		Gender:        f.Gender,
		Size:          f.Size,
		AgeGroup:      f.AgeGroup,
		OnlyAvailable: f.OnlyAvailable,
	}
	if f.CategoryID != nil {
		values.CategoryID = strconv.FormatInt(*f.CategoryID, 10)
	}
	return values
}

// tableData собирает данные таблицы каталога из состояния контроллера.
func (h *Handlers) tableData(list *controller.AnimalList) partials.AnimalTableData {
	data := partials.AnimalTableData{
		SortKey: string(list.SortKey),
		SortDir: string(list.SortDir),
		// В ссылках сортировки фильтры идут после sort/order
		FilterQuery: strings.Replace(list.Filters.Encode(), "?", "&", 1),
	}

	for i := range list.Animals {
		a := &list.Animals[i]
		if a.ID == nil {
			continue
		}
		data.Items = append(data.Items, partials.AnimalRow{
			ID:       *a.ID,
			Name:     a.Name,
			Category: a.DisplayCategory(),
			Breed:    a.DisplayBreed(),
			Gender:   a.Gender,
			Age:      a.AgeDescription,
			Size:     a.Size,
			Adopted:  a.Adopted,
			ImageURL: h.imageURL(a.Image),
		})
	}
	return data
}
