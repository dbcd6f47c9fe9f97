// admin.go — админ-страницы справочников: категории и породы.
// Обе страницы устроены одинаково: таблица, инлайн-форма создания/правки,
// подтверждение удаления через confirm.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/ui/render"
)

// CategoryAdminData — данные страницы управления категориями.
type CategoryAdminData struct {
	Viewer Viewer
	Items  []model.Category

	// Поля формы (создание либо правка выбранной категории).
	EditID    string
	Name      string
	Active    bool
	SortOrder string

	Messages []Message
}

// CategoryAdmin — страница управления категориями.
func CategoryAdmin(data CategoryAdminData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Категории</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<table class="list"><thead><tr><th>Имя</th><th>Активна</th><th>Порядок</th><th></th></tr></thead><tbody>`)
		for _, c := range data.Items {
			if c.ID == nil {
				continue
			}
			id := strconv.FormatInt(*c.ID, 10)

			p.Raw(`<tr><td>`)
			p.Text(c.Name)
			p.Raw(`</td><td>`)
			writeActiveBadge(p, c.Active)
			p.Raw(`</td><td>`)
			if c.SortOrder != nil {
				p.Raw(strconv.Itoa(*c.SortOrder))
			}
			p.Raw(`</td><td>`)
			p.Raw(`<a class="btn btn-ghost" href="/admin/categories?edit=` + id + `">Изменить</a> `)
			p.Raw(`<form style="display:inline" method="post" action="/admin/categories/delete" `)
			p.Raw(`onsubmit="return confirm('Удалить категорию?')">`)
			p.Raw(`<input type="hidden" name="id" value="` + id + `">`)
			p.Raw(`<button class="btn-danger" type="submit">Удалить</button></form>`)
			p.Raw(`</td></tr>`)
		}
		p.Raw(`</tbody></table>`)

		formTitle := "Новая категория"
		if data.EditID != "" {
			formTitle = "Правка категории"
		}
		p.Raw(`<h2>`)
		p.Text(formTitle)
		p.Raw(`</h2>`)

		p.Raw(`<form class="stack" method="post" action="/admin/categories/save">`)
		p.Raw(`<input type="hidden" name="id" value="`)
		p.Text(data.EditID)
		p.Raw(`">`)
		p.Raw(`<label>Имя<input name="name" required value="`)
		p.Text(data.Name)
		p.Raw(`"></label>`)
		writeActiveCheckbox(p, data.Active)
		p.Raw(`<label>Порядок сортировки<input type="number" name="sortOrder" value="`)
		p.Text(data.SortOrder)
		p.Raw(`"></label>`)
		p.Raw(`<button type="submit">Сохранить</button>`)
		if data.EditID != "" {
			p.Raw(` <a class="btn btn-ghost" href="/admin/categories">Отмена</a>`)
		}
		p.Raw(`</form>`)
		return p.Err()
	})
	return Layout("Категории", data.Viewer, body)
}

// BreedAdminData — данные страницы управления породами.
type BreedAdminData struct {
	Viewer     Viewer
	Items      []model.Breed
	Categories []model.Category

	// FilterCategoryID — фильтр списка; подставляется в форму создания.
	FilterCategoryID string

	EditID     string
	Name       string
	CategoryID string
	Active     bool
	SortOrder  string

	Messages []Message
}

// BreedAdmin — страница управления породами.
func BreedAdmin(data BreedAdminData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Породы</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<form class="filters" method="get" action="/admin/breeds">`)
		p.Raw(`<label>Категория<select name="categoryId"><option value="">Все</option>`)
		for _, c := range data.Categories {
			if c.ID == nil {
				continue
			}
			id := strconv.FormatInt(*c.ID, 10)
			p.Raw(`<option value="` + id + `"`)
			if data.FilterCategoryID == id {
				p.Raw(` selected`)
			}
			p.Raw(`>`)
			p.Text(c.Name)
			p.Raw(`</option>`)
		}
		p.Raw(`</select></label>`)
		p.Raw(`<button type="submit">Показать</button>`)
		p.Raw(`</form>`)

		p.Raw(`<table class="list"><thead><tr><th>Имя</th><th>Категория</th><th>Активна</th><th></th></tr></thead><tbody>`)
		for _, b := range data.Items {
			if b.ID == nil {
				continue
			}
			id := strconv.FormatInt(*b.ID, 10)

			p.Raw(`<tr><td>`)
			p.Text(b.Name)
			p.Raw(`</td><td>`)
			p.Text(b.CategoryName)
			p.Raw(`</td><td>`)
			writeActiveBadge(p, b.Active)
			p.Raw(`</td><td>`)
			p.Raw(`<a class="btn btn-ghost" href="/admin/breeds?edit=` + id + `">Изменить</a> `)
			p.Raw(`<form style="display:inline" method="post" action="/admin/breeds/delete" `)
			p.Raw(`onsubmit="return confirm('Удалить породу?')">`)
			p.Raw(`<input type="hidden" name="id" value="` + id + `">`)
			p.Raw(`<button class="btn-danger" type="submit">Удалить</button></form>`)
			p.Raw(`</td></tr>`)
		}
		p.Raw(`</tbody></table>`)

		formTitle := "Новая порода"
		if data.EditID != "" {
			formTitle = "Правка породы"
		}
		p.Raw(`<h2>`)
		p.Text(formTitle)
		p.Raw(`</h2>`)

		p.Raw(`<form class="stack" method="post" action="/admin/breeds/save">`)
		p.Raw(`<input type="hidden" name="id" value="`)
		p.Text(data.EditID)
		p.Raw(`">`)
		p.Raw(`<label>Имя<input name="name" required value="`)
		p.Text(data.Name)
		p.Raw(`"></label>`)

		p.Raw(`<label>Категория<select name="categoryId" required><option value="">—</option>`)
		for _, c := range data.Categories {
			if c.ID == nil {
				continue
			}
			id := strconv.FormatInt(*c.ID, 10)
			p.Raw(`<option value="` + id + `"`)
			if data.CategoryID == id {
				p.Raw(` selected`)
			}
			p.Raw(`>`)
			p.Text(c.Name)
			p.Raw(`</option>`)
		}
		p.Raw(`</select></label>`)

		writeActiveCheckbox(p, data.Active)
		p.Raw(`<label>Порядок сортировки<input type="number" name="sortOrder" value="`)
		p.Text(data.SortOrder)
		p.Raw(`"></label>`)
		p.Raw(`<button type="submit">Сохранить</button>`)
		if data.EditID != "" {
			p.Raw(` <a class="btn btn-ghost" href="/admin/breeds">Отмена</a>`)
		}
		p.Raw(`</form>`)
		return p.Err()
	})
	return Layout("Породы", data.Viewer, body)
}

func writeActiveBadge(p *render.Writer, active bool) {
	if active {
		p.Raw(`<span class="badge badge-approved">да</span>`)
	} else {
		p.Raw(`<span class="badge">нет</span>`)
	}
}

func writeActiveCheckbox(p *render.Writer, active bool) {
	p.Raw(`<label>Активна<input type="checkbox" name="active" value="true"`)
	if active {
		p.Raw(` checked`)
	}
	p.Raw(`></label>`)
}
