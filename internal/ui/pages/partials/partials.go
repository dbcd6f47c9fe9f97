// Пакет partials — HTML-фрагменты для частичных обновлений (HTMX)
// и переиспользуемые куски полных страниц.
// Компоненты написаны кодом (templ.ComponentFunc) — шаблонов нет,
// вся разметка собирается в Go.
package partials

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/yonatanle/hometail-web/internal/ui/render"
)

// Alert возвращает alert-блок. variant — "error" или "success".
func Alert(variant, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)
		class := "alert alert-error"
		if variant == "success" {
			class = "alert alert-success"
		}
		p.Rawf(`<div class="%s">`, class)
		p.Text(msg)
		p.Raw(`</div>`)
		return p.Err()
	})
}

// AnimalRow — строка таблицы каталога.
type AnimalRow struct {
	ID       int64
	Name     string
	Category string
	Breed    string
	Gender   string
	Age      string
	Size     string
	Adopted  bool
	ImageURL string
}

// AnimalTableData — данные таблицы каталога.
type AnimalTableData struct {
	Items []AnimalRow
	// SortKey/SortDir — текущая сортировка (для ссылок в заголовках).
	SortKey string
	SortDir string
	// FilterQuery — текущая query string фильтров без sort/order
	// (подмешивается в ссылки сортировки), начинается с "&" либо пустая.
	FilterQuery string
}

// AnimalTable рендерит тело таблицы каталога. Используется и в полной
// странице, и как HTMX-partial (GET /partials/animal-table).
func AnimalTable(data AnimalTableData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<table class="list" id="animal-table"><thead><tr>`)
		writeSortHeader(p, "Имя", "name", data)
		writeSortHeader(p, "Категория", "category", data)
		p.Raw(`<th>Порода</th><th>Пол</th>`)
		writeSortHeader(p, "Возраст", "age", data)
		p.Raw(`<th>Размер</th><th>Статус</th><th></th></tr></thead><tbody>`)

		if len(data.Items) == 0 {
			p.Raw(`<tr><td colspan="8" class="muted">Ничего не найдено</td></tr>`)
		}

		for _, item := range data.Items {
			p.Raw(`<tr><td>`)
			if item.ImageURL != "" {
				p.Raw(`<img class="thumb" src="`)
				p.Text(item.ImageURL)
				p.Raw(`" alt=""> `)
			}
			p.Text(item.Name)
			p.Raw(`</td><td>`)
			p.Text(item.Category)
			p.Raw(`</td><td>`)
			p.Text(item.Breed)
			p.Raw(`</td><td>`)
			p.Text(item.Gender)
			p.Raw(`</td><td>`)
			p.Text(item.Age)
			p.Raw(`</td><td>`)
			p.Text(item.Size)
			p.Raw(`</td><td>`)
			if item.Adopted {
				p.Raw(`<span class="badge">дома</span>`)
			} else {
				p.Raw(`<span class="badge badge-approved">ищет дом</span>`)
			}
			p.Raw(`</td><td><a class="btn btn-ghost" href="/animals/`)
			p.Raw(strconv.FormatInt(item.ID, 10))
			p.Raw(`">Карточка</a></td></tr>`)
		}

		p.Raw(`</tbody></table>`)
		return p.Err()
	})
}

// writeSortHeader пишет th-заголовок со ссылкой сортировки,
// переключающей направление при повторном клике.
func writeSortHeader(p *render.Writer, title, key string, data AnimalTableData) {
	dir := "asc"
	marker := ""
	if data.SortKey == key {
		if data.SortDir == "asc" {
			dir = "desc"
			marker = " ↑"
		} else {
			marker = " ↓"
		}
	}

	p.Raw(`<th><a href="/animals?sort=` + key + `&order=` + dir)
	p.Text(data.FilterQuery)
	p.Raw(`" hx-get="/partials/animal-table?sort=` + key + `&order=` + dir)
	p.Text(data.FilterQuery)
	p.Raw(`" hx-target="#animal-table" hx-swap="outerHTML">`)
	p.Text(title + marker)
	p.Raw(`</a></th>`)
}

// RequestRow — строка таблицы заявок.
type RequestRow struct {
	ID            int64
	AnimalID      int64
	AnimalName    string
	RequesterName string
	Note          string
	Status        string
	CreatedAt     string
}

// StatusBadge возвращает badge статуса заявки.
func StatusBadge(status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)
		class := "badge"
		switch status {
		case "PENDING":
			class = "badge badge-pending"
		case "APPROVED":
			class = "badge badge-approved"
		case "REJECTED":
			class = "badge badge-rejected"
		}
		p.Rawf(`<span class="%s">`, class)
		p.Text(status)
		p.Raw(`</span>`)
		return p.Err()
	})
}
