// requests.go — страницы заявок: мои заявки и заявки на моё животное.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/ui/pages/partials"
	"github.com/yonatanle/hometail-web/internal/ui/render"
)

// MyRequestsData — данные страницы «мои заявки».
type MyRequestsData struct {
	Viewer   Viewer
	Items    []partials.RequestRow
	Messages []Message
}

// MyRequests — страница заявок текущего пользователя.
func MyRequests(data MyRequestsData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Мои заявки</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<table class="list"><thead><tr><th>Животное</th><th>Заметка</th><th>Статус</th><th>Подана</th><th></th></tr></thead><tbody>`)
		if len(data.Items) == 0 {
			p.Raw(`<tr><td colspan="5" class="muted">Заявок пока нет</td></tr>`)
		}
		for _, item := range data.Items {
			p.Raw(`<tr><td><a href="/animals/` + strconv.FormatInt(item.AnimalID, 10) + `">`)
			p.Text(item.AnimalName)
			p.Raw(`</a></td><td>`)
			p.Text(item.Note)
			p.Raw(`</td><td>`)
			if err := p.Err(); err != nil {
				return err
			}
			if err := partials.StatusBadge(item.Status).Render(ctx, w); err != nil {
				return err
			}
			p.Raw(`</td><td>`)
			p.Text(item.CreatedAt)
			p.Raw(`</td><td>`)
			if item.Status == model.RequestStatusPending {
				p.Raw(`<form method="post" action="/my-requests/` + strconv.FormatInt(item.ID, 10) + `/delete" `)
				p.Raw(`onsubmit="return confirm('Отменить заявку?')">`)
				p.Raw(`<button class="btn-danger" type="submit" hx-disabled-elt="this">Отменить</button></form>`)
			}
			p.Raw(`</td></tr>`)
		}
		p.Raw(`</tbody></table>`)
		return p.Err()
	})
	return Layout("Мои заявки", data.Viewer, body)
}

// RequestsForAnimalData — данные страницы заявок на животное владельца.
type RequestsForAnimalData struct {
	Viewer     Viewer
	AnimalID   int64
	AnimalName string
	Items      []partials.RequestRow
	Messages   []Message
}

// RequestsForAnimal — страница решений по заявкам: одобрить/отклонить.
// Кнопки действий показываются только для PENDING-заявок.
func RequestsForAnimal(data RequestsForAnimalData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)
		animalID := strconv.FormatInt(data.AnimalID, 10)

		p.Raw(`<h1>Заявки: `)
		p.Text(data.AnimalName)
		p.Raw(`</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<table class="list"><thead><tr><th>Кандидат</th><th>Заметка</th><th>Статус</th><th>Подана</th><th></th></tr></thead><tbody>`)
		if len(data.Items) == 0 {
			p.Raw(`<tr><td colspan="5" class="muted">Заявок на это животное нет</td></tr>`)
		}
		for _, item := range data.Items {
			reqID := strconv.FormatInt(item.ID, 10)

			p.Raw(`<tr><td>`)
			p.Text(item.RequesterName)
			p.Raw(`</td><td>`)
			p.Text(item.Note)
			p.Raw(`</td><td>`)
			if err := p.Err(); err != nil {
				return err
			}
			if err := partials.StatusBadge(item.Status).Render(ctx, w); err != nil {
				return err
			}
			p.Raw(`</td><td>`)
			p.Text(item.CreatedAt)
			p.Raw(`</td><td>`)

			if item.Status == model.RequestStatusPending {
				p.Raw(`<form style="display:inline" method="post" action="/animals/` + animalID + `/requests/` + reqID + `/approve">`)
				p.Raw(`<button type="submit" hx-disabled-elt="this">Одобрить</button></form> `)
				p.Raw(`<form style="display:inline" method="post" action="/animals/` + animalID + `/requests/` + reqID + `/reject">`)
				p.Raw(`<button class="btn-danger" type="submit" hx-disabled-elt="this">Отклонить</button></form>`)
			}
			p.Raw(`</td></tr>`)
		}
		p.Raw(`</tbody></table>`)

		p.Raw(`<p><a class="btn btn-ghost" href="/animals/` + animalID + `">К карточке животного</a></p>`)
		return p.Err()
	})
	return Layout("Заявки на животное", data.Viewer, body)
}
