// animals.go — страницы каталога, формы животного, карточки животного
// и списка «мои животные».
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

// FilterValues — текущее состояние фильтров для формы над таблицей.
type FilterValues struct {
	Query         string
	CategoryID    string
	Gender        string
	Size          string
	AgeGroup      string
	OnlyAvailable bool
}

// AnimalListData — данные страницы каталога.
type AnimalListData struct {
	Viewer     Viewer
	Filters    FilterValues
	Categories []model.Category
	Table      partials.AnimalTableData
	Messages   []Message
}

// AnimalList — страница каталога с фильтрами и таблицей.
func AnimalList(data AnimalListData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Каталог животных</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<form class="filters" method="get" action="/animals">`)
		p.Raw(`<label>Поиск<input name="q" value="`)
		p.Text(data.Filters.Query)
		p.Raw(`"></label>`)

		p.Raw(`<label>Категория<select name="categoryId"><option value="">Все</option>`)
		for _, c := range data.Categories {
			if c.ID == nil {
				continue
			}
			id := strconv.FormatInt(*c.ID, 10)
			p.Raw(`<option value="` + id + `"`)
			if data.Filters.CategoryID == id {
				p.Raw(` selected`)
			}
			p.Raw(`>`)
			p.Text(c.Name)
			p.Raw(`</option>`)
		}
		p.Raw(`</select></label>`)

		writeEnumSelect(p, "Пол", "gender", data.Filters.Gender,
			[]string{"", model.GenderMale, model.GenderFemale})
		writeEnumSelect(p, "Размер", "animalSize", data.Filters.Size,
			[]string{"", model.SizeSmall, model.SizeMedium, model.SizeLarge, model.SizeExtraLarge})
		writeEnumSelect(p, "Возраст", "ageGroup", data.Filters.AgeGroup,
			[]string{"", "BABY", "YOUNG", "ADULT", "SENIOR"})

		p.Raw(`<label>Только ищут дом<input type="checkbox" name="onlyAvailable" value="true"`)
		if data.Filters.OnlyAvailable {
			p.Raw(` checked`)
		}
		p.Raw(`></label>`)

		p.Raw(`<button type="submit">Применить</button>`)
		p.Raw(`<a class="btn btn-ghost" href="/animals?clear=true">Сбросить</a>`)
		p.Raw(`</form>`)

		if err := p.Err(); err != nil {
			return err
		}
		if err := partials.AnimalTable(data.Table).Render(ctx, w); err != nil {
			return err
		}
		return nil
	})
	return Layout("Каталог", data.Viewer, body)
}

// writeEnumSelect пишет select с фиксированным набором значений.
// Пустое значение отображается как «Любой».
func writeEnumSelect(p *render.Writer, label, name, current string, values []string) {
	p.Raw(`<label>`)
	p.Text(label)
	p.Raw(`<select name="` + name + `">`)
	for _, v := range values {
		p.Raw(`<option value="`)
		p.Text(v)
		p.Raw(`"`)
		if v == current {
			p.Raw(` selected`)
		}
		p.Raw(`>`)
		if v == "" {
			p.Raw(`Любой`)
		} else {
			p.Text(v)
		}
		p.Raw(`</option>`)
	}
	p.Raw(`</select></label>`)
}

// AnimalFormData — данные формы животного.
type AnimalFormData struct {
	Viewer Viewer
	// IsNew — создание (true) или редактирование (false).
	IsNew bool

	ID               string
	Name             string
	CategoryID       string
	BreedID          string
	Gender           string
	Birthday         string
	Size             string
	ShortDescription string
	LongDescription  string

	CategoryOptions []model.Category
	BreedOptions    []model.Breed
	Messages        []Message
}

// AnimalForm — страница создания/редактирования животного.
// Смена категории перезагружает страницу, чтобы обновить породы.
func AnimalForm(data AnimalFormData) templ.Component {
	title := "Новое животное"
	if !data.IsNew {
		title = "Редактирование животного"
	}

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>`)
		p.Text(title)
		p.Raw(`</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<form class="stack" method="post" action="/animals/save" enctype="multipart/form-data">`)
		p.Raw(`<input type="hidden" name="id" value="`)
		p.Text(data.ID)
		p.Raw(`">`)

		p.Raw(`<label>Имя<input name="name" required value="`)
		p.Text(data.Name)
		p.Raw(`"></label>`)

		p.Raw(`<label>Категория<select name="categoryId" onchange="this.form.action='/animals/category-change';this.form.submit()">`)
		p.Raw(`<option value="">—</option>`)
		for _, c := range data.CategoryOptions {
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

		p.Raw(`<label>Порода<select name="breedId"><option value="">—</option>`)
		for _, b := range data.BreedOptions {
			if b.ID == nil {
				continue
			}
			id := strconv.FormatInt(*b.ID, 10)
			p.Raw(`<option value="` + id + `"`)
			if data.BreedID == id {
				p.Raw(` selected`)
			}
			p.Raw(`>`)
			p.Text(b.Name)
			p.Raw(`</option>`)
		}
		p.Raw(`</select></label>`)

		writeEnumSelect(p, "Пол", "gender", data.Gender,
			[]string{"", model.GenderMale, model.GenderFemale})
		writeEnumSelect(p, "Размер", "size", data.Size,
			[]string{"", model.SizeSmall, model.SizeMedium, model.SizeLarge, model.SizeExtraLarge})

		p.Raw(`<label>Дата рождения<input type="date" name="birthday" value="`)
		p.Text(data.Birthday)
		p.Raw(`"></label>`)

		p.Raw(`<label>Краткое описание<input name="shortDescription" value="`)
		p.Text(data.ShortDescription)
		p.Raw(`"></label>`)

		p.Raw(`<label>Подробное описание<textarea name="longDescription" rows="5">`)
		p.Text(data.LongDescription)
		p.Raw(`</textarea></label>`)

		p.Raw(`<label>Фото<input type="file" name="image" accept="image/*"></label>`)

		p.Raw(`<button type="submit">Сохранить</button>`)
		p.Raw(`</form>`)
		return p.Err()
	})
	return Layout(title, data.Viewer, body)
}

// AnimalDetailData — данные карточки животного.
type AnimalDetailData struct {
	Viewer Viewer

	ID             int64
	Name           string
	Category       string
	Breed          string
	Gender         string
	Age            string
	Size           string
	Short          string
	Long           string
	Adopted        bool
	ImageURL       string
	OwnerName      string
	OwnerEmail     string
	OwnerPhone     string

	// IsOwner — карточку смотрит владелец животного.
	IsOwner bool
	// PendingCount — для владельца: сколько заявок ждёт решения.
	PendingCount int
	// ExistingRequest — для посетителя: его заявка на это животное, если есть.
	ExistingRequest *partials.RequestRow

	Messages []Message
}

// AnimalDetail — карточка животного с действиями по заявке.
func AnimalDetail(data AnimalDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)
		id := strconv.FormatInt(data.ID, 10)

		p.Raw(`<h1>`)
		p.Text(data.Name)
		p.Raw(`</h1>`)
		writeMessages(p, data.Messages)

		if data.ImageURL != "" {
			p.Raw(`<p><img class="photo" src="`)
			p.Text(data.ImageURL)
			p.Raw(`" alt="`)
			p.Text(data.Name)
			p.Raw(`"></p>`)
		}

		p.Raw(`<table class="list"><tbody>`)
		writeDetailRow(p, "Категория", data.Category)
		writeDetailRow(p, "Порода", data.Breed)
		writeDetailRow(p, "Пол", data.Gender)
		writeDetailRow(p, "Возраст", data.Age)
		writeDetailRow(p, "Размер", data.Size)
		writeDetailRow(p, "Описание", data.Short)
		p.Raw(`</tbody></table>`)

		if data.Long != "" {
			p.Raw(`<p>`)
			p.Text(data.Long)
			p.Raw(`</p>`)
		}

		if data.IsOwner {
			p.Raw(`<h2>Вы — владелец</h2>`)
			p.Rawf(`<p>Заявок в ожидании: <strong>%d</strong> `, data.PendingCount)
			p.Raw(`<a class="btn" href="/animals/` + id + `/requests">Заявки</a> `)
			p.Raw(`<a class="btn btn-ghost" href="/animals/` + id + `/edit">Редактировать</a></p>`)
			p.Raw(`<form method="post" action="/animals/` + id + `/delete" `)
			p.Raw(`onsubmit="return confirm('Удалить животное и все его заявки?')">`)
			p.Raw(`<button class="btn-danger" type="submit">Удалить животное</button></form>`)
		} else if data.Viewer.LoggedIn {
			if data.ExistingRequest != nil {
				req := data.ExistingRequest
				p.Raw(`<h2>Ваша заявка</h2><p>Статус: `)
				if err := p.Err(); err != nil {
					return err
				}
				if err := partials.StatusBadge(req.Status).Render(ctx, w); err != nil {
					return err
				}
				p.Raw(`</p>`)

				if req.Status == model.RequestStatusPending {
					reqID := strconv.FormatInt(req.ID, 10)
					p.Raw(`<form class="stack" method="post" action="/animals/` + id + `/request/note">`)
					p.Raw(`<input type="hidden" name="requestId" value="` + reqID + `">`)
					p.Raw(`<label>Заметка<textarea name="note" rows="3">`)
					p.Text(req.Note)
					p.Raw(`</textarea></label>`)
					p.Raw(`<button type="submit" hx-disabled-elt="this">Обновить заметку</button>`)
					p.Raw(`</form>`)
					p.Raw(`<form method="post" action="/animals/` + id + `/request/cancel">`)
					p.Raw(`<input type="hidden" name="requestId" value="` + reqID + `">`)
					p.Raw(`<button class="btn-danger" type="submit" hx-disabled-elt="this">Отменить заявку</button>`)
					p.Raw(`</form>`)
				}
			} else if !data.Adopted {
				p.Raw(`<h2>Хотите забрать домой?</h2>`)
				p.Raw(`<form class="stack" method="post" action="/animals/` + id + `/request">`)
				p.Raw(`<label>Заметка владельцу<textarea name="note" rows="3"></textarea></label>`)
				p.Raw(`<button type="submit" hx-disabled-elt="this">Отправить заявку</button>`)
				p.Raw(`</form>`)
			}
		} else if !data.Adopted {
			p.Raw(`<p class="muted"><a href="/login">Войдите</a>, чтобы отправить заявку на усыновление.</p>`)
		}

		return p.Err()
	})
	return Layout(data.Name, data.Viewer, body)
}

func writeDetailRow(p *render.Writer, name, value string) {
	if value == "" {
		return
	}
	p.Raw(`<tr><th>`)
	p.Text(name)
	p.Raw(`</th><td>`)
	p.Text(value)
	p.Raw(`</td></tr>`)
}

// MyAnimalRow — строка списка «мои животные».
type MyAnimalRow struct {
	ID           int64
	Name         string
	Category     string
	Adopted      bool
	PendingCount int
}

// MyAnimalsData — данные страницы «мои животные».
type MyAnimalsData struct {
	Viewer   Viewer
	Items    []MyAnimalRow
	Messages []Message
}

// MyAnimals — страница животных владельца со счётчиками заявок.
func MyAnimals(data MyAnimalsData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Мои животные</h1>`)
		writeMessages(p, data.Messages)
		p.Raw(`<p><a class="btn" href="/animals/new">Добавить животное</a></p>`)

		p.Raw(`<table class="list"><thead><tr><th>Имя</th><th>Категория</th><th>Статус</th><th>Заявки</th><th></th></tr></thead><tbody>`)
		if len(data.Items) == 0 {
			p.Raw(`<tr><td colspan="5" class="muted">У вас пока нет животных</td></tr>`)
		}
		for _, item := range data.Items {
			id := strconv.FormatInt(item.ID, 10)
			p.Raw(`<tr><td><a href="/animals/` + id + `">`)
			p.Text(item.Name)
			p.Raw(`</a></td><td>`)
			p.Text(item.Category)
			p.Raw(`</td><td>`)
			if item.Adopted {
				p.Raw(`<span class="badge">дома</span>`)
			} else {
				p.Raw(`<span class="badge badge-approved">ищет дом</span>`)
			}
			p.Raw(`</td><td>`)
			if item.PendingCount > 0 {
				p.Rawf(`<a href="/animals/%s/requests"><span class="badge badge-pending">%d в ожидании</span></a>`, id, item.PendingCount)
			} else {
				p.Raw(`<span class="muted">нет</span>`)
			}
			p.Raw(`</td><td><a class="btn btn-ghost" href="/animals/` + id + `/edit">Редактировать</a></td></tr>`)
		}
		p.Raw(`</tbody></table>`)
		return p.Err()
	})
	return Layout("Мои животные", data.Viewer, body)
}
