// Пакет pages — полные HTML-страницы Hometail Web.
// Компоненты написаны кодом (templ.ComponentFunc); общая обвязка
// страницы — Layout с шапкой и навигацией по роли пользователя.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/yonatanle/hometail-web/internal/ui/render"
)

// Viewer — сведения о текущем пользователе для шапки страницы.
type Viewer struct {
	LoggedIn bool
	FullName string
	IsAdmin  bool
}

// Message — сообщение страницы (ошибка или подтверждение).
type Message struct {
	// Kind — "error" или "success".
	Kind string
	Text string
}

// ErrorMessage — сообщение об ошибке.
func ErrorMessage(text string) Message {
	return Message{Kind: "error", Text: text}
}

// SuccessMessage — подтверждение успешного действия.
func SuccessMessage(text string) Message {
	return Message{Kind: "success", Text: text}
}

// Layout оборачивает содержимое страницы в общий каркас:
// head со стилями и HTMX, шапка с навигацией, main.
func Layout(title string, viewer Viewer, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<!doctype html><html lang="ru"><head><meta charset="utf-8">`)
		p.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.Raw(`<title>`)
		p.Text(title)
		p.Raw(` — Hometail</title>`)
		p.Raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		p.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		p.Raw(`</head><body>`)

		p.Raw(`<header class="site"><a class="brand" href="/animals">Hometail</a>`)
		p.Raw(`<a href="/animals">Каталог</a>`)
		if viewer.LoggedIn {
			p.Raw(`<a href="/my-animals">Мои животные</a>`)
			p.Raw(`<a href="/my-requests">Мои заявки</a>`)
			p.Raw(`<a href="/animals/new">Добавить животное</a>`)
			if viewer.IsAdmin {
				p.Raw(`<a href="/admin/categories">Категории</a>`)
				p.Raw(`<a href="/admin/breeds">Породы</a>`)
			}
		}
		p.Raw(`<span class="spacer"></span>`)
		if viewer.LoggedIn {
			p.Raw(`<span>`)
			p.Text(viewer.FullName)
			p.Raw(`</span>`)
			p.Raw(`<form method="post" action="/logout" style="margin:0">`)
			p.Raw(`<button class="btn-ghost" type="submit">Выйти</button></form>`)
		} else {
			p.Raw(`<a href="/login">Войти</a><a href="/register">Регистрация</a>`)
		}
		p.Raw(`</header><main>`)

		if err := p.Err(); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}

		p.Raw(`</main></body></html>`)
		return p.Err()
	})
}

// writeMessages пишет сообщения страницы подряд.
func writeMessages(p *render.Writer, messages []Message) {
	for _, m := range messages {
		class := "alert alert-error"
		if m.Kind == "success" {
			class = "alert alert-success"
		}
		p.Rawf(`<div class="%s">`, class)
		p.Text(m.Text)
		p.Raw(`</div>`)
	}
}
