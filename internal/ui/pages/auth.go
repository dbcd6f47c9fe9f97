// auth.go — страницы входа и регистрации.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/yonatanle/hometail-web/internal/ui/render"
)

// LoginData — данные страницы входа.
type LoginData struct {
	Viewer Viewer
	// Email — введённый email (возвращается в форму при ошибке).
	Email string
	// Next — адрес возврата после входа.
	Next     string
	Messages []Message
}

// Login — страница входа.
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Вход</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<form class="stack" method="post" action="/login">`)
		p.Raw(`<input type="hidden" name="next" value="`)
		p.Text(data.Next)
		p.Raw(`">`)
		p.Raw(`<label>Email<input type="email" name="email" required value="`)
		p.Text(data.Email)
		p.Raw(`"></label>`)
		p.Raw(`<label>Пароль<input type="password" name="password" required></label>`)
		p.Raw(`<button type="submit">Войти</button>`)
		p.Raw(`</form>`)
		p.Raw(`<p class="muted">Нет аккаунта? <a href="/register">Зарегистрируйтесь</a></p>`)
		return p.Err()
	})
	return Layout("Вход", data.Viewer, body)
}

// RegisterData — данные страницы регистрации.
type RegisterData struct {
	Viewer      Viewer
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Messages    []Message
}

// Register — страница регистрации.
func Register(data RegisterData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := render.New(w)

		p.Raw(`<h1>Регистрация</h1>`)
		writeMessages(p, data.Messages)

		p.Raw(`<form class="stack" method="post" action="/register">`)
		p.Raw(`<label>Имя<input name="firstName" required value="`)
		p.Text(data.FirstName)
		p.Raw(`"></label>`)
		p.Raw(`<label>Фамилия<input name="lastName" required value="`)
		p.Text(data.LastName)
		p.Raw(`"></label>`)
		p.Raw(`<label>Email<input type="email" name="email" required value="`)
		p.Text(data.Email)
		p.Raw(`"></label>`)
		p.Raw(`<label>Телефон<input name="phoneNumber" value="`)
		p.Text(data.PhoneNumber)
		p.Raw(`"></label>`)
		p.Raw(`<label>Пароль<input type="password" name="password" required></label>`)
		p.Raw(`<label>Пароль ещё раз<input type="password" name="confirmPassword" required></label>`)
		p.Raw(`<button type="submit">Создать аккаунт</button>`)
		p.Raw(`</form>`)
		return p.Err()
	})
	return Layout("Регистрация", data.Viewer, body)
}
