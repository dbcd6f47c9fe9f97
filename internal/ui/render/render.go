// Пакет render — помощник для компонентов, написанных кодом
// (templ.ComponentFunc): пишущая обёртка с «липкой» первой ошибкой
// и экранированием текста.
package render

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer накапливает HTML-вывод компонента. Первая ошибка записи
// запоминается, последующие вызовы становятся no-op.
type Writer struct {
	w   io.Writer
	err error
}

// New создаёт Writer поверх io.Writer.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw пишет строку как есть (доверенная разметка).
func (p *Writer) Raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Rawf пишет форматированную доверенную разметку.
// Значения пользовательских данных в неё не подставлять — для них Text.
func (p *Writer) Rawf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Text пишет экранированный текст (безопасно для пользовательских данных
// в содержимом элементов и значениях атрибутов в кавычках).
func (p *Writer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Err возвращает первую ошибку записи.
func (p *Writer) Err() error {
	return p.err
}
