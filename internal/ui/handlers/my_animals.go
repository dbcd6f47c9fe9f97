// my_animals.go — животные текущего владельца со счётчиками
// ожидающих заявок.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/yonatanle/hometail-web/internal/ui/pages"
)

// MyAnimalsPage — GET /my-animals.
// Счётчик заявок загружается на каждое животное; ошибка счётчика
// не валит страницу — показывается ноль.
func (h *Handlers) MyAnimalsPage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	if session == nil || session.UserID == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	animals, err := h.animals.ByOwner(r.Context(), session.Token, *session.UserID)
	if err != nil {
		h.render(w, r, pages.MyAnimals(pages.MyAnimalsData{
			Viewer:   viewerFrom(session),
			Messages: errorMessages(err),
		}))
		return
	}

	data := pages.MyAnimalsData{
		Viewer:   viewerFrom(session),
		Messages: flashMessages(r),
	}

	for i := range animals {
		a := &animals[i]
		if a.ID == nil {
			continue
		}

		count := 0
		if !a.Adopted {
			count, err = h.requests.PendingCount(r.Context(), session.Token, *a.ID)
			if err != nil {
				h.logger.Warn("Ошибка загрузки счётчика заявок",
					slog.Int64("animal_id", *a.ID),
					slog.String("error", err.Error()),
				)
				count = 0
			}
		}

		data.Items = append(data.Items, pages.MyAnimalRow{
			ID:           *a.ID,
			Name:         a.Name,
			Category:     a.DisplayCategory(),
			Adopted:      a.Adopted,
			PendingCount: count,
		})
	}

	h.render(w, r, pages.MyAnimals(data))
}
