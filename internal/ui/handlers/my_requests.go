// my_requests.go — заявки текущего пользователя: список и отмена.
package handlers

import (
	"net/http"

	"github.com/yonatanle/hometail-web/internal/ui/pages"
	"github.com/yonatanle/hometail-web/internal/ui/pages/partials"
)

// MyRequestsPage — GET /my-requests.
func (h *Handlers) MyRequestsPage(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	requests, err := h.requests.MyRequests(r.Context(), token)
	if err != nil {
		h.render(w, r, pages.MyRequests(pages.MyRequestsData{
			Viewer:   viewerFrom(session),
			Messages: errorMessages(err),
		}))
		return
	}

	data := pages.MyRequestsData{
		Viewer:   viewerFrom(session),
		Messages: flashMessages(r),
	}
	for i := range requests {
		req := &requests[i]
		if req.ID == nil {
			continue
		}
		row := partials.RequestRow{
			ID:         *req.ID,
			AnimalName: req.AnimalName,
			Note:       req.Note,
			Status:     req.Status,
			CreatedAt:  req.CreatedAt,
		}
		if req.AnimalID != nil {
			row.AnimalID = *req.AnimalID
		}
		data.Items = append(data.Items, row)
	}

	h.render(w, r, pages.MyRequests(data))
}

// DeleteMyRequest — POST /my-requests/{id}/delete. Отмена своей заявки;
// чужую или уже решённую бэкенд отвергает, ошибка показывается как есть.
func (h *Handlers) DeleteMyRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.requests.Delete(r.Context(), token, id); err != nil {
		h.render(w, r, pages.MyRequests(pages.MyRequestsData{
			Viewer:   viewerFrom(session),
			Messages: errorMessages(err),
		}))
		return
	}

	redirectFlash(w, r, "/my-requests", "заявка отменена")
}
