// animal_detail.go — карточка животного и действия посетителя:
// отправка заявки, правка заметки, отмена заявки; для владельца —
// удаление животного.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yonatanle/hometail-web/internal/ui/auth"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
	"github.com/yonatanle/hometail-web/internal/ui/pages/partials"
)

// AnimalDetailPage — GET /animals/{id}. Карточка публичная; блок
// действий зависит от роли зрителя (владелец, посетитель, аноним).
func (h *Handlers) AnimalDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.renderDetail(w, r, id, flashMessages(r))
}

// renderDetail загружает карточку и рендерит её с переданными сообщениями.
func (h *Handlers) renderDetail(w http.ResponseWriter, r *http.Request, id int64, messages []pages.Message) {
	session := h.session(r)

	animal, err := h.animals.Get(r.Context(), sessionToken(session), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	animal.EnsureAgeDescription(time.Now())

	data := pages.AnimalDetailData{
		Viewer:     viewerFrom(session),
		ID:         id,
		Name:       animal.Name,
		Category:   animal.DisplayCategory(),
		Breed:      animal.DisplayBreed(),
		Gender:     animal.Gender,
		Age:        animal.AgeDescription,
		Size:       animal.Size,
		Short:      animal.ShortDescription,
		Long:       animal.LongDescription,
		Adopted:    animal.Adopted,
		ImageURL:   h.imageURL(animal.Image),
		OwnerName:  animal.OwnerName,
		OwnerEmail: animal.OwnerEmail,
		OwnerPhone: animal.OwnerPhone,
		Messages:   messages,
	}

	if session != nil && session.UserID != nil && animal.OwnerID != nil && *session.UserID == *animal.OwnerID {
		data.IsOwner = true
		count, cErr := h.requests.PendingCount(r.Context(), session.Token, id)
		if cErr != nil {
			h.logger.Warn("Ошибка загрузки счётчика заявок",
				slog.Int64("animal_id", id),
				slog.String("error", cErr.Error()),
			)
		}
		data.PendingCount = count
	} else if session != nil {
		data.ExistingRequest = h.findOwnRequest(r, session, id)
	}

	h.render(w, r, pages.AnimalDetail(data))
}

// findOwnRequest ищет заявку текущего пользователя на животное.
// Ошибка загрузки — карточка без блока заявки, в лог.
func (h *Handlers) findOwnRequest(r *http.Request, session *auth.SessionData, animalID int64) *partials.RequestRow {
	requests, err := h.requests.MyRequests(r.Context(), session.Token)
	if err != nil {
		h.logger.Warn("Ошибка загрузки своих заявок для карточки",
			slog.Int64("animal_id", animalID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	for i := range requests {
		req := &requests[i]
		if req.AnimalID == nil || *req.AnimalID != animalID || req.ID == nil {
			continue
		}
		return &partials.RequestRow{
			ID:         *req.ID,
			AnimalID:   animalID,
			AnimalName: req.AnimalName,
			Note:       req.Note,
			Status:     req.Status,
			CreatedAt:  req.CreatedAt,
		}
	}
	return nil
}

// DeleteAnimal — POST /animals/{id}/delete. Только владелец; чужого
// пользователя бэкенд отвергает 403.
func (h *Handlers) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		h.renderDetail(w, r, id, errorMessages(tErr))
		return
	}

	if err := h.animals.Delete(r.Context(), token, id); err != nil {
		h.renderDetail(w, r, id, errorMessages(err))
		return
	}

	redirectFlash(w, r, "/my-animals", "животное удалено")
}

// CreateAdoptionRequest — POST /animals/{id}/request.
// Дубликат (409) показывается как понятное сообщение.
func (h *Handlers) CreateAdoptionRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		h.renderDetail(w, r, id, errorMessages(tErr))
		return
	}

	if err := h.requests.Create(r.Context(), token, id, r.PostFormValue("note")); err != nil {
		h.renderDetail(w, r, id, errorMessages(err))
		return
	}

	redirectFlash(w, r, "/animals/"+strconv.FormatInt(id, 10), "заявка отправлена владельцу")
}

// UpdateRequestNote — POST /animals/{id}/request/note.
// Правка заметки доступна, пока заявка в PENDING.
func (h *Handlers) UpdateRequestNote(w http.ResponseWriter, r *http.Request) {
	animalID, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	requestID, err := pathID(r.PostFormValue("requestId"))
	if err != nil {
		h.renderDetail(w, r, animalID, errorMessages(&controller.ValidationError{Msg: "заявка не найдена"}))
		return
	}

	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		h.renderDetail(w, r, animalID, errorMessages(tErr))
		return
	}

	if err := h.requests.UpdateNote(r.Context(), token, requestID, r.PostFormValue("note")); err != nil {
		h.renderDetail(w, r, animalID, errorMessages(err))
		return
	}

	redirectFlash(w, r, "/animals/"+strconv.FormatInt(animalID, 10), "заметка обновлена")
}

// CancelAdoptionRequest — POST /animals/{id}/request/cancel.
func (h *Handlers) CancelAdoptionRequest(w http.ResponseWriter, r *http.Request) {
	animalID, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	requestID, err := pathID(r.PostFormValue("requestId"))
	if err != nil {
		h.renderDetail(w, r, animalID, errorMessages(&controller.ValidationError{Msg: "заявка не найдена"}))
		return
	}

	session := h.session(r)
	token, tErr := requireSessionToken(session)
	if tErr != nil {
		h.renderDetail(w, r, animalID, errorMessages(tErr))
		return
	}

	if err := h.requests.Delete(r.Context(), token, requestID); err != nil {
		h.renderDetail(w, r, animalID, errorMessages(err))
		return
	}

	redirectFlash(w, r, "/animals/"+strconv.FormatInt(animalID, 10), "заявка отменена")
}
