// requests_for_animal.go — решения владельца по заявкам на его животное:
// список, одобрение, отклонение. Переходы статусов идут через
// RequestWorkflow — недопустимое действие блокируется локально,
// до сетевого вызова.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/ui/controller"
	"github.com/yonatanle/hometail-web/internal/ui/pages"
	"github.com/yonatanle/hometail-web/internal/ui/pages/partials"
)

// RequestsForAnimalPage — GET /animals/{id}/requests.
func (h *Handlers) RequestsForAnimalPage(w http.ResponseWriter, r *http.Request) {
	animalID, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.renderRequestsForAnimal(w, r, animalID, flashMessages(r))
}

func (h *Handlers) renderRequestsForAnimal(w http.ResponseWriter, r *http.Request, animalID int64, messages []pages.Message) {
	session := h.session(r)

	workflow := controller.NewRequestWorkflow(h.requests, animalID, h.logger)
	if err := workflow.Load(r.Context(), session); err != nil {
		messages = append(messages, pages.ErrorMessage(messageFor(err)))
	}

	data := pages.RequestsForAnimalData{
		Viewer:   viewerFrom(session),
		AnimalID: animalID,
		Messages: messages,
	}

	if animal, aErr := h.animals.Get(r.Context(), sessionToken(session), animalID); aErr == nil {
		data.AnimalName = animal.Name
	}

	for i := range workflow.Requests {
		req := &workflow.Requests[i]
		if req.ID == nil {
			continue
		}
		data.Items = append(data.Items, partials.RequestRow{
			ID:            *req.ID,
			AnimalID:      animalID,
			RequesterName: req.RequesterName,
			Note:          req.Note,
			Status:        req.Status,
			CreatedAt:     req.CreatedAt,
		})
	}

	h.render(w, r, pages.RequestsForAnimal(data))
}

// ApproveRequest — POST /animals/{id}/requests/{requestId}/approve.
func (h *Handlers) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.actOnRequest(w, r, model.RequestStatusApproved)
}

// RejectRequest — POST /animals/{id}/requests/{requestId}/reject.
func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.actOnRequest(w, r, model.RequestStatusRejected)
}

// actOnRequest выполняет перевод статуса через workflow-контроллер:
// загрузка актуального списка, выбор заявки, действие.
func (h *Handlers) actOnRequest(w http.ResponseWriter, r *http.Request, targetStatus string) {
	animalID, err := pathID(pathValue(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	requestID, err := pathID(pathValue(r, "requestId"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session := h.session(r)
	workflow := controller.NewRequestWorkflow(h.requests, animalID, h.logger)

	if err := workflow.Load(r.Context(), session); err != nil {
		h.renderRequestsForAnimal(w, r, animalID, errorMessages(err))
		return
	}
	if err := workflow.Select(requestID); err != nil {
		h.renderRequestsForAnimal(w, r, animalID, errorMessages(err))
		return
	}

	requester, err := workflow.Act(r.Context(), session, targetStatus)
	if err != nil {
		h.renderRequestsForAnimal(w, r, animalID, errorMessages(err))
		return
	}

	flash := fmt.Sprintf("заявка пользователя %s одобрена", requester)
	if targetStatus == model.RequestStatusRejected {
		flash = fmt.Sprintf("заявка пользователя %s отклонена", requester)
	}
	redirectFlash(w, r, "/animals/"+strconv.FormatInt(animalID, 10)+"/requests", flash)
}
