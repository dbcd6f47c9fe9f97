// workflow.go — контроллер заявок на животное владельца:
// одобрение и отклонение. Переход разрешён только из PENDING —
// проверяется локально до сетевого вызова; повторный перевод уже
// решённой заявки отвергает бэкенд, и эта ошибка доводится до
// пользователя, а не глотается.
package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yonatanle/hometail-web/internal/domain/model"
	"github.com/yonatanle/hometail-web/internal/service"
	"github.com/yonatanle/hometail-web/internal/ui/auth"
)

// RequestWorkflow — контроллер списка заявок на одно животное.
// Несёт одну-единственную «выбранную» заявку (single-slot marker);
// слот очищается после завершения или отмены действия.
type RequestWorkflow struct {
	requests *service.AdoptionRequestService
	logger   *slog.Logger

	// AnimalID — животное, чьи заявки показываются.
	AnimalID int64
	// Requests — загруженный список заявок.
	Requests []model.AdoptionRequest

	// selected — заявка, выбранная для действия. Не более одной.
	selected *model.AdoptionRequest
}

// NewRequestWorkflow создаёт контроллер заявок животного.
func NewRequestWorkflow(requests *service.AdoptionRequestService, animalID int64, logger *slog.Logger) *RequestWorkflow {
	return &RequestWorkflow{
		requests: requests,
		AnimalID: animalID,
		logger:   logger.With(slog.String("component", "ui.request_workflow")),
	}
}

// Load загружает заявки на животное. Список заменяется только целиком;
// при ошибке прежнее состояние сохраняется.
func (c *RequestWorkflow) Load(ctx context.Context, session *auth.SessionData) error {
	token, err := requireToken(session)
	if err != nil {
		return err
	}

	fetched, err := c.requests.ForAnimal(ctx, token, c.AnimalID)
	if err != nil {
		c.logger.Warn("Ошибка загрузки заявок на животное",
			slog.Int64("animal_id", c.AnimalID),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.Requests = fetched
	return nil
}

// Select помечает заявку из загруженного списка как выбранную.
func (c *RequestWorkflow) Select(id int64) error {
	for i := range c.Requests {
		if c.Requests[i].ID != nil && *c.Requests[i].ID == id {
			c.selected = &c.Requests[i]
			return nil
		}
	}
	return &ValidationError{Msg: fmt.Sprintf("заявка %d не найдена в списке", id)}
}

// Selected возвращает текущую выбранную заявку (nil — слот пуст).
func (c *RequestWorkflow) Selected() *model.AdoptionRequest {
	return c.selected
}

// Act переводит выбранную заявку в targetStatus (APPROVED или REJECTED).
// Локальные проверки до любого сетевого вызова: слот занят, целевой
// статус допустим, текущий статус — PENDING. На успехе список
// перезагружается и возвращается имя заявителя для сообщения.
// Слот выбора очищается при любом исходе.
func (c *RequestWorkflow) Act(ctx context.Context, session *auth.SessionData, targetStatus string) (string, error) {
	defer func() { c.selected = nil }()

	if c.selected == nil {
		return "", &ValidationError{Msg: "заявка не выбрана"}
	}
	if targetStatus != model.RequestStatusApproved && targetStatus != model.RequestStatusRejected {
		return "", &ValidationError{Msg: fmt.Sprintf("недопустимый целевой статус %q", targetStatus)}
	}
	if !c.selected.IsPending() {
		return "", &ValidationError{
			Msg: fmt.Sprintf("заявка уже в статусе %s, действие доступно только для PENDING", c.selected.Status),
		}
	}

	token, err := requireToken(session)
	if err != nil {
		return "", err
	}
	if c.selected.ID == nil {
		return "", &ValidationError{Msg: "у выбранной заявки нет id"}
	}

	requester := c.selected.RequesterName
	if err := c.requests.UpdateStatus(ctx, token, *c.selected.ID, targetStatus); err != nil {
		return "", err
	}

	if err := c.Load(ctx, session); err != nil {
		// Переход выполнен, не удалось лишь перечитать список
		c.logger.Warn("Ошибка перезагрузки заявок после перевода статуса",
			slog.String("error", err.Error()),
		)
	}

	return requester, nil
}
