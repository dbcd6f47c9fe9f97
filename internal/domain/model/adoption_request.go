// adoption_request.go — заявка на усыновление животного.
package model

// Статусы заявки. Жизненный цикл линейный:
// PENDING → APPROVED | REJECTED (оба терминальные);
// PENDING может быть отменена самим заявителем (удаление заявки).
// Переходы контролирует бэкенд, UI лишь не предлагает недопустимые действия.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// AdoptionRequest — заявка на усыновление.
type AdoptionRequest struct {
	ID            *int64 `json:"id,omitempty"`
	AnimalID      *int64 `json:"animalId,omitempty"`
	AnimalName    string `json:"animalName,omitempty"`
	RequesterID   *int64 `json:"requesterId,omitempty"`
	RequesterName string `json:"requesterName,omitempty"`
	Note          string `json:"note,omitempty"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// IsPending сообщает, находится ли заявка в нетерминальном состоянии.
func (r *AdoptionRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
