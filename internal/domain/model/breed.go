// breed.go — порода внутри категории.
package model

import "encoding/json"

// Breed — порода животного. Привязана к категории.
// Active по умолчанию true, как у Category.
type Breed struct {
	ID           *int64 `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	CategoryID   *int64 `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Active       bool   `json:"active"`
	SortOrder    *int   `json:"sortOrder,omitempty"`
}

// UnmarshalJSON декодирует породу, трактуя отсутствующее поле active как true.
func (b *Breed) UnmarshalJSON(data []byte) error {
	type alias Breed
	aux := struct {
		*alias
		Active *bool `json:"active"`
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Active = true
	if aux.Active != nil {
		b.Active = *aux.Active
	}
	return nil
}
