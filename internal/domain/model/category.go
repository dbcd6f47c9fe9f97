// category.go — категория животных (кошки, собаки, ...).
package model

import "encoding/json"

// Category — категория животных.
// Active по контракту бэкенда по умолчанию true: отсутствие поля
// в ответе означает активную категорию, поэтому нужен свой UnmarshalJSON.
type Category struct {
	ID        *int64 `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Active    bool   `json:"active"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// UnmarshalJSON декодирует категорию, трактуя отсутствующее поле
// active как true.
func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	aux := struct {
		*alias
		Active *bool `json:"active"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.Active = true
	if aux.Active != nil {
		c.Active = *aux.Active
	}
	return nil
}
