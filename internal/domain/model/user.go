// user.go — профиль пользователя из ответа аутентификации.
package model

// User — пользователь Hometail. Роль приходит от бэкенда строкой,
// возможно с префиксом ROLE_ (нормализация — на стороне сессии).
type User struct {
	ID          *int64 `json:"id,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
}
