// auth.go — вход и регистрация через REST API Hometail.
// POST /auth/login {email, password} → {token, user},
// POST /auth/register {fullName, email, password, phoneNumber} → 200/201.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yonatanle/hometail-web/internal/apiclient"
	"github.com/yonatanle/hometail-web/internal/domain/model"
)

// AuthService — операции аутентификации.
type AuthService struct {
	client  *apiclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewAuthService создаёт AuthService.
// baseURL — базовый URL API без trailing slash (например, http://api:9090/api).
func NewAuthService(client *apiclient.Client, baseURL string, logger *slog.Logger) *AuthService {
	return &AuthService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "auth_service")),
	}
}

// loginResponse — ответ POST /auth/login.
type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login аутентифицирует пользователя и возвращает токен с профилем.
// 401/403 оборачиваются в ErrUnauthorized/ErrForbidden.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", nil, fmt.Errorf("сериализация credentials: %w", err)
	}

	_, respBody, err := s.client.Do(ctx, http.MethodPost, s.baseURL+"/auth/login",
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, "")
	if err != nil {
		return "", nil, classify(err)
	}

	var resp loginResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", nil, fmt.Errorf("декодирование ответа login: %w", err)
	}
	if resp.Token == "" {
		return "", nil, fmt.Errorf("ответ login без токена")
	}

	s.logger.Info("Пользователь вошёл в систему",
		slog.String("email", email),
	)
	return resp.Token, resp.User, nil
}

// RegisterRequest — данные формы регистрации в формате бэкенда.
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Register создаёт нового пользователя. Успех — 200 или 201.
// 409 (email занят) приходит как ErrConflict.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("сериализация регистрации: %w", err)
	}

	_, _, err = s.client.Do(ctx, http.MethodPost, s.baseURL+"/auth/register",
		&apiclient.Body{Kind: apiclient.ContentJSON, JSON: payload}, "")
	if err != nil {
		return classify(err)
	}

	s.logger.Info("Зарегистрирован новый пользователь",
		slog.String("email", req.Email),
	)
	return nil
}
