// Пакет auth — сессии пользователей Hometail Web.
// Сессия (токен бэкенда + профиль) хранится в зашифрованном cookie,
// AES-256-GCM. Logout — безусловная локальная инвалидация, без вызова API.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yonatanle/hometail-web/internal/domain/model"
)

// Имя cookie сессии.
const SessionCookieName = "hometail_session"

// Максимальный возраст cookie сессии (24 часа).
const SessionCookieMaxAge = 24 * 60 * 60

// SessionData — данные сессии, хранящиеся в зашифрованном cookie.
// Единственный владелец токена: контроллеры читают его, мутируют
// только login/logout.
type SessionData struct {
	// Token — bearer-токен бэкенда (для UI непрозрачен).
	Token string `json:"token"`
	// UserID — id пользователя на бэкенде.
	UserID *int64 `json:"user_id,omitempty"`
	// FullName — отображаемое имя.
	FullName string `json:"full_name,omitempty"`
	// Email — email пользователя.
	Email string `json:"email,omitempty"`
	// Role — роль как её прислал бэкенд (возможно с префиксом ROLE_).
	Role string `json:"role,omitempty"`
	// ExpiresAt — истечение токена (Unix). 0 — неизвестно.
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// NewSessionFromLogin собирает сессию из ответа login.
// Срок действия берётся из claim exp токена (подпись не проверяется —
// валидация токена целиком на бэкенде, здесь только UX-срок сессии);
// если exp извлечь не удалось — 24 часа от текущего момента.
func NewSessionFromLogin(token string, user *model.User) *SessionData {
	session := &SessionData{
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	}

	if user != nil {
		session.UserID = user.ID
		session.FullName = user.FullName
		session.Email = user.Email
		session.Role = user.Role
	}

	if claims := parseTokenClaims(token); claims != nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			session.ExpiresAt = exp.Unix()
		}
	}

	return session
}

// parseTokenClaims достаёт claims из JWT без проверки подписи.
// Не-JWT токен (или мусор) даёт nil — сессия живёт с дефолтным сроком.
func parseTokenClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// IsExpired проверяет срок действия токена с буфером 30 секунд.
func (s *SessionData) IsExpired() bool {
	return s.ExpiresAt != 0 && time.Now().Unix() >= s.ExpiresAt-30
}

// HasRole сообщает, есть ли у пользователя роль name.
// Сравнение без учёта регистра; значение с префиксом ROLE_ эквивалентно
// значению без префикса в обе стороны. Это удобство отображения —
// фактические права проверяет бэкенд.
func (s *SessionData) HasRole(name string) bool {
	if s == nil || s.Role == "" || name == "" {
		return false
	}
	return normalizeRole(s.Role) == normalizeRole(name)
}

// IsAdmin — у пользователя роль ADMIN.
func (s *SessionData) IsAdmin() bool {
	return s.HasRole("ADMIN")
}

// normalizeRole обрезает пробелы, приводит к верхнему регистру
// и убирает префикс ROLE_.
func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// SessionManager — шифрует/дешифрует SessionData в HTTP cookie
// через AES-256-GCM.
type SessionManager struct {
	gcm cipher.AEAD
	// secure — Secure flag cookie (true за HTTPS).
	secure bool
}

// NewSessionManager создаёт менеджер сессий.
// key — секрет для AES-256-GCM: base64 от 32 байт либо произвольная строка
// (хешируется SHA-256 до 32 байт). Пустой key — случайный ключ,
// сессии не переживают рестарт.
func NewSessionManager(key string, secure bool) (*SessionManager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("генерация ключа сессии: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("создание AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("создание GCM: %w", err)
	}

	return &SessionManager{gcm: gcm, secure: secure}, nil
}

// Encrypt шифрует SessionData в base64-строку.
func (sm *SessionManager) Encrypt(data *SessionData) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("сериализация сессии: %w", err)
	}

	// Уникальный nonce на каждое шифрование, prepended к ciphertext
	nonce := make([]byte, sm.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("генерация nonce: %w", err)
	}

	ciphertext := sm.gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку обратно в SessionData.
func (sm *SessionManager) Decrypt(encrypted string) (*SessionData, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("декодирование base64: %w", err)
	}

	nonceSize := sm.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := sm.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("дешифрование сессии: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("десериализация сессии: %w", err)
	}
	return &data, nil
}

// SetSessionCookie устанавливает зашифрованный session cookie.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, data *SessionData) error {
	encrypted, err := sm.Encrypt(data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encrypted,
		Path:     "/",
		MaxAge:   SessionCookieMaxAge,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetSessionFromRequest извлекает и дешифрует сессию из cookie запроса.
// Отсутствие cookie — nil, nil.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*SessionData, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}
	return sm.Decrypt(cookie.Value)
}

// ClearSessionCookie удаляет session cookie (logout).
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sha256Key хеширует строковый ключ в 32 байта.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
