// Пакет apiclient — универсальный HTTP-клиент к REST API Hometail.
// Единая точка для всех исходящих запросов UI: JSON и multipart тела,
// bearer-авторизация, ограниченные таймауты соединения и чтения,
// классификация ошибок (ConfigError / TransportError / APIError).
package apiclient

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ContentKind — вид тела запроса.
type ContentKind int

const (
	// ContentNone — запрос без тела (GET, DELETE).
	ContentNone ContentKind = iota
	// ContentJSON — тело application/json.
	ContentJSON
	// ContentMultipart — multipart/form-data: JSON-часть + опциональный файл.
	ContentMultipart
)

// Body — тело исходящего запроса.
type Body struct {
	Kind ContentKind
	// JSON — сериализованный JSON. Для ContentJSON — всё тело,
	// для ContentMultipart — содержимое JSON-части.
	JSON []byte
	// JSONPartName — имя JSON-части multipart (например, "animal").
	JSONPartName string
	// File — опциональная бинарная часть multipart.
	File *FilePart
}

// Client — HTTP-клиент к бэкенду Hometail.
// Не кэширует, не повторяет запросы; побочных эффектов кроме
// самого сетевого вызова не имеет.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент с ограниченными таймаутами.
// connectTimeout ограничивает установку TCP-соединения и TLS-handshake,
// readTimeout — весь запрос целиком (включая чтение тела ответа).
// Оба таймаута обязаны быть конечными: нулевые значения заменяются дефолтами.
func New(connectTimeout, readTimeout time.Duration, logger *slog.Logger) *Client {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: connectTimeout,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   readTimeout,
			Transport: transport,
		},
		logger: logger.With(slog.String("component", "api_client")),
	}
}

// Do выполняет запрос к rawURL и возвращает статус и тело ответа.
// token, если непустой после trim, уходит заголовком Authorization: Bearer.
// Статус в [200, 300) — успех, иначе *APIError с телом error-ответа.
func (c *Client) Do(ctx context.Context, method, rawURL string, body *Body, token string) (int, []byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, nil, &ConfigError{Reason: "разбор URL " + rawURL, Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return 0, nil, &ConfigError{Reason: "URL без http/https схемы: " + rawURL}
	}

	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		switch body.Kind {
		case ContentJSON:
			bodyReader = bytes.NewReader(body.JSON)
			contentType = "application/json"
		case ContentMultipart:
			encoded, boundary, mErr := encodeMultipart(body)
			if mErr != nil {
				return 0, nil, &ConfigError{Reason: "кодирование multipart", Err: mErr}
			}
			bodyReader = bytes.NewReader(encoded)
			contentType = "multipart/form-data; boundary=" + boundary
		case ContentNone:
			// без тела
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return 0, nil, &ConfigError{Reason: "создание запроса", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t := strings.TrimSpace(token); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Сетевая ошибка запроса к API",
			slog.String("method", method),
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: err}
	}

	c.logger.Debug("Запрос к API выполнен",
		slog.String("method", method),
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, respBody, &APIError{
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	return resp.StatusCode, respBody, nil
}
