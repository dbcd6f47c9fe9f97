// multipart.go — кодирование multipart/form-data тела.
// Формат, который ожидает бэкенд при сохранении животного:
// JSON-часть с данными + опциональная бинарная часть с изображением.
package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/google/uuid"
)

// Фолбэки для файловой части: бэкенд требует имя файла и content type,
// даже если браузер их не передал.
const (
	fallbackFilename    = "upload.bin"
	fallbackContentType = "application/octet-stream"
)

// FilePart — бинарная часть multipart-запроса (загружаемый файл).
type FilePart struct {
	// FieldName — имя части в Content-Disposition (например, "image").
	FieldName string
	// Filename — оригинальное имя файла (пустое — fallbackFilename).
	Filename string
	// ContentType — заявленный content type (пустой — fallbackContentType).
	ContentType string
	// Data — содержимое файла.
	Data []byte
}

// encodeMultipart сериализует body в multipart/form-data.
// Boundary уникален для каждого запроса (uuid). Пишется JSON-часть,
// затем, если файл задан и непуст, — бинарная часть, затем закрывающий
// маркер boundary. Возвращает закодированное тело и boundary.
func encodeMultipart(body *Body) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	boundary := "hometail-" + uuid.NewString()
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("установка boundary: %w", err)
	}

	jsonName := body.JSONPartName
	if jsonName == "" {
		return nil, "", fmt.Errorf("не задано имя JSON-части")
	}

	// JSON-часть
	jsonHeader := textproto.MIMEHeader{}
	jsonHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, jsonName))
	jsonHeader.Set("Content-Type", "application/json")
	jsonPart, err := w.CreatePart(jsonHeader)
	if err != nil {
		return nil, "", fmt.Errorf("создание JSON-части: %w", err)
	}
	if _, err := jsonPart.Write(body.JSON); err != nil {
		return nil, "", fmt.Errorf("запись JSON-части: %w", err)
	}

	// Бинарная часть — только если файл задан и непуст
	if body.File != nil && len(body.File.Data) > 0 {
		filename := body.File.Filename
		if filename == "" {
			filename = fallbackFilename
		}
		contentType := body.File.ContentType
		if contentType == "" {
			contentType = fallbackContentType
		}

		fileHeader := textproto.MIMEHeader{}
		fileHeader.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, body.File.FieldName, filename))
		fileHeader.Set("Content-Type", contentType)

		filePart, err := w.CreatePart(fileHeader)
		if err != nil {
			return nil, "", fmt.Errorf("создание файловой части: %w", err)
		}
		if _, err := filePart.Write(body.File.Data); err != nil {
			return nil, "", fmt.Errorf("запись файловой части: %w", err)
		}
	}

	// Закрывающий boundary-маркер
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("завершение multipart: %w", err)
	}

	return buf.Bytes(), boundary, nil
}
