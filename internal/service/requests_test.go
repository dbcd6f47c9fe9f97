package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Счётчик ожидающих заявок приходит голым целым числом в теле.
func TestPendingCountBareInteger(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(" 4\n"))
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	count, err := svc.PendingCount(context.Background(), "tok", 12)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, ожидалось 4", count)
	}
	if gotPath != "/adoption-requests/animal/12/pending/count" {
		t.Errorf("path = %q", gotPath)
	}
}

// Мусор вместо числа — ошибка декодирования, не ноль.
func TestPendingCountGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 4}`))
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	if _, err := svc.PendingCount(context.Background(), "tok", 1); err == nil {
		t.Error("ожидалась ошибка декодирования")
	}
}

// Создание заявки: JSON {animalId, note}, заметка обрезается по краям.
func TestRequestCreate(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	if err := svc.Create(context.Background(), "tok", 9, "  заберу в добрые руки  "); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	var sent struct {
		AnimalID int64  `json:"animalId"`
		Note     string `json:"note"`
	}
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("декодирование тела: %v", err)
	}
	if sent.AnimalID != 9 {
		t.Errorf("animalId = %d", sent.AnimalID)
	}
	if sent.Note != "заберу в добрые руки" {
		t.Errorf("note = %q, заметка должна обрезаться", sent.Note)
	}
}

// Дубликат заявки (409) приходит как ErrConflict.
func TestRequestCreateConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"request already exists"}`, http.StatusConflict)
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	err := svc.Create(context.Background(), "tok", 9, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("ожидался ErrConflict, получено %v", err)
	}
}

// Смена статуса: PUT /adoption-requests/{id}/status?status=APPROVED.
func TestUpdateStatus(t *testing.T) {
	var gotMethod, gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotURI = r.URL.RequestURI()
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	if err := svc.UpdateStatus(context.Background(), "tok", 5, "APPROVED"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if gotMethod != http.MethodPut || gotURI != "/adoption-requests/5/status?status=APPROVED" {
		t.Errorf("запрос = %s %s", gotMethod, gotURI)
	}
}

// Повторное решение по уже решённой заявке бэкенд отвергает —
// ошибка доводится до вызывающего.
func TestUpdateStatusConflictSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"request already resolved"}`, http.StatusConflict)
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	err := svc.UpdateStatus(context.Background(), "tok", 5, "REJECTED")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("ожидался ErrConflict, получено %v", err)
	}
}

// Мои заявки и заявки на моё животное ходят на свои эндпоинты.
func TestRequestListEndpoints(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"id":1,"animalId":2,"status":"PENDING"}]`))
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())

	requests, err := svc.MyRequests(context.Background(), "tok")
	if err != nil {
		t.Fatalf("MyRequests: %v", err)
	}
	if gotPath != "/adoption-requests/my-requests" {
		t.Errorf("path = %q", gotPath)
	}
	if len(requests) != 1 || !requests[0].IsPending() {
		t.Errorf("requests = %+v", requests)
	}

	if _, err := svc.ForAnimal(context.Background(), "tok", 2); err != nil {
		t.Fatalf("ForAnimal: %v", err)
	}
	if gotPath != "/adoption-requests/requests-for-my-animal/2" {
		t.Errorf("path = %q", gotPath)
	}
}

// Отмена заявки — DELETE; 403 на чужую заявку — ErrForbidden.
func TestRequestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/adoption-requests/1" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "", http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewAdoptionRequestService(testAPIClient(), srv.URL, testLogger())
	if err := svc.Delete(context.Background(), "tok", 1); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := svc.Delete(context.Background(), "tok", 2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ожидался ErrForbidden, получено %v", err)
	}
}
