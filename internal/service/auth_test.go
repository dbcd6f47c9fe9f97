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

// Успешный вход возвращает токен и профиль пользователя.
func TestAuthLogin(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("запрос = %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"token":"jwt-abc","user":{"id":5,"fullName":"Иван Петров","email":"ivan@example.com","role":"ROLE_USER"}}`))
	}))
	defer srv.Close()

	svc := NewAuthService(testAPIClient(), srv.URL, testLogger())
	token, user, err := svc.Login(context.Background(), "ivan@example.com", "secret")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q", token)
	}
	if user == nil || user.FullName != "Иван Петров" || user.ID == nil || *user.ID != 5 {
		t.Errorf("user = %+v", user)
	}

	var creds map[string]string
	if err := json.Unmarshal(gotBody, &creds); err != nil {
		t.Fatalf("декодирование: %v", err)
	}
	if creds["email"] != "ivan@example.com" || creds["password"] != "secret" {
		t.Errorf("креденшалы = %v", creds)
	}
}

// 401 на неверные креденшалы — ErrUnauthorized.
func TestAuthLoginUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewAuthService(testAPIClient(), srv.URL, testLogger())
	_, _, err := svc.Login(context.Background(), "ivan@example.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ожидался ErrUnauthorized, получено %v", err)
	}
}

// Ответ без токена — ошибка, даже при статусе 200.
func TestAuthLoginEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":1}}`))
	}))
	defer srv.Close()

	svc := NewAuthService(testAPIClient(), srv.URL, testLogger())
	if _, _, err := svc.Login(context.Background(), "a@b.c", "p"); err == nil {
		t.Error("ожидалась ошибка на ответ без токена")
	}
}

// Регистрация уходит в формате бэкенда; 409 — ErrConflict (email занят).
func TestAuthRegister(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := NewAuthService(testAPIClient(), srv.URL, testLogger())
	err := svc.Register(context.Background(), RegisterRequest{
		FullName:    "Анна Иванова",
		Email:       "anna@example.com",
		Password:    "secret",
		PhoneNumber: "+79990001122",
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	var sent map[string]string
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("декодирование: %v", err)
	}
	if sent["fullName"] != "Анна Иванова" || sent["phoneNumber"] != "+79990001122" {
		t.Errorf("отправлено %v", sent)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Email already in use"}`, http.StatusConflict)
	}))
	defer srv.Close()

	svc := NewAuthService(testAPIClient(), srv.URL, testLogger())
	err := svc.Register(context.Background(), RegisterRequest{FullName: "А Б", Email: "a@b.c", Password: "p"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("ожидался ErrConflict, получено %v", err)
	}
}
