package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuyamiwatch/backend/internal/auth"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

type stubRegisterService struct {
	err error
	got *auth.RegisterRequest
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) error {
	s.got = &req
	return s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &stubRegisterService{}
	rec := postJSON(t, AuthRegister(svc, nil), "/auth/register",
		`{"email":"taro@example.com","password":"correct-horse","name":"山城太郎"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	require.NotNil(t, svc.got)
	assert.Equal(t, "taro@example.com", svc.got.Email)
}

func TestAuthRegisterValidationFailure(t *testing.T) {
	svc := &stubRegisterService{}
	rec := postJSON(t, AuthRegister(svc, nil), "/auth/register",
		`{"email":"not-an-email","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid payload", body["error"])

	issues, ok := body["issues"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, issues, "email")
	assert.Contains(t, issues, "password")
	assert.Nil(t, svc.got)
}

func TestAuthRegisterMalformedJSON(t *testing.T) {
	svc := &stubRegisterService{}
	rec := postJSON(t, AuthRegister(svc, nil), "/auth/register", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid payload", body["error"])
}

func TestAuthRegisterConflict(t *testing.T) {
	svc := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "Email already registered")}
	rec := postJSON(t, AuthRegister(svc, nil), "/auth/register",
		`{"email":"taro@example.com","password":"correct-horse"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Email already registered", body["error"])
	_, hasIssues := body["issues"]
	assert.False(t, hasIssues)
}
