package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuyamiwatch/backend/api/middleware"
	"github.com/okuyamiwatch/backend/internal/names"
	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

type stubNamesService struct {
	listResult []names.NameDTO
	record     *names.NameDTO
	err        error

	gotCaller uuid.UUID
	gotNameID uuid.UUID
	gotInput  names.NameInput
	gotActive bool
	deleted   bool
}

func (s *stubNamesService) List(ctx context.Context, callerID uuid.UUID) ([]names.NameDTO, error) {
	s.gotCaller = callerID
	return s.listResult, s.err
}

func (s *stubNamesService) Create(ctx context.Context, callerID uuid.UUID, input names.NameInput) (*names.NameDTO, error) {
	s.gotCaller = callerID
	s.gotInput = input
	return s.record, s.err
}

func (s *stubNamesService) Update(ctx context.Context, callerID, nameID uuid.UUID, input names.NameInput) (*names.NameDTO, error) {
	s.gotCaller = callerID
	s.gotNameID = nameID
	s.gotInput = input
	return s.record, s.err
}

func (s *stubNamesService) Toggle(ctx context.Context, callerID, nameID uuid.UUID, isActive bool) (*names.NameDTO, error) {
	s.gotCaller = callerID
	s.gotNameID = nameID
	s.gotActive = isActive
	return s.record, s.err
}

func (s *stubNamesService) Delete(ctx context.Context, callerID, nameID uuid.UUID) error {
	s.gotCaller = callerID
	s.gotNameID = nameID
	s.deleted = s.err == nil
	return s.err
}

func namesTestRouter(svc names.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/names", NamesList(svc, nil))
	r.Post("/names", NameCreate(svc, nil))
	r.Put("/names/{nameId}", NameUpdate(svc, nil))
	r.Patch("/names/{nameId}", NameToggle(svc, nil))
	r.Delete("/names/{nameId}", NameDelete(svc, nil))
	return r
}

func namesRequest(t *testing.T, router http.Handler, method, target, body string, callerID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if callerID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), callerID.String()))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleName() *names.NameDTO {
	kana := "やましろたろう"
	return &names.NameDTO{
		ID:        uuid.New(),
		Label:     "山城 太郎",
		Kana:      &kana,
		IsActive:  true,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNamesListReturnsEnvelope(t *testing.T) {
	record := sampleName()
	svc := &stubNamesService{listResult: []names.NameDTO{*record}}
	callerID := uuid.New()

	rec := namesRequest(t, namesTestRouter(svc), http.MethodGet, "/names", "", callerID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, callerID, svc.gotCaller)

	body := decodeBody(t, rec)
	listed, ok := body["names"].([]any)
	require.True(t, ok)
	require.Len(t, listed, 1)

	entry := listed[0].(map[string]any)
	assert.Equal(t, record.ID.String(), entry["id"])
	assert.Equal(t, "山城 太郎", entry["label"])
	assert.Equal(t, "やましろたろう", entry["kana"])
	assert.Equal(t, true, entry["isActive"])
}

func TestNamesListSerializesMissingKanaAsNull(t *testing.T) {
	record := sampleName()
	record.Kana = nil
	svc := &stubNamesService{listResult: []names.NameDTO{*record}}

	rec := namesRequest(t, namesTestRouter(svc), http.MethodGet, "/names", "", uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Names []map[string]json.RawMessage `json:"names"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Names, 1)

	raw, present := body.Names[0]["kana"]
	require.True(t, present, "kana key must be present even when absent")
	assert.Equal(t, "null", string(raw))
}

func TestNamesListWithoutCallerIsUnauthorized(t *testing.T) {
	svc := &stubNamesService{}
	rec := namesRequest(t, namesTestRouter(svc), http.MethodGet, "/names", "", uuid.Nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestNameCreateReturns201(t *testing.T) {
	record := sampleName()
	svc := &stubNamesService{record: record}

	rec := namesRequest(t, namesTestRouter(svc), http.MethodPost, "/names",
		`{"label":"山城 太郎","kana":"やましろたろう"}`, uuid.New())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "山城 太郎", svc.gotInput.Label)
	require.NotNil(t, svc.gotInput.Kana)
	assert.Equal(t, "やましろたろう", *svc.gotInput.Kana)

	body := decodeBody(t, rec)
	created, ok := body["name"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, record.ID.String(), created["id"])
}

func TestNameUpdatePassesParsedID(t *testing.T) {
	record := sampleName()
	svc := &stubNamesService{record: record}
	nameID := uuid.New()

	rec := namesRequest(t, namesTestRouter(svc), http.MethodPut, "/names/"+nameID.String(),
		`{"label":"佐藤 華子"}`, uuid.New())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, nameID, svc.gotNameID)
	assert.Equal(t, "佐藤 華子", svc.gotInput.Label)
}

func TestNameRoutesRejectMalformedIDAsNotFound(t *testing.T) {
	svc := &stubNamesService{record: sampleName()}
	router := namesTestRouter(svc)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := namesRequest(t, router, method, "/names/not-a-uuid", `{"label":"x","isActive":true}`, uuid.New())
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		body := decodeBody(t, rec)
		assert.Equal(t, "Not found", body["error"], method)
	}
	assert.Equal(t, uuid.Nil, svc.gotNameID)
}

func TestNameToggleRequiresIsActive(t *testing.T) {
	svc := &stubNamesService{record: sampleName()}

	rec := namesRequest(t, namesTestRouter(svc), http.MethodPatch, "/names/"+uuid.NewString(),
		`{}`, uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid payload", body["error"])
}

func TestNameTogglePassesExplicitFalse(t *testing.T) {
	record := sampleName()
	record.IsActive = false
	svc := &stubNamesService{record: record}
	nameID := uuid.New()

	rec := namesRequest(t, namesTestRouter(svc), http.MethodPatch, "/names/"+nameID.String(),
		`{"isActive":false}`, uuid.New())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, nameID, svc.gotNameID)
	assert.False(t, svc.gotActive)
}

func TestNameDeleteSuccess(t *testing.T) {
	svc := &stubNamesService{}
	nameID := uuid.New()

	rec := namesRequest(t, namesTestRouter(svc), http.MethodDelete, "/names/"+nameID.String(), "", uuid.New())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.deleted)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestNameDeleteForeignRecordIs404(t *testing.T) {
	svc := &stubNamesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Not found")}

	rec := namesRequest(t, namesTestRouter(svc), http.MethodDelete, "/names/"+uuid.NewString(), "", uuid.New())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Not found", body["error"])
}
