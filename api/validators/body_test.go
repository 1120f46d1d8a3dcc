package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/okuyamiwatch/backend/pkg/errors"
)

type samplePayload struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,max=10"`
}

func request(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(request(`{"email":"taro@example.com","password":"correct-horse"}`), &dest)
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", dest.Email)
}

func TestDecodeJSONBodyReportsFieldIssuesByJSONTag(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(request(`{"email":"nope","password":"short"}`), &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	issues, ok := typed.Issues().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", issues["email"])
	assert.Equal(t, "must be at least 8", issues["password"])
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(request(`{"email":`), &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(request(`{"email":"taro@example.com","password":"correct-horse","admin":true}`), &dest)
	require.Error(t, err)
}

func TestDecodeJSONBodyOptionalFieldLimit(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(request(`{"email":"taro@example.com","password":"correct-horse","nickname":"way-too-long-nickname"}`), &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	issues, ok := typed.Issues().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, issues, "nickname")
}
