package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/server/httpapi"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService returns preconfigured results and records the last call.
type fakeAuthService struct {
	vault *models.VaultAccount
	token string
	err   error

	gotName     string
	gotPassword string
}

func (f *fakeAuthService) Register(ctx context.Context, name, password string) (*models.VaultAccount, string, error) {
	f.gotName, f.gotPassword = name, password
	return f.vault, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, name, password string) (*models.VaultAccount, string, error) {
	f.gotName, f.gotPassword = name, password
	return f.vault, f.token, f.err
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	fake := &fakeAuthService{
		vault: &models.VaultAccount{ID: "v1", Name: "alice"},
		token: "tok",
	}
	h := &httpapi.AuthHandler{Service: fake}

	w := postJSON(t, h.Register, "/auth/users/register", map[string]string{"name": "alice", "password": "pw123456"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "v1", resp.ID)
	assert.Equal(t, "alice", resp.Name)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "alice", fake.gotName)
	assert.Equal(t, "pw123456", fake.gotPassword)
}

func TestRegister_BadJSON(t *testing.T) {
	h := &httpapi.AuthHandler{Service: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/users/register", bytes.NewBufferString("not-a-json"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ValidationAndConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing fields", common.ErrValidation},
		{"name taken", common.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &httpapi.AuthHandler{Service: &fakeAuthService{err: tt.err}}

			w := postJSON(t, h.Register, "/auth/users/register", map[string]string{"name": "alice", "password": "pw"})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.err.Error(), resp.Message)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	fake := &fakeAuthService{
		vault: &models.VaultAccount{ID: "v1", Name: "alice"},
		token: "tok",
	}
	h := &httpapi.AuthHandler{Service: fake}

	w := postJSON(t, h.Login, "/auth/users/login", map[string]string{"name": "alice", "password": "pw123456"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
}

func TestLogin_GenericFailure(t *testing.T) {
	h := &httpapi.AuthHandler{Service: &fakeAuthService{err: common.ErrAuthenticationFailed}}

	w := postJSON(t, h.Login, "/auth/users/login", map[string]string{"name": "alice", "password": "wrong"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrAuthenticationFailed.Error(), resp.Message)
}
