package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/service/auth"
)

func newAuthHandler(users *fakeUserStore, jwt *stubJWTService) *AuthHandler {
	return NewAuthHandler(users, jwt, stubPasswordVerifier{}, 15*time.Minute, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func seedUser(t *testing.T, users *fakeUserStore, email, password string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, password)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token pair", func(t *testing.T) {
		t.Parallel()

		users := newFakeUserStore()
		h := newAuthHandler(users, &stubJWTService{})

		w := postJSON(t, h.Register, RegisterRequest{
			Email:    "new@example.com",
			Password: "a-long-enough-password",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)

		stored, err := users.GetByEmail(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password, "plaintext password must not be retained")
	})

	t.Run("rejects duplicate email with 409", func(t *testing.T) {
		t.Parallel()

		users := newFakeUserStore()
		seedUser(t, users, "taken@example.com", "a-long-enough-password")
		h := newAuthHandler(users, &stubJWTService{})

		w := postJSON(t, h.Register, RegisterRequest{
			Email:    "taken@example.com",
			Password: "a-long-enough-password",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		h := newAuthHandler(newFakeUserStore(), &stubJWTService{})

		w := postJSON(t, h.Register, RegisterRequest{
			Email:    "new@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		h := newAuthHandler(newFakeUserStore(), &stubJWTService{})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		users := newFakeUserStore()
		user := seedUser(t, users, "login@example.com", "a-long-enough-password")
		h := newAuthHandler(users, &stubJWTService{})

		w := postJSON(t, h.Login, LoginRequest{
			Email:    "login@example.com",
			Password: "a-long-enough-password",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		users := newFakeUserStore()
		seedUser(t, users, "login@example.com", "a-long-enough-password")
		h := newAuthHandler(users, &stubJWTService{})

		w := postJSON(t, h.Login, LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email responds like wrong password", func(t *testing.T) {
		t.Parallel()

		h := newAuthHandler(newFakeUserStore(), &stubJWTService{})

		w := postJSON(t, h.Login, LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token yields new pair", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		h := newAuthHandler(newFakeUserStore(), &stubJWTService{userID: userID})

		w := postJSON(t, h.RefreshToken, RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.Equal(t, http.StatusOK, w.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-"+userID.String(), resp.AccessToken)
		assert.Equal(t, "refresh-"+userID.String(), resp.RefreshToken)
	})

	t.Run("expired refresh token responds 401", func(t *testing.T) {
		t.Parallel()

		h := newAuthHandler(newFakeUserStore(), &stubJWTService{refreshErr: auth.ErrExpiredRefreshToken})

		w := postJSON(t, h.RefreshToken, RefreshTokenRequest{RefreshToken: "stale"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing refresh token responds 400", func(t *testing.T) {
		t.Parallel()

		h := newAuthHandler(newFakeUserStore(), &stubJWTService{})

		w := postJSON(t, h.RefreshToken, RefreshTokenRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
