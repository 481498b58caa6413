package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchantgate/internal/config"
	"merchantgate/internal/models"
	"merchantgate/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

// setupServer builds the full app against in-memory SQLite and a fake userInfo endpoint
// that answers with the sub claim of whatever token it receives.
func setupServer(t *testing.T) *Server {
	t.Helper()

	userInfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		claims := jwt.MapClaims{}
		if len(raw) > len("Bearer ") {
			_, _, _ = new(jwt.Parser).ParseUnverified(raw[len("Bearer "):], claims)
		}
		w.Header().Set("Content-Type", "application/json")
		if claims["sub"] == nil {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_token", "error_description": "Access token is not valid"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sub": claims["sub"], "username": "merchant"})
	}))
	t.Cleanup(userInfo.Close)

	cfg := &config.Config{
		App: config.AppConfig{Port: ":0", Env: "test", LogLevel: "disabled"},
		Cognito: config.CognitoConfig{
			Provider:    config.ProviderUserInfo,
			ClientID:    "merchant-app",
			UserInfoURL: userInfo.URL,
		},
		DB: config.DBConfig{
			URL:          "sqlite:file:maintest?mode=memory&cache=shared",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
	}

	srv, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, srv.Shutdown(ctx))
	})
	return srv
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"status": "healthy"}, decode(t, resp))
}

func TestMerchantLifecycle(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	user := models.User{CognitoSub: "sub-e2e", ConnectionMode: models.ConnectionModeCustomer, VerificationStatus: models.VerificationStatusNone}
	require.NoError(t, srv.db.WithContext(ctx).Create(&user).Error)

	token := signedToken(t, jwt.MapClaims{"sub": "sub-e2e", "client_id": "merchant-app"})

	req := httptest.NewRequest(http.MethodGet, "/verify-merchant", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User not applied", decode(t, resp)["message"])

	payload, err := json.Marshal(map[string]string{
		"access_token": token,
		"companyName":  "Acme",
		"afm":          "099999999",
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/new_merchant", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = srv.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{
		"message":     "User updated successfully",
		"cognito_id":  "sub-e2e",
		"trader_type": "supplier",
	}, decode(t, resp))

	// promoted to both, but not yet verified
	req = httptest.NewRequest(http.MethodGet, "/verify-merchant?access_token="+token, nil)
	resp, err = srv.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "User not verified yet", decode(t, resp)["message"])

	require.NoError(t, srv.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("verification_status", models.VerificationStatusFull).Error)

	req = httptest.NewRequest(http.MethodGet, "/verify-merchant?access_token="+token, nil)
	resp, err = srv.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"message":    "User verified successfully",
		"cognito_id": "sub-e2e",
	}, decode(t, resp))
}

func TestProviderRejections(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantError  string
	}{
		{"not a jwt", "abc", http.StatusBadRequest, "Access token is malformed"},
		{"foreign client", signedToken(t, jwt.MapClaims{"sub": "x", "client_id": "other"}), http.StatusInternalServerError,
			"Error interacting with Cognito: Access token was not issued for client merchant-app"},
		{"rejected by provider", signedToken(t, jwt.MapClaims{"client_id": "merchant-app"}), http.StatusInternalServerError,
			"Error interacting with Cognito: Access token is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/verify-merchant?access_token="+tt.token, nil)
			resp, err := srv.App.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, decode(t, resp)["error"])
		})
	}
}
