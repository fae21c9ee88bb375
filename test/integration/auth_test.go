package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"iwork_backend/internal/models"
	"iwork_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":      "newuser@test.com",
		"password":   "super_password123",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}
	regRes, regBodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)
	assert.Contains(t, regBodyStr, "access_token")
	assert.Contains(t, regBodyStr, "newuser@test.com")

	loginBody := map[string]interface{}{
		"email":    "newuser@test.com",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)
	assert.Contains(t, logBodyStr, "refresh_token")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "duplicate@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleUser,
	})
	require.NoError(t, err)

	registerBody := map[string]interface{}{
		"email":    "duplicate@test.com",
		"password": "another_password123",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "EMAIL_ALREADY_EXISTS")
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)

	loginBody := map[string]interface{}{
		"email":    user.Email,
		"password": "definitely_wrong",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestRefreshRotation(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":    "rotate@test.com",
		"password": "super_password123",
	}
	regRes, regBodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)

	var authResponse struct {
		Tokens struct {
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal([]byte(regBodyStr), &authResponse))
	oldToken := authResponse.Tokens.RefreshToken
	require.NotEmpty(t, oldToken)

	// First refresh succeeds and returns a new pair.
	refreshBody := map[string]interface{}{"refresh_token": oldToken}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var refreshed struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &refreshed))
	assert.NotEqual(t, oldToken, refreshed.RefreshToken)

	// The presented token was revoked by the rotation; replaying it fails.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestLogout_UnknownTokenStillSucceeds(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	logoutBody := map[string]interface{}{"refresh_token": "no-such-token"}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/logout", "", logoutBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func TestGetProfile(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginMember(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, user.Email)
}

func TestProtectedRoute_NoToken(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
