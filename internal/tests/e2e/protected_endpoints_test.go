package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedEndpointsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authorization header required", body["error"])

	status, body = env.get(t, "/auth/me", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestRoleBoundaries(t *testing.T) {
	env := newTestEnv(t)

	env.registerAndVerify(t, "user@example.com", "08012345678", "Secret123")
	userToken := env.login(t, "08012345678", "Secret123")

	env.createAdmin(t, "root@example.com", "+2348098765432", "AdminSecret1")
	adminToken := env.login(t, "08098765432", "AdminSecret1")

	// A regular user reaches the profile but not the admin surface.
	status, _ := env.get(t, "/auth/me", userToken)
	require.Equal(t, http.StatusOK, status)

	status, body := env.get(t, "/admin/users", userToken)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied", body["error"])

	status, body = env.get(t, "/admin/users", adminToken)
	require.Equal(t, http.StatusOK, status)
	data := dataObject(t, body)
	assert.Equal(t, float64(2), data["total"])

	users, ok := data["users"].([]interface{})
	require.True(t, ok, "user list missing: %v", body)
	require.Len(t, users, 2)
	for _, u := range users {
		entry := u.(map[string]interface{})
		assert.NotContains(t, entry, "password_hash")
	}
}

func TestDeactivationRevokesLiveTokens(t *testing.T) {
	env := newTestEnv(t)

	env.registerAndVerify(t, "user@example.com", "08012345678", "Secret123")
	userToken := env.login(t, "08012345678", "Secret123")

	env.createAdmin(t, "root@example.com", "+2348098765432", "AdminSecret1")
	adminToken := env.login(t, "08098765432", "AdminSecret1")

	user, err := env.Users.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)

	status, _ := env.get(t, "/auth/me", userToken)
	require.Equal(t, http.StatusOK, status)

	statusPath := fmt.Sprintf("/admin/users/%d/status", user.ID)
	status, body := env.do(t, http.MethodPatch, statusPath, map[string]bool{"is_active": false}, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deactivated", dataObject(t, body)["message"])

	// The JWT itself is unchanged; the live account check refuses it.
	status, body = env.get(t, "/auth/me", userToken)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Account is deactivated", body["error"])

	status, body = env.postJSON(t, "/auth/login", map[string]string{
		"login":    "08012345678",
		"password": "Secret123",
	}, "")
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Account is deactivated", body["error"])

	// Reactivation restores the old token without a fresh login.
	status, body = env.do(t, http.MethodPatch, statusPath, map[string]bool{"is_active": true}, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User activated", dataObject(t, body)["message"])

	status, _ = env.get(t, "/auth/me", userToken)
	require.Equal(t, http.StatusOK, status)
}

func TestAdminDeletesUser(t *testing.T) {
	env := newTestEnv(t)

	env.registerAndVerify(t, "user@example.com", "08012345678", "Secret123")
	env.createAdmin(t, "root@example.com", "+2348098765432", "AdminSecret1")
	adminToken := env.login(t, "08098765432", "AdminSecret1")

	user, err := env.Users.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)

	userPath := fmt.Sprintf("/admin/users/%d", user.ID)
	status, body := env.do(t, http.MethodDelete, userPath, nil, adminToken)
	require.Equal(t, http.StatusNoContent, status)
	assert.Nil(t, body)

	status, body = env.get(t, userPath, adminToken)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])

	status, _ = env.postJSON(t, "/auth/login", map[string]string{
		"login":    "08012345678",
		"password": "Secret123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, status)
}

// TestPolicyAdministration grants a role access at runtime, watches the
// grant take effect on the next request, then revokes it.
func TestPolicyAdministration(t *testing.T) {
	env := newTestEnv(t)

	env.registerAndVerify(t, "user@example.com", "08012345678", "Secret123")
	userToken := env.login(t, "08012345678", "Secret123")

	env.createAdmin(t, "root@example.com", "+2348098765432", "AdminSecret1")
	adminToken := env.login(t, "08098765432", "AdminSecret1")

	status, body := env.get(t, "/admin/policies", adminToken)
	require.Equal(t, http.StatusOK, status)
	seeded, ok := body["data"].([]interface{})
	require.True(t, ok, "policy list missing: %v", body)
	assert.Len(t, seeded, 2)

	status, _ = env.get(t, "/admin/users", userToken)
	require.Equal(t, http.StatusForbidden, status)

	grant := map[string]string{"role": "role_user", "resource": "/admin/users", "action": "GET"}
	status, _ = env.postJSON(t, "/admin/policies", grant, adminToken)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = env.get(t, "/admin/users", userToken)
	require.Equal(t, http.StatusOK, status, "grant should apply to the next request")

	status, _ = env.do(t, http.MethodDelete, "/admin/policies", grant, adminToken)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = env.get(t, "/admin/users", userToken)
	require.Equal(t, http.StatusForbidden, status, "revocation should apply to the next request")
}
