package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTopLevelUserShape(t *testing.T) {
	payload := map[string]any{
		"user": map[string]any{
			"id":     "u9",
			"name":   "Meera",
			"email":  "meera@x.com",
			"roleId": float64(1),
		},
		"token": "top-token",
	}

	user, token, err := normalizeLogin(payload, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "top-token", token)
	require.Equal(t, "u9", user.ID)
	require.Equal(t, 1, user.RoleID)
	require.Equal(t, "meera@x.com", user.Email)
	require.Equal(t, "9876543210", user.Phone, "missing phone falls back to contact")
}

func TestNormalizeStringRoleID(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{"accessToken": "t", "roleId": "2", "id": "u2"},
	}

	user, _, err := normalizeLogin(payload, "9876543210")
	require.NoError(t, err)
	require.Equal(t, 2, user.RoleID)
}

func TestNormalizeEmptyPayload(t *testing.T) {
	_, _, err := normalizeLogin(nil, "9876543210")
	require.Error(t, err)

	_, _, err = normalizeLogin(map[string]any{}, "9876543210")
	require.Error(t, err)
}
