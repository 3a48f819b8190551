package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gira-client/internal/models"
)

func TestUnwrapEnvelopeSuccess(t *testing.T) {
	body := []byte(`{"success": true, "data": {"id": "c1", "titre": "Bagage perdu"}}`)

	var complaint models.Complaint
	err := Unwrap(body, 200, "fallback", &complaint)
	require.NoError(t, err)
	assert.Equal(t, "c1", complaint.ID)
	assert.Equal(t, "Bagage perdu", complaint.Titre)
}

func TestUnwrapEnvelopeFailure(t *testing.T) {
	body := []byte(`{"success": false, "message": "Invalid credentials"}`)

	var res models.AuthResponse
	err := Unwrap(body, 401, "Login failed", &res)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, apiErr.Network)
}

func TestUnwrapEnvelopeFailureWithoutMessage(t *testing.T) {
	body := []byte(`{"success": false}`)

	err := Unwrap(body, 400, "Registration failed", nil)
	require.Error(t, err)
	assert.Equal(t, "Registration failed", ErrorMessage(err))
}

func TestUnwrapRawBody(t *testing.T) {
	body := []byte(`{"id": "u1", "email": "a@b.fr", "nom": "Martin", "prenom": "Claire", "role": {"nom": "PASSAGER", "actif": true}, "actif": true, "emailVerifie": true}`)

	var user models.User
	err := Unwrap(body, 200, "fallback", &user)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RolePassager, user.Role.Nom)
}

func TestUnwrapRawErrorBody(t *testing.T) {
	body := []byte(`{"error": "Invalid token"}`)

	err := Unwrap(body, 401, "fallback", nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid token", ErrorMessage(err))
}

func TestUnwrapRawErrorWithoutBody(t *testing.T) {
	err := Unwrap(nil, 500, "Failed to fetch complaints", nil)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch complaints", ErrorMessage(err))
}

func TestUnwrapNilOut(t *testing.T) {
	require.NoError(t, Unwrap([]byte(`{"message": "ok"}`), 200, "fallback", nil))
	require.NoError(t, Unwrap([]byte(`{"success": true}`), 200, "fallback", nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, NetworkErrorMessage, ErrorMessage(networkError(errors.New("dial tcp: refused"))))
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
}
