package auth

import (
	"testing"

	"github.com/google/uuid"
)

// GetTestToken mints an access token for the given user id so handler tests
// can call authenticated routes without walking the OAuth exchange.
func GetTestToken(t *testing.T, userID uuid.UUID) (string, error) {
	t.Helper()
	token, _, err := GenerateStandardToken(userID)
	return token, err
}
