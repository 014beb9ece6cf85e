package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofoundry-backend/internal/savedstore"
)

func logoutContext(t *testing.T, claims *jwt.RegisteredClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	if claims != nil {
		c.Set("claims", claims)
	}
	return c, rec
}

func TestLogoutRevokesSessionAndClearsSaved(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	saved := savedstore.New(rdb)

	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   uuid.NewString(),
		Issuer:    JwtIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	// Something saved during the session that must not survive it.
	_, err := saved.Toggle(context.Background(), claims.ID, uuid.New(), time.Hour)
	require.NoError(t, err)

	blacklist := NewInMemoryBlacklistStore()
	lc := NewLogoutController(blacklist, saved)

	c, rec := logoutContext(t, claims)
	lc.LogoutHandler(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	revoked, err := blacklist.IsBlacklisted(claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ids, err := saved.List(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLogoutWithoutClaims(t *testing.T) {
	lc := NewLogoutController(NewInMemoryBlacklistStore(), nil)

	c, rec := logoutContext(t, nil)
	lc.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
