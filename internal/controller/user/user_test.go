package user

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"cofoundry-backend/internal/auth"
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/middleware"
	"cofoundry-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func newUserRouter() *gin.Engine {
	r := gin.Default()
	uc := NewUserController(testDB)
	r.GET("/me", middleware.RequireAuth(testDB), uc.GetMe)
	r.GET("/me/theme", middleware.RequireAuth(testDB), uc.GetTheme)
	r.PUT("/me/theme", middleware.RequireAuth(testDB), uc.SetTheme)
	return r
}

func TestGetMe(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newUserRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestUserDeveloper1.Email, resp["email"])
	assert.Equal(t, database.TestUserDeveloper1.DisplayName, resp["name"])
}

func TestTheme_defaultsToDark(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newUserRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/me/theme", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", resp["preference"])
	assert.Equal(t, "dark", resp["theme"])
}

func TestTheme_storeAndResolve(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper2.ID)
	require.NoError(t, err)
	r := newUserRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"preference": "light"}, token, r, "/me/theme", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", resp["theme"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/me/theme", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", resp["preference"])
	assert.Equal(t, "light", resp["theme"])

	// Back to dark explicitly.
	rec, resp = testutil.MakeJSONRequest(gin.H{"preference": "dark"}, token, r, "/me/theme", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", resp["theme"])
}

func TestTheme_rejectsUnknownPreference(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newUserRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"preference": "solarized"}, token, r, "/me/theme", http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown theme preference", resp["error"])
}
