package profile

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"cofoundry-backend/internal/auth"
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/middleware"
	"cofoundry-backend/internal/model"
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

func newProfileRouter() *gin.Engine {
	r := gin.Default()
	pc := NewProfileController(testDB)
	r.POST("/profile/:role", middleware.RequireAuth(testDB), pc.UpsertProfile)
	r.PATCH("/profile/:role", middleware.RequireAuth(testDB), pc.UpdateProfile)
	r.GET("/profile/:role/me", middleware.RequireAuth(testDB), pc.GetMyProfile)
	return r
}

// newTestUser inserts a fresh account so profile mutations stay isolated
// from the shared fixtures.
func newTestUser(t *testing.T) (model.User, string) {
	t.Helper()
	gid := "g-" + uuid.NewString()
	u := model.User{
		ID:          uuid.New(),
		GoogleID:    &gid,
		DisplayName: "Fresh User",
		Email:       gid + "@example.com",
	}
	require.NoError(t, testDB.Create(&u).Error)

	token, err := auth.GetTestToken(t, u.ID)
	require.NoError(t, err)
	return u, token
}

func TestUpsertProfile_createThenOverwrite(t *testing.T) {
	_, token := newTestUser(t)
	r := newProfileRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"firstName": "Nok",
		"bio":       "first version",
		"skills":    []string{"Go"},
	}, token, r, "/profile/developer", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Nok", resp["firstName"])
	assert.Equal(t, "first version", resp["bio"])

	// Resubmission replaces the whole document.
	rec, resp = testutil.MakeJSONRequest(gin.H{
		"firstName": "Nok",
		"bio":       "second version",
	}, token, r, "/profile/developer", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "second version", resp["bio"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/profile/developer/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "second version", resp["bio"])
}

func TestUpsertProfile_unknownRole(t *testing.T) {
	_, token := newTestUser(t)
	r := newProfileRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{}, token, r, "/profile/admin", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown profile role", resp["error"])
}

func TestGetMyProfile_notFound(t *testing.T) {
	_, token := newTestUser(t)
	r := newProfileRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/profile/investor/me", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", resp["error"])
}

func TestGetMyProfile_seededRecruiter(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserRecruiter1.ID)
	require.NoError(t, err)
	r := newProfileRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/profile/recruiter/me", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestRecruiter1.CompanyName, resp["companyName"])
	assert.Equal(t, database.TestUserRecruiter1.ID.String(), resp["uid"])
}

func TestUpdateProfile_partialMerge(t *testing.T) {
	_, token := newTestUser(t)
	r := newProfileRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"companyName": "SeedLing",
		"companySize": "1-10",
		"equityRange": "2%",
	}, token, r, "/profile/recruiter", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"companySize": "11-50",
	}, token, r, "/profile/recruiter", http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11-50", resp["companySize"])
	// Untouched fields survive the patch.
	assert.Equal(t, "SeedLing", resp["companyName"])
	assert.Equal(t, "2%", resp["equityRange"])
}

func TestUpdateProfile_missingProfile(t *testing.T) {
	_, token := newTestUser(t)
	r := newProfileRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"bio": "no profile yet",
	}, token, r, "/profile/developer", http.MethodPatch)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", resp["error"])
}
