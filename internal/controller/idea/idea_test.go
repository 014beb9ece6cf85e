package idea

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"cofoundry-backend/internal/auth"
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/middleware"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/savedstore"
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

func newIdeaRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.Default()
	ic := NewIdeaController(testDB, savedstore.New(rdb))
	r.GET("/ideas", middleware.RequireAuth(testDB), ic.GetIdeas)
	r.GET("/ideas/:id", middleware.RequireAuth(testDB), ic.GetIdea)
	r.POST("/ideas", middleware.RequireAuth(testDB), ic.CreateIdea)
	r.PATCH("/ideas/:id/close", middleware.RequireAuth(testDB), ic.CloseIdea)
	r.POST("/ideas/:id/save", middleware.RequireAuth(testDB), ic.ToggleSave)
	return r
}

func listingIDs(resp map[string]interface{}) []string {
	raw, _ := resp["listings"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		listing, _ := item.(map[string]interface{})
		id, _ := listing["id"].(string)
		out = append(out, id)
	}
	return out
}

func TestCreateIdea_notRecruiter(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"cofounderRole": "CTO",
	}, token, r, "/ideas", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User is not registered as a recruiter", resp["error"])
}

func TestCreateIdea_success(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserRecruiter2.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"cofounderRole":   "COO",
		"companyName":     "LaunchPad",
		"equityRange":     "50%",
		"ideaDescription": "Operations partner for a studio venture",
	}, token, r, "/ideas", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, database.TestUserRecruiter2.ID.String(), resp["recruiterId"])
	assert.Equal(t, model.IdeaStatusActive, resp["status"])
	// Contact fields come from the recruiter, not the request.
	assert.Equal(t, database.TestRecruiter2.Email, resp["email"])
}

func TestGetIdeas_equityBands(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas?equity=1to5", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{database.TestIdea1.ID.String()}, listingIDs(resp))

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas?equity=5to10", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{database.TestIdea2.ID.String()}, listingIDs(resp))
}

func TestGetIdeas_closedListingsHidden(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, listingIDs(resp), database.TestIdea3.ID.String())
}

func TestGetIdeas_searchAndSort(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas?search=analytics", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{database.TestIdea2.ID.String()}, listingIDs(resp))

	// Both TechNova listings, newest first by default.
	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas?search=technova", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{
		database.TestIdea2.ID.String(),
		database.TestIdea1.ID.String(),
	}, listingIDs(resp))

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas?search=technova&sort=oldest", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{
		database.TestIdea1.ID.String(),
		database.TestIdea2.ID.String(),
	}, listingIDs(resp))
}

func TestToggleSave_savedTab(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper2.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas/"+database.TestIdea1.ID.String()+"/save", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["saved"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas?tab=saved", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{database.TestIdea1.ID.String()}, listingIDs(resp))

	counts, _ := resp["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["saved"])

	// Toggling again unsaves and empties the tab.
	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas/"+database.TestIdea1.ID.String()+"/save", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["saved"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas?tab=saved", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, listingIDs(resp))
}

func TestToggleSave_unknownListing(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas/"+uuid.NewString()+"/save", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Listing not found", resp["error"])
}

func TestGetIdea_byID(t *testing.T) {
	token, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	r := newIdeaRouter(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/ideas/"+database.TestIdea1.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestIdea1.CofounderRole, resp["cofounderRole"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/ideas/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Listing not found", resp["error"])
}

func TestCloseIdea_ownership(t *testing.T) {
	// A dedicated listing so closing it cannot disturb the shared fixtures.
	listing := model.Idea{
		RecruiterID: database.TestUserRecruiter2.ID,
		EditableIdeaInfo: model.EditableIdeaInfo{
			CofounderRole: "CFO",
			CompanyName:   "DataForge",
			EquityRange:   "4%",
		},
		Status: model.IdeaStatusActive,
	}
	require.NoError(t, testDB.Create(&listing).Error)

	r := newIdeaRouter(t)

	devToken, err := auth.GetTestToken(t, database.TestUserDeveloper1.ID)
	require.NoError(t, err)
	rec, resp := testutil.MakeJSONRequest(nil, devToken, r, "/ideas/"+listing.ID.String()+"/close", http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only the posting recruiter can close a listing", resp["error"])

	ownerToken, err := auth.GetTestToken(t, database.TestUserRecruiter2.ID)
	require.NoError(t, err)
	rec, resp = testutil.MakeJSONRequest(nil, ownerToken, r, "/ideas/"+listing.ID.String()+"/close", http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.IdeaStatusClosed, resp["status"])

	// Closing an already-closed listing succeeds without complaint.
	rec, resp = testutil.MakeJSONRequest(nil, ownerToken, r, "/ideas/"+listing.ID.String()+"/close", http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.IdeaStatusClosed, resp["status"])
}
