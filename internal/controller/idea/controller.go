// Package idea provides HTTP handlers for listings: founders post them,
// every role browses them through the shared dashboard view, and the
// posting founder can close them.
package idea

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/listingview"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/savedstore"
	"cofoundry-backend/internal/utilities"
)

// IdeaController handles listing related endpoints
type IdeaController struct {
	DB    *database.DBinstanceStruct
	Saved *savedstore.Store
}

// NewIdeaController creates a new instance of IdeaController
func NewIdeaController(db *database.DBinstanceStruct, saved *savedstore.Store) *IdeaController {
	return &IdeaController{
		DB:    db,
		Saved: saved,
	}
}

// ListingView is a listing as the dashboard renders it: the stored fields
// plus the caller's saved flag and truncation previews for the long
// free-text fields.
type ListingView struct {
	model.Idea
	Saved                bool   `json:"saved"`
	DescriptionPreview   string `json:"descriptionPreview"`
	DescriptionTruncated bool   `json:"descriptionTruncated"`
	RolePreview          string `json:"rolePreview"`
	RoleTruncated        bool   `json:"roleTruncated"`
}

// ListingsResponse is the dashboard payload: the visible listings under the
// current controls, plus per-tab counts for the tab headers.
type ListingsResponse struct {
	Listings []ListingView           `json:"listings"`
	Counts   map[listingview.Tab]int `json:"counts"`
}

// CreateIdea handles a founder posting a new listing.
// @Summary Post a new listing
// @Description Only users holding a recruiter profile can post listings.
// @Tags Idea
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Idea body model.EditableIdeaInfo true "Listing fields"
// @Success 201 {object} model.Idea "Listing created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not a recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ideas [post]
func (ic *IdeaController) CreateIdea(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var recruiter model.RecruiterProfile
	if err := ic.DB.Where("user_id = ?", user.ID).First(&recruiter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User is not registered as a recruiter",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve recruiter information: %s", err.Error()),
		})
		return
	}

	listing := model.Idea{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&listing.EditableIdeaInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	listing.RecruiterID = user.ID
	listing.Status = model.IdeaStatusActive
	listing.Email = recruiter.Email
	listing.PhotoURL = user.PhotoURL

	if err := ic.DB.Create(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create listing: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetIdeas returns the active listings as seen through the caller's
// dashboard controls: tab, text search, equity band and sort order.
// @Summary Get active listings through the dashboard view
// @Description All filtering runs server-side in a fixed order: tab, search, equity band, sort.
// @Tags Idea
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param tab query string false "Tab selection" Enums(all, saved, applied) default(all)
// @Param search query string false "Case-insensitive substring match over role, company, email and description"
// @Param equity query string false "Equity band" Enums(all, below1, 1to5, 5to10, above10) default(all)
// @Param sort query string false "Sort order by creation time" Enums(newest, oldest) default(newest)
// @Success 200 {object} ListingsResponse "Visible listings and tab counts"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database or saved-store error"
// @Router /ideas [get]
func (ic *IdeaController) GetIdeas(c *gin.Context) {
	claims, err := utilities.ExtractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var all []model.Idea
	if err := ic.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listings: ", err),
		})
		return
	}

	// Old documents may lack timestamps; fill them at read time so the
	// sort stage always has something to compare.
	now := time.Now()
	active := make([]model.Idea, 0, len(all))
	for i := range all {
		all[i].NormalizeTimestamps(now)
		if all[i].Status == model.IdeaStatusActive {
			active = append(active, all[i])
		}
	}

	savedIDs, err := ic.Saved.List(c.Request.Context(), claims.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve saved listings: ", err),
		})
		return
	}

	filter := listingview.Filter{
		Tab:      listingview.ParseTab(c.Query("tab")),
		Query:    c.Query("search"),
		Band:     listingview.ParseEquityBand(c.Query("equity")),
		Sort:     listingview.ParseSort(c.Query("sort")),
		SavedIDs: listingview.NewSavedSet(savedIDs),
	}

	visible := listingview.VisibleListings(active, filter)

	views := make([]ListingView, 0, len(visible))
	for _, l := range visible {
		descPreview, descCut := listingview.Truncate(l.IdeaDescription)
		rolePreview, roleCut := listingview.Truncate(l.RoleDescription)
		views = append(views, ListingView{
			Idea:                 l,
			Saved:                filter.SavedIDs.Contains(l.ID),
			DescriptionPreview:   descPreview,
			DescriptionTruncated: descCut,
			RolePreview:          rolePreview,
			RoleTruncated:        roleCut,
		})
	}

	c.JSON(http.StatusOK, ListingsResponse{
		Listings: views,
		Counts:   listingview.TabCounts(active, filter),
	})
}

// GetIdea returns one listing by id, regardless of status, so a founder can
// still open their own closed listing.
// @Summary Get one listing by id
// @Tags Idea
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Listing id"
// @Success 200 {object} model.Idea "The listing"
// @Failure 400 {object} utilities.ErrorResponse "Invalid listing id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Listing not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ideas/{id} [get]
func (ic *IdeaController) GetIdea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid listing id"})
		return
	}

	var listing model.Idea
	if err := ic.DB.Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listing: ", err),
		})
		return
	}

	listing.NormalizeTimestamps(time.Now())
	c.JSON(http.StatusOK, listing)
}

// CloseIdea moves a listing to closed. Only the posting founder can close
// it, and closing an already-closed listing is a no-op success.
// @Summary Close a listing
// @Tags Idea
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Listing id"
// @Success 200 {object} model.Idea "The closed listing"
// @Failure 400 {object} utilities.ErrorResponse "Invalid listing id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the listing"
// @Failure 404 {object} utilities.ErrorResponse "Listing not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ideas/{id}/close [patch]
func (ic *IdeaController) CloseIdea(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid listing id"})
		return
	}

	var listing model.Idea
	if err := ic.DB.Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listing: ", err),
		})
		return
	}

	if listing.RecruiterID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the posting recruiter can close a listing",
		})
		return
	}

	if listing.Status != model.IdeaStatusClosed {
		listing.Status = model.IdeaStatusClosed
		if err := ic.DB.Save(&listing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to close listing: ", err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, listing)
}

// SaveToggleResponse reports the saved state after a toggle.
type SaveToggleResponse struct {
	Saved bool `json:"saved"`
}

// ToggleSave flips the caller's saved mark on a listing. Saved marks live
// with the session token and expire with it.
// @Summary Toggle the caller's saved mark on a listing
// @Tags Idea
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Listing id"
// @Success 200 {object} SaveToggleResponse "Saved state after the toggle"
// @Failure 400 {object} utilities.ErrorResponse "Invalid listing id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Listing not found"
// @Failure 500 {object} utilities.ErrorResponse "Saved-store error"
// @Router /ideas/{id}/save [post]
func (ic *IdeaController) ToggleSave(c *gin.Context) {
	claims, err := utilities.ExtractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid listing id"})
		return
	}

	var listing model.Idea
	if err := ic.DB.Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listing: ", err),
		})
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	saved, err := ic.Saved.Toggle(c.Request.Context(), claims.ID, listing.ID, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to toggle saved listing: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, SaveToggleResponse{Saved: saved})
}
