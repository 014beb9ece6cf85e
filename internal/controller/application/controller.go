// Package application provides HTTP handlers for the application workflow:
// developers apply to listings, investors express interest, and the posting
// founder reviews and decides submissions.
package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/utilities"
)

// ApplicationController handles application and investment-interest endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// submitApplicationRequest is the developer submission body.
type submitApplicationRequest struct {
	IdeaID         uuid.UUID `json:"ideaId"`
	CoverLetter    string    `json:"coverLetter"`
	Resume         string    `json:"resume"`
	WhatsappNumber string    `json:"whatsappNumber"`
}

// submitInterestRequest is the investor submission body.
type submitInterestRequest struct {
	IdeaID         uuid.UUID `json:"ideaId"`
	CoverLetter    string    `json:"coverLetter"`
	WhatsappNumber string    `json:"whatsappNumber"`
}

// statusUpdateRequest carries the recruiter's decision.
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// SubmitApplication handles a developer applying to a listing. The
// preconditions run in a fixed order, each with its own failure: the caller
// must hold a developer profile, the listing must exist, and the pair must
// not already have an application.
// @Summary Apply to a listing as a developer
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Application body submitApplicationRequest true "Application fields"
// @Success 201 {object} model.Application "Application created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not a developer"
// @Failure 404 {object} utilities.ErrorResponse "Listing not found"
// @Failure 409 {object} utilities.ErrorResponse "Duplicate application"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) SubmitApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var developer model.DeveloperProfile
	if err := ac.DB.Where("user_id = ?", user.ID).First(&developer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Only developers can submit applications",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve developer information: %s", err.Error()),
		})
		return
	}

	req := submitApplicationRequest{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var listing model.Idea
	if err := ac.DB.Where("id = ?", req.IdeaID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listing: ", err),
		})
		return
	}

	// The unique index on (idea, developer) is the real guard; the
	// pre-check exists to give a clean message instead of a raw
	// constraint error.
	var existing int64
	if err := ac.DB.Model(&model.Application{}).
		Where("idea_id = ? AND developer_id = ?", listing.ID, user.ID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to check existing applications: ", err),
		})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "You have already applied to this job posting",
		})
		return
	}

	app := model.Application{
		IdeaID:         listing.ID,
		DeveloperID:    user.ID,
		RecruiterID:    listing.RecruiterID,
		CoverLetter:    req.CoverLetter,
		Resume:         req.Resume,
		WhatsappNumber: req.WhatsappNumber,
		Status:         model.StatusPending,
	}
	if err := ac.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create application: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// SubmitInterest handles an investor expressing interest in a listing,
// with the same precondition order as SubmitApplication.
// @Summary Express interest in a listing as an investor
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Interest body submitInterestRequest true "Interest fields"
// @Success 201 {object} model.InvestmentInterest "Interest created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not an investor"
// @Failure 404 {object} utilities.ErrorResponse "Listing not found"
// @Failure 409 {object} utilities.ErrorResponse "Duplicate interest"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /interests [post]
func (ac *ApplicationController) SubmitInterest(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var investor model.InvestorProfile
	if err := ac.DB.Where("user_id = ?", user.ID).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Only investors can submit investment interests",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve investor information: %s", err.Error()),
		})
		return
	}

	req := submitInterestRequest{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var listing model.Idea
	if err := ac.DB.Where("id = ?", req.IdeaID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Investment opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve listing: ", err),
		})
		return
	}

	var existing int64
	if err := ac.DB.Model(&model.InvestmentInterest{}).
		Where("idea_id = ? AND investor_id = ?", listing.ID, user.ID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to check existing interests: ", err),
		})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "You have already expressed interest in this opportunity",
		})
		return
	}

	interest := model.InvestmentInterest{
		IdeaID:         listing.ID,
		OpportunityID:  listing.ID.String(),
		InvestorID:     user.ID,
		RecruiterID:    listing.RecruiterID,
		CoverLetter:    req.CoverLetter,
		WhatsappNumber: req.WhatsappNumber,
		Status:         model.StatusPending,
	}
	if err := ac.DB.Create(&interest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create investment interest: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, interest)
}

// GetMyApplications returns the caller's own submissions, newest first.
// @Summary Get the caller's own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application "The caller's applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/me [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var apps []model.Application
	if err := ac.DB.Where("developer_id = ?", user.ID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve applications: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// GetRecruiterApplications returns every application to the caller's
// listings, partitioned by status for the review tabs. The reviewing
// bucket is always present even though nothing reaches it yet.
// @Summary Get applications to the caller's listings, grouped by status
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string][]model.Application "Applications keyed by status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /recruiter/applications [get]
func (ac *ApplicationController) GetRecruiterApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var apps []model.Application
	if err := ac.DB.Preload("Idea").Preload("Developer").
		Where("recruiter_id = ?", user.ID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve applications: ", err),
		})
		return
	}

	grouped := make(map[string][]model.Application, len(model.ApplicationStatuses))
	for _, status := range model.ApplicationStatuses {
		grouped[status] = []model.Application{}
	}
	for _, app := range apps {
		grouped[app.Status] = append(grouped[app.Status], app)
	}

	c.JSON(http.StatusOK, grouped)
}

// GetRecruiterInterests returns every investment interest in the caller's
// listings, partitioned by status.
// @Summary Get investment interests in the caller's listings, grouped by status
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string][]model.InvestmentInterest "Interests keyed by status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /recruiter/interests [get]
func (ac *ApplicationController) GetRecruiterInterests(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var interests []model.InvestmentInterest
	if err := ac.DB.Preload("Idea").Preload("Investor").
		Where("recruiter_id = ?", user.ID).
		Order("created_at DESC").
		Find(&interests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve investment interests: ", err),
		})
		return
	}

	grouped := make(map[string][]model.InvestmentInterest, len(model.ApplicationStatuses))
	for _, status := range model.ApplicationStatuses {
		grouped[status] = []model.InvestmentInterest{}
	}
	for _, interest := range interests {
		grouped[interest.Status] = append(grouped[interest.Status], interest)
	}

	c.JSON(http.StatusOK, grouped)
}

// UpdateApplicationStatus records the recruiter's decision on an
// application. Only the listing's owner may decide, and only a pending
// application can move, to accepted or rejected.
// @Summary Decide an application
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id"
// @Param Status body statusUpdateRequest true "Target status"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id, body or status value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the listing"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 409 {object} utilities.ErrorResponse "Transition not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	req := statusUpdateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if !model.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid status value"})
		return
	}

	var app model.Application
	if err := ac.DB.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve application: ", err),
		})
		return
	}

	if app.RecruiterID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the listing owner can update application status",
		})
		return
	}

	if !model.CanTransition(app.Status, req.Status) {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: fmt.Sprintf("Cannot change status from %s to %s", app.Status, req.Status),
		})
		return
	}

	app.Status = req.Status
	if err := ac.DB.Save(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update application: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateInterestStatus records the recruiter's decision on an investment
// interest, under the same ownership and transition rules as applications.
// @Summary Decide an investment interest
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Interest id"
// @Param Status body statusUpdateRequest true "Target status"
// @Success 200 {object} model.InvestmentInterest "Updated interest"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id, body or status value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the listing"
// @Failure 404 {object} utilities.ErrorResponse "Interest not found"
// @Failure 409 {object} utilities.ErrorResponse "Transition not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /interests/{id}/status [patch]
func (ac *ApplicationController) UpdateInterestStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid interest id"})
		return
	}

	req := statusUpdateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if !model.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid status value"})
		return
	}

	var interest model.InvestmentInterest
	if err := ac.DB.Where("id = ?", id).First(&interest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve interest: ", err),
		})
		return
	}

	if interest.RecruiterID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the listing owner can update interest status",
		})
		return
	}

	if !model.CanTransition(interest.Status, req.Status) {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: fmt.Sprintf("Cannot change status from %s to %s", interest.Status, req.Status),
		})
		return
	}

	interest.Status = req.Status
	if err := ac.DB.Save(&interest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update interest: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, interest)
}
