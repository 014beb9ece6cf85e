// Package profile provides HTTP handlers for role-profile lifecycle:
// create-or-overwrite, fetch own profile, and partial update, for each of
// the developer, recruiter and investor role collections.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/utilities"
)

// ProfileController handles role-profile related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// kindFromParam resolves the :role path segment to a profile kind.
func kindFromParam(c *gin.Context) (model.ProfileKind, bool) {
	switch model.ProfileKind(c.Param("role")) {
	case model.KindDeveloper:
		return model.KindDeveloper, true
	case model.KindRecruiter:
		return model.KindRecruiter, true
	case model.KindInvestor:
		return model.KindInvestor, true
	}
	c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Unknown profile role"})
	return "", false
}

// UpsertProfile creates or overwrites the caller's profile for a role.
// Resubmission replaces the stored document rather than failing.
// @Summary Create or replace the caller's profile for a role
// @Description Writes the whole document for the (role, uid) pair; an existing profile is overwritten.
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role path string true "Profile role" Enums(developer, recruiter, investor)
// @Success 201 {object} model.DeveloperProfile "Profile stored"
// @Failure 400 {object} utilities.ErrorResponse "Invalid role or request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/{role} [post]
func (pc *ProfileController) UpsertProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	kind, ok := kindFromParam(c)
	if !ok {
		return
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	var stored any
	switch kind {
	case model.KindDeveloper:
		p := model.DeveloperProfile{UserID: user.ID}
		if err := decoder.Decode(&p.EditableDeveloperInfo); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		err = pc.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
		stored = p
	case model.KindRecruiter:
		p := model.RecruiterProfile{UserID: user.ID}
		if err := decoder.Decode(&p.EditableRecruiterInfo); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		err = pc.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
		stored = p
	case model.KindInvestor:
		p := model.InvestorProfile{UserID: user.ID}
		if err := decoder.Decode(&p.EditableInvestorInfo); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		err = pc.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
		stored = p
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to store profile: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// GetMyProfile returns the caller's profile for a role, or 404 when the
// caller holds no profile of that kind.
// @Summary Get the caller's profile for a role
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role path string true "Profile role" Enums(developer, recruiter, investor)
// @Success 200 {object} model.DeveloperProfile "The caller's profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile for this role"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/{role}/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	kind, ok := kindFromParam(c)
	if !ok {
		return
	}

	var profile any
	switch kind {
	case model.KindDeveloper:
		p := model.DeveloperProfile{}
		err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error
		profile = p
	case model.KindRecruiter:
		p := model.RecruiterProfile{}
		err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error
		profile = p
	case model.KindInvestor:
		p := model.InvestorProfile{}
		err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error
		profile = p
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to retrieve profile: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile partially updates the caller's profile for a role. Only
// non-empty fields of the request body are applied.
// @Summary Partially update the caller's profile for a role
// @Description Empty fields in the body leave the stored value untouched.
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role path string true "Profile role" Enums(developer, recruiter, investor)
// @Success 200 {object} model.DeveloperProfile "Updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid role or request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile for this role"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/{role} [patch]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	kind, ok := kindFromParam(c)
	if !ok {
		return
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	var updated any
	switch kind {
	case model.KindDeveloper:
		var p model.DeveloperProfile
		if err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
			break
		}
		patch := model.EditableDeveloperInfo{}
		if err := decoder.Decode(&patch); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		utilities.MergeNonEmpty(&p.EditableDeveloperInfo, &patch)
		err = pc.DB.Save(&p).Error
		updated = p
	case model.KindRecruiter:
		var p model.RecruiterProfile
		if err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
			break
		}
		patch := model.EditableRecruiterInfo{}
		if err := decoder.Decode(&patch); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		utilities.MergeNonEmpty(&p.EditableRecruiterInfo, &patch)
		err = pc.DB.Save(&p).Error
		updated = p
	case model.KindInvestor:
		var p model.InvestorProfile
		if err = pc.DB.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
			break
		}
		patch := model.EditableInvestorInfo{}
		if err := decoder.Decode(&patch); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
		utilities.MergeNonEmpty(&p.EditableInvestorInfo, &patch)
		err = pc.DB.Save(&p).Error
		updated = p
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update profile: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
