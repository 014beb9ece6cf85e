// Package user provides HTTP handlers for the signed-in account itself:
// fetching the account record and managing the UI theme preference.
package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/theme"
	"cofoundry-backend/internal/utilities"
)

// UserController handles account-level endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

// ThemeResponse carries the stored preference and the theme it resolves to.
type ThemeResponse struct {
	Preference string `json:"preference"`
	Theme      string `json:"theme"`
}

// themeRequest is the body for storing a preference.
type themeRequest struct {
	Preference string `json:"preference"`
}

// GetMe returns the caller's account record.
// @Summary Get the caller's account
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User "The caller's account"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetTheme returns the caller's stored theme preference and its resolution.
// An account that never chose resolves to dark.
// @Summary Get the caller's theme
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} ThemeResponse "Stored preference and effective theme"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /me/theme [get]
func (uc *UserController) GetTheme(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{
		Preference: user.ThemePreference,
		Theme:      theme.Resolve(user.ThemePreference),
	})
}

// SetTheme stores the caller's theme preference.
// @Summary Store the caller's theme preference
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Theme body themeRequest true "Theme preference"
// @Success 200 {object} ThemeResponse "Stored preference and effective theme"
// @Failure 400 {object} utilities.ErrorResponse "Unknown preference value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /me/theme [put]
func (uc *UserController) SetTheme(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	req := themeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if !theme.IsValidPreference(req.Preference) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Unknown theme preference"})
		return
	}

	user.ThemePreference = req.Preference
	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to store theme preference: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{
		Preference: user.ThemePreference,
		Theme:      theme.Resolve(user.ThemePreference),
	})
}
