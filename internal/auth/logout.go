package auth

import (
	"cofoundry-backend/internal/savedstore"
	"cofoundry-backend/internal/utilities"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LogoutController handles user logout by blacklisting JWT sessions
type LogoutController struct {
	BlacklistStore JwtBlacklistStore
	// Saved, when set, is cleared on logout so saved listings die with
	// the session.
	Saved *savedstore.Store
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(blacklistStore JwtBlacklistStore, saved *savedstore.Store) *LogoutController {
	return &LogoutController{
		BlacklistStore: blacklistStore,
		Saved:          saved,
	}
}

// LogoutHandler revokes the caller's session until the token would expire.
// @Summary Log out by revoking the current access token's session
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse "Successfully logged out"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Blacklist store failure"
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {

	claims, err := utilities.ExtractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = lc.BlacklistStore.AddToBlacklist(claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
		return
	}

	if lc.Saved != nil {
		if err := lc.Saved.Clear(c.Request.Context(), claims.ID); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
			return
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}
