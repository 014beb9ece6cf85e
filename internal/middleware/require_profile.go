package middleware

import (
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/utilities"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireProfile protects an endpoint from users who hold no profile of any
// of the given kinds. There is no role field anywhere: owning a profile row
// in a role collection is what grants access to that role's surface.
func RequireProfile(db *database.DBinstanceStruct, kinds ...model.ProfileKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		for _, kind := range kinds {
			ok, err := model.HasProfile(db.DB, kind, user.ID)
			if err != nil {
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
					Error: fmt.Sprintf("Failed to check profile: %s", err.Error()),
				})
				return
			}
			if ok {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "User doesn't have permission to access",
		})
	}
}
