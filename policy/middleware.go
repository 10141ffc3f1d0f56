package policy

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonmarket-backend/repository"
	"salonmarket-backend/utils"
)

// Loader resolves the resource a request targets.
type Loader func(c *gin.Context) (Resource, error)

// Require aborts the request unless p allows the caller on the loaded resource.
// A nil loader evaluates p against an empty resource, which suits role-only checks.
func Require(p Policy, load Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := utils.CurrentUserID(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return
		}
		subject := Subject{UserID: userID, Role: utils.CurrentRole(c)}

		var resource Resource
		if load != nil {
			var err error
			resource, err = load(c)
			switch {
			case err == nil:
			case errors.Is(err, repository.ErrNotFound):
				utils.RespondWithError(c, http.StatusNotFound, "Resource not found")
				return
			case errors.Is(err, ErrBadResourceID):
				utils.RespondWithError(c, http.StatusBadRequest, err.Error())
				return
			default:
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}

		if !p.Allow(subject, resource) {
			utils.RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
			return
		}
		c.Next()
	}
}

// ErrBadResourceID is returned by loaders when the path id cannot be parsed.
var ErrBadResourceID = errors.New("invalid resource id")
