package middleware

import (
	"errors"
	"net/http"

	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// OnboardingGate guards an API group with the same decision the web app gets
// for page. A denied request gets 403 and the page to send the user to.
func OnboardingGate(nav *service.NavigationService, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Abort(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		decision, err := nav.AuthorizePath(c.Request.Context(), user.LearnerID, page)
		if err != nil {
			if errors.Is(err, util.ErrLearnerNotFound) {
				util.Unauthorized(c)
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		if !decision.Allow {
			util.Abort(c, http.StatusForbidden, "onboarding step required", decision)
			return
		}
		c.Next()
	}
}
