package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/whateat/internal/auth/domain"
	obscontext "github.com/smallbiznis/whateat/internal/observability/context"
)

const contextUserKey = "user"

// AuthRequired resolves the bearer token to a user and stores it on the
// request for downstream handlers.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), user.ID.String()))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(strings.TrimSpace(header))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}
