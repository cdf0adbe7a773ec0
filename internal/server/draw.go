package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	historydomain "github.com/smallbiznis/whateat/internal/history/domain"
)

const contextDrawOutcomeKey = "draw_outcome"

// Draw runs one draw for the caller. Quota exhaustion and an empty eligible
// set are answered with 200 and an outcome, not an error status.
func (s *Server) Draw(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	filter, err := query.filter()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.drawSvc.Draw(c.Request.Context(), user.ID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Set(contextDrawOutcomeKey, string(result.Outcome))
	c.JSON(http.StatusOK, gin.H{"data": result.Response()})
}

func (s *Server) ListDrawRecords(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	entries, err := s.historySvc.RecentDraws(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	records := make([]historydomain.Response, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Response())
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"records": records}})
}

func (s *Server) GetDrawQuota(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	status, err := s.quotaSvc.Status(c.Request.Context(), user.ID, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}
