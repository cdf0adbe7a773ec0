package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type userInfoResponse struct {
	ID                  string    `json:"id"`
	Username            *string   `json:"username"`
	Nickname            string    `json:"nickname"`
	AvatarURL           *string   `json:"avatar_url"`
	CreatedAt           time.Time `json:"created_at"`
	TodayRemainingTimes int       `json:"today_remaining_times"`
	DailyFreeTimes      int       `json:"daily_free_times"`
}

func (s *Server) GetUserInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	remaining, err := s.quotaSvc.Remaining(c.Request.Context(), user.ID, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": userInfoResponse{
		ID:                  user.ID.String(),
		Username:            user.Username,
		Nickname:            user.DisplayName(),
		AvatarURL:           user.AvatarURL,
		CreatedAt:           user.CreatedAt.UTC(),
		TodayRemainingTimes: remaining,
		DailyFreeTimes:      s.drawCfg.Get().DailyFreeLimit,
	}})
}
