package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListFoods(c *gin.Context) {
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

	foods, err := s.catalogSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": foods})
}

func (s *Server) GetFoodByID(c *gin.Context) {
	food, err := s.catalogSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": food})
}

func (s *Server) ListFoodCategories(c *gin.Context) {
	categories, err := s.catalogSvc.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}
