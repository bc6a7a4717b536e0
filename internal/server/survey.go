package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
)

func (s *Server) CreateSurvey(c *gin.Context) {
	var req surveydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	row, err := s.surveySvc.Create(c.Request.Context(), orgFromContext(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordSurveyCreated(c.Request.Context(), string(row.HazardType))
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) GetSurvey(c *gin.Context) {
	row, err := s.surveySvc.Get(c.Request.Context(), orgFromContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) ListSurveys(c *gin.Context) {
	rows, err := s.surveySvc.List(c.Request.Context(), orgFromContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
