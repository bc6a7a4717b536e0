package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	estimatedomain "github.com/markahope-aag/hazardos-sub007/internal/estimate/domain"
)

// EstimateSurvey prices a stored survey with the organization's calculator.
// Nothing is persisted; the estimate lives only in the response.
func (s *Server) EstimateSurvey(c *gin.Context) {
	var opts estimatedomain.Options
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	orgID := orgFromContext(c)
	row, err := s.surveySvc.Get(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	calculator := s.estimateFactory.Calculator(orgID)
	result, err := calculator.CalculateFromSurvey(c.Request.Context(), row, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordEstimateComputed(c.Request.Context(), string(row.HazardType), len(result.LineItems))
	c.JSON(http.StatusOK, gin.H{"data": result})
}
