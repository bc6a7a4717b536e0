package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRateTables returns the organization's active rate tables. Useful for
// spotting configuration gaps: an estimate with suspiciously few categories
// usually means an empty table here.
func (s *Server) GetRateTables(c *gin.Context) {
	orgID := orgFromContext(c)
	tables, err := s.rateProvider.Load(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordRateTableLoad(c.Request.Context(), orgID.String())
	c.JSON(http.StatusOK, gin.H{"data": tables})
}
