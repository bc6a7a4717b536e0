package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const orgHeader = "X-Org-ID"

// RequireOrg resolves the organization from the request header, falling
// back to the configured default for single-tenant deployments.
func (s *Server) RequireOrg() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(orgHeader))
		if raw == "" && s.cfg.DefaultOrgID != 0 {
			c.Set("org_id", snowflake.ID(s.cfg.DefaultOrgID))
			c.Next()
			return
		}

		orgID, err := snowflake.ParseString(raw)
		if err != nil || orgID == 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		c.Set("org_id", orgID)
		c.Next()
	}
}

func orgFromContext(c *gin.Context) snowflake.ID {
	if value, ok := c.Get("org_id"); ok {
		if orgID, ok := value.(snowflake.ID); ok {
			return orgID
		}
	}
	return 0
}
