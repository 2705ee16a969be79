package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/middleware"
	"github.com/smk-nusantara/cms-api/internal/service"
)

// actorFrom builds the audit actor from the authenticated request.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
	if claims, ok := middleware.CurrentClaims(c); ok {
		actor.UserID = claims.UserID
	}
	return actor
}
