package handler

import (
	"evtc/internal/handler/response"
	"evtc/pkg/version"

	"github.com/gin-gonic/gin"
)

// HealthCheck service 为 evtd 或 evtwd
func HealthCheck(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, gin.H{
			"status":  "UP",
			"version": version.Version,
			"service": service,
		})
	}
}
