package monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware counting successful scrapes
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			metrics.Scrapes.Inc()
		}
	}
}
