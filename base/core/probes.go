package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, "ok")
}

// Readiness reports ready once check passes
func Readiness(check func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, "ok")
	}
}

func InitProbes(app *gin.Engine, readyCheck func() error) {
	app.GET("/healthz", Liveness)
	app.GET("/livez", Liveness)
	app.GET("/readyz", Readiness(readyCheck))
}
