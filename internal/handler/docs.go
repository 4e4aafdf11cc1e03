package handler

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// OpenAPIPath is read on every request so the spec can be edited without a rebuild.
const OpenAPIPath = "api/openapi.yaml"

// Swagger UI is loaded from a CDN and pointed at /openapi.yaml.
//
//go:embed swagger.html
var swaggerHTML string

// RegisterDocs mounts GET /openapi.yaml and GET /docs at the root.
func RegisterDocs(r *gin.Engine) {
	r.GET("/openapi.yaml", func(c *gin.Context) {
		data, err := os.ReadFile(OpenAPIPath)
		if err != nil {
			c.String(http.StatusNotFound, "openapi spec not available")
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
}
