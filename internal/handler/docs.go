package handler

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Swagger UI is loaded from a CDN and pointed at /openapi.yaml.
//
//go:embed swagger.html
var swaggerHTML string

// SpecPath is where /openapi.yaml is read from, relative to the working
// directory. The file is read per request so edits show up without a rebuild.
var SpecPath = "api/openapi.yaml"

// RegisterDocs mounts documentation endpoints at the root:
//   - GET /openapi.yaml: raw OpenAPI document
//   - GET /docs: Swagger UI rendering of openapi.yaml
func RegisterDocs(r *gin.Engine) {
	r.GET("/openapi.yaml", func(c *gin.Context) {
		data, err := os.ReadFile(SpecPath)
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to read openapi spec: %v", err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
}
