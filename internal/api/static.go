package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
)

// MountSite serves the built handbook from the output directory.
//
// The builder writes plain HTML (<route>/index.html plus an assets/ tree),
// so this is a disk mount rather than an embedded bundle: a rebuild is
// visible on the next request without restarting the server.
func MountSite(r *gin.Engine, outputDir string) {
	r.Use(static.Serve("/", static.LocalFile(outputDir, false)))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusNotFound, notFoundPage)
	})
}

const notFoundPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Page not found</title>
<link rel="stylesheet" href="/assets/site.css"></head>
<body class="site">
<main class="content">
<h1>404</h1>
<p>No page lives at this route. Head back to the <a href="/">handbook index</a>.</p>
</main>
</body>
</html>
`
