package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templatesFS embed.FS

//go:embed public
var publicFS embed.FS

// Templates parses the embedded layout and page templates.
// Pages are rendered by name, e.g. "index".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/layouts/*.html", "templates/*.html")
}

// Register installs the embedded templates as the engine's HTML renderer.
func Register(r *gin.Engine) error {
	t, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(t)
	return nil
}

// StaticHandler serves files from the embedded public directory. It is meant
// to be installed with NoRoute so that routes always win over assets.
func StaticHandler() gin.HandlerFunc {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic("views: embedded public dir missing: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		name := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
		st, err := fs.Stat(sub, name)
		if name == "" || err != nil || st.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
