package server

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

const indexFile = "/index.html"

// serveFrontend is the catch-all for paths no API route claims. A path
// naming a regular file in the static directory is served as-is; any other
// path gets index.html so the frontend can route it.
func (s *Server) serveFrontend(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		writeError(c, http.StatusNotFound, "not found")
		return
	}

	name := path.Clean("/" + c.Request.URL.Path)
	if name != "/" && s.serveStatic(c, name) {
		return
	}
	if s.serveStatic(c, indexFile) {
		return
	}
	writeError(c, http.StatusNotFound, "not found")
}

// serveStatic writes the named file if it exists and is not a directory.
// http.Dir confines name to the static directory.
func (s *Server) serveStatic(c *gin.Context, name string) bool {
	f, err := s.static.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	c.Status(http.StatusOK)
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}
