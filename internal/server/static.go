package server

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

//go:embed static
var embeddedStatic embed.FS

const (
	indexPage = "index.html"
	notesPage = "notes.html"
)

// Static serves the two pages and the asset tree, from disk when a
// directory is configured and from the embedded copy otherwise.
type Static struct {
	fsys  fs.FS
	files http.Handler
}

func NewStatic(dir string) (*Static, error) {
	var fsys fs.FS
	if dir != "" {
		st, err := os.Stat(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "static dir %s", dir)
		}
		if !st.IsDir() {
			return nil, errors.Errorf("static dir %s is not a directory", dir)
		}
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embeddedStatic, "static")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	return &Static{fsys: fsys, files: http.FileServer(http.FS(fsys))}, nil
}

func (s *Static) NotesPage(c *gin.Context) {
	s.servePage(c, notesPage)
}

func (s *Static) IndexPage(c *gin.Context) {
	s.servePage(c, indexPage)
}

// Fallback handles every unrouted request. /api paths get a JSON 404.
func (s *Static) Fallback(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api") {
		writeError(c, http.StatusNotFound, "Not found")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "Cannot %s %s", c.Request.Method, p)
		return
	}

	name := strings.TrimPrefix(path.Clean(p), "/")
	if name != "" && name != indexPage && s.isFile(name) {
		c.Header("Cache-Control", "public, max-age=0")
		s.files.ServeHTTP(c.Writer, c.Request)
		return
	}
	s.IndexPage(c)
}

func (s *Static) isFile(name string) bool {
	st, err := fs.Stat(s.fsys, name)
	return err == nil && !st.IsDir()
}

func (s *Static) servePage(c *gin.Context, name string) {
	content, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}

// ListFiles returns every file the static server can deliver.
func (s *Static) ListFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
