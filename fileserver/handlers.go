package fileserver

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quickdrop/templates"
)

//go:embed browse.html
var browseTemplate string

// Share exposes one read-only directory tree over HTTP. The root path is
// canonical and immutable for the process lifetime, so handlers read it
// concurrently without locking.
type Share struct {
	root     string
	rootName string
	log      zerolog.Logger
	tpl      *template.Template
}

// NewShare builds the handler set for a canonical root. The listing template
// is parsed up front so a broken build fails at startup, not on first browse.
func NewShare(root, rootName string, log zerolog.Logger) (*Share, error) {
	tpl, err := templates.New("browse").Parse(browseTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing browse template: %w", err)
	}
	return &Share{root: root, rootName: rootName, log: log, tpl: tpl}, nil
}

// bufPool is used to increase the efficiency of rendered listings.
var bufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// browsePage is the data handed to the listing template.
type browsePage struct {
	*Listing
	RootName string
}

// HandleList is GET /api/files/*path: resolve, then emit the directory's
// entries as a JSON array.
func (s *Share) HandleList(c *gin.Context) {
	resolved, err := Resolve(s.root, c.Param("path"))
	if err != nil {
		s.abort(c, err)
		return
	}
	listing, err := List(resolved)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, listing.Entries)
}

// HandleBrowse is GET /browse/*path: the rendered HTML listing. A path that
// resolves to a file redirects to its download URL so pasted links still do
// something sensible.
func (s *Share) HandleBrowse(c *gin.Context) {
	resolved, err := Resolve(s.root, c.Param("path"))
	if err != nil {
		s.abort(c, err)
		return
	}
	if !resolved.IsDir() {
		c.Redirect(http.StatusFound, "/download/"+templates.PathEscape(resolved.VirtualPath))
		return
	}
	listing, err := List(resolved)
	if err != nil {
		s.abort(c, err)
		return
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := s.tpl.Execute(buf, browsePage{Listing: listing, RootName: s.rootName}); err != nil {
		s.log.Error().Err(err).Str("path", resolved.VirtualPath).Msg("rendering listing")
		c.String(http.StatusInternalServerError, "listing could not be rendered")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// HandleDownload is GET /download/*path: resolve, then stream the file as an
// attachment. Directories are reported as missing, never streamed.
func (s *Share) HandleDownload(c *gin.Context) {
	resolved, err := Resolve(s.root, c.Param("path"))
	if err != nil {
		s.abort(c, err)
		return
	}
	if resolved.IsDir() {
		s.abort(c, Errorf(KindNotFound, "%q is a directory", resolved.VirtualPath))
		return
	}
	if err := ServeDownload(c.Writer, c.Request, resolved); err != nil {
		s.abort(c, err)
	}
}

// abort is the single spot where error kinds become HTTP statuses.
func (s *Share) abort(c *gin.Context, err error) {
	status := http.StatusNotFound
	msg := "not found"
	if KindOf(err) == KindForbidden {
		status = http.StatusForbidden
		msg = "path is outside the shared folder"
	}

	evt := s.log.Warn()
	if KindOf(err) == KindNotFound {
		evt = s.log.Debug()
	}
	evt.Err(err).Str("path", c.Request.URL.Path).Msg("request rejected")

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
