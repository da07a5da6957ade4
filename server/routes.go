package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickdrop/webui"
)

// registerRoutes wires all endpoints. The wildcard routes hand the virtual
// path to the fileserver handlers; gin has already URL-decoded it.
func (s *Server) registerRoutes() {
	e := s.engine

	e.GET("/", s.handleConnect)
	e.GET("/files", s.handleFilesPage)
	e.GET("/qr.png", s.handleQR)
	e.GET("/healthz", s.handleHealth)

	e.GET("/api/info", s.handleInfo)
	e.GET("/api/files/*path", s.share.HandleList)
	e.GET("/browse/*path", s.share.HandleBrowse)
	e.GET("/download/*path", s.share.HandleDownload)
}

// handleConnect serves the landing page with the share URL and QR code.
func (s *Server) handleConnect(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := s.ui.RenderConnect(c.Writer, webui.ConnectData{
		RootName: s.info.RootFolderName,
		URL:      s.info.URL(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("rendering connect page")
	}
}

// handleFilesPage serves the file-browser UI document verbatim.
func (s *Server) handleFilesPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.ui.FilesPage())
}

// handleQR serves the share URL as a QR code image.
func (s *Server) handleQR(c *gin.Context) {
	png, err := webui.QRPNG(s.info.URL() + "/files")
	if err != nil {
		s.log.Error().Err(err).Msg("encoding QR code")
		c.String(http.StatusInternalServerError, "QR code unavailable")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// handleInfo reports share metadata from startup state only.
func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.info)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
