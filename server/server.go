// Package server wires the share's HTTP surface: routes, middleware, port
// binding, and the startup banner.
package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quickdrop/config"
	"quickdrop/fileserver"
	"quickdrop/webui"
)

// Info describes the running share. It feeds the info endpoint and the
// connect page; producing it touches no filesystem state.
type Info struct {
	Sharing        bool   `json:"sharing"`
	RootFolderName string `json:"root_folder_name"`
	IP             string `json:"ip"`
	Port           int    `json:"port"`
}

// URL is the share address as reachable from other devices on the LAN.
func (i Info) URL() string {
	return "http://" + net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

// Server is the assembled HTTP surface over one shared directory. All
// fields are fixed before Serve is called; request handlers only read them.
type Server struct {
	cfg    config.Config
	log    zerolog.Logger
	share  *fileserver.Share
	ui     *webui.UI
	engine *gin.Engine
	info   Info
}

// New assembles the router. It fails when the listing template or an
// embedded UI document is unusable, so misconfiguration surfaces before any
// port is bound.
func New(cfg config.Config, ip string, log zerolog.Logger) (*Server, error) {
	share, err := fileserver.NewShare(cfg.Root, cfg.RootName, log)
	if err != nil {
		return nil, err
	}
	ui, err := webui.New()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(log), SecureHeaders())

	s := &Server{
		cfg:    cfg,
		log:    log,
		share:  share,
		ui:     ui,
		engine: engine,
		info: Info{
			Sharing:        true,
			RootFolderName: cfg.RootName,
			IP:             ip,
			Port:           cfg.Port,
		},
	}
	s.registerRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Port returns the port recorded by the last successful Listen.
func (s *Server) Port() int { return s.info.Port }

// URL returns the LAN-facing base URL of the share.
func (s *Server) URL() string { return s.info.URL() }

// Listen binds the configured port, walking forward when it is busy —
// another QuickDrop (or anything else) may already own it.
func (s *Server) Listen() (net.Listener, error) {
	const maxTries = 20
	for i := 0; i < maxTries; i++ {
		port := s.cfg.Port + i
		ln, err := net.Listen("tcp", s.cfg.Addr(port))
		if err != nil {
			// Only a busy port justifies walking forward. A bad host,
			// missing permission or exhausted descriptors would fail on
			// every port just the same.
			if errors.Is(err, syscall.EADDRINUSE) {
				s.log.Warn().Int("port", port).Msg("port busy, trying the next one")
				continue
			}
			return nil, err
		}
		s.info.Port = port
		return ln, nil
	}
	return nil, fmt.Errorf("no free port in %d..%d", s.cfg.Port, s.cfg.Port+maxTries-1)
}

// Serve prints the banner and blocks serving ln until the listener closes.
func (s *Server) Serve(ln net.Listener) error {
	s.printBanner()
	return http.Serve(ln, s.engine)
}

func (s *Server) printBanner() {
	fmt.Printf("\n  QuickDrop — sharing %s\n\n", s.cfg.Root)
	fmt.Printf("  Local:   http://localhost:%d\n", s.info.Port)
	fmt.Printf("  Network: %s\n\n", s.info.URL())
	fmt.Printf("  Open the network URL on any device in your LAN to browse the share.\n")
	fmt.Printf("  Press Ctrl+C to stop.\n\n")
}
