package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"quickdrop/config"
	"quickdrop/network"
	"quickdrop/server"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "path to config toml (optional)")
		root      = flag.String("root", "", "folder to share (required if -config is not set)")
		port      = flag.Int("p", 0, "port to listen on (default 5000)")
		host      = flag.String("host", "", "bind address (default: all interfaces)")
		noBrowser = flag.Bool("no-browser", false, "do not open the local browser on startup")
		debug     = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}

	// Flags override the file.
	if *root != "" {
		cfg.Root = *root
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}

	if err := cfg.Finalize(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	srv, err := server.New(cfg, network.LocalIP(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("server init")
	}

	ln, err := srv.Listen()
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}

	log.Info().Str("root", cfg.Root).Str("url", srv.URL()).Msg("sharing")

	if cfg.OpenBrowser {
		// Give the server a moment to start accepting before the browser hits it.
		url := fmt.Sprintf("http://127.0.0.1:%d/", srv.Port())
		time.AfterFunc(time.Second, func() {
			if err := openBrowser(url); err != nil {
				log.Debug().Err(err).Msg("could not open browser")
			}
		})
	}

	if err := srv.Serve(ln); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// openBrowser is fire-and-forget glue around the platform opener.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
