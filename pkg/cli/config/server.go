package config

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/m-mizutani/goerr/v2"
	controller "github.com/secmon-lab/demografi/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	CORSOrigins []string
	FrontendDir string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Category:    "Server",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("DEMOGRAFI_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Origin allowed to call the API from a browser (repeatable)",
			Category:    "Server",
			Sources:     cli.EnvVars("DEMOGRAFI_CORS_ORIGINS"),
			Destination: &s.CORSOrigins,
		},
		&cli.StringFlag{
			Name:        "frontend-dir",
			Usage:       "Serve the dashboard frontend from this directory instead of the embedded build",
			Category:    "Server",
			Sources:     cli.EnvVars("DEMOGRAFI_FRONTEND_DIR"),
			Destination: &s.FrontendDir,
		},
	}
}

// Configure returns the HTTP server configuration
func (s *Server) Configure() (*controller.Config, error) {
	cfg := &controller.Config{
		Addr:        s.Addr,
		CORSOrigins: s.CORSOrigins,
	}

	if s.FrontendDir != "" {
		stat, err := os.Stat(s.FrontendDir)
		if err != nil {
			return nil, goerr.Wrap(err, "frontend directory is not accessible", goerr.V("dir", s.FrontendDir))
		}
		if !stat.IsDir() {
			return nil, goerr.New("frontend path is not a directory", goerr.V("dir", s.FrontendDir))
		}
		cfg.Frontend = http.Dir(s.FrontendDir)
	}

	return cfg, nil
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Any("cors_origins", s.CORSOrigins),
		slog.String("frontend_dir", s.FrontendDir),
	)
}
