package core

import (
	"fmt"
	"log"

	"github.com/TMKSpace/anime-tmkspace/internal/animego"
	"github.com/TMKSpace/anime-tmkspace/internal/config"
	"github.com/TMKSpace/anime-tmkspace/internal/jobs"
	"github.com/TMKSpace/anime-tmkspace/internal/watchlist"
	"github.com/TMKSpace/anime-tmkspace/internal/websocket"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// App holds the core components of the application that are shared
// between the server and the CLI. It implements jobs.JobContext.
type App struct {
	cfg    *config.Config
	parser *animego.Client
	hub    *websocket.Hub
	jobMgr *jobs.JobManager
	watch  *watchlist.Store
}

// New sets up and returns a new App instance. It loads the
// configuration, builds the catalog client and starts the websocket hub.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app := NewWithConfig(cfg)
	log.Println("Core application setup complete.")
	return app, nil
}

// NewWithConfig wires an App from an already loaded configuration.
func NewWithConfig(cfg *config.Config) *App {
	app := &App{
		cfg:    cfg,
		parser: animego.New(cfg.Mirror, cfg.FetchTimeout()),
		hub:    websocket.NewHub(),
		watch:  watchlist.NewStore(),
	}
	app.jobMgr = jobs.NewManager(app)
	go app.hub.Run()
	return app
}

func (a *App) Config() *config.Config       { return a.cfg }
func (a *App) Parser() *animego.Client      { return a.parser }
func (a *App) WsHub() *websocket.Hub        { return a.hub }
func (a *App) JobManager() *jobs.JobManager { return a.jobMgr }
func (a *App) Watchlist() *watchlist.Store  { return a.watch }

// SetParser swaps the catalog client. Tests point it at a local fixture
// server.
func (a *App) SetParser(p *animego.Client) { a.parser = p }
