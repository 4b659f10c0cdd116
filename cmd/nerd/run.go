package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spanworks/nerd/config"
	"github.com/spanworks/nerd/pkg/extractor"
	"github.com/spanworks/nerd/pkg/models"
	"github.com/spanworks/nerd/pkg/server"
)

const ShutdownTimeout = 10 * time.Second

// run is the entrypoint for the nerd server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring nerd: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting nerd server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	srv := server.Create(appState)
	setupSignalHandler(srv)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV and
// initializes the entity extractor
func NewAppState(cfg *config.Config) *models.AppState {
	ext := extractor.NewExtractor(cfg)
	appState := &models.AppState{
		Extractor: ext,
		Config:    cfg,
	}

	if cfg.Model.Preload {
		if err := ext.Load(context.Background()); err != nil {
			log.Fatalf("Failed to load model: %s", err)
		}
	} else {
		log.Info("Model preload disabled; loading lazily on first request")
	}

	return appState
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}

// setupSignalHandler sets up a signal handler to shut the server down
// gracefully on termination
func setupSignalHandler(srv *http.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("Shutting down nerd server...")
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()
}
