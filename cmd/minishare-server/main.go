package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/config"
	"github.com/hailam/minishare/internal/httpapi"
	"github.com/hailam/minishare/internal/logging"
	"github.com/hailam/minishare/internal/preview"
	"github.com/hailam/minishare/internal/storage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath = flag.String("config", "", "config file (default: ./minishare.yaml or the user config dir)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	noStorage  = flag.Bool("no-storage", false, "serve the codec without saved positions")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	renderer, err := preview.NewRenderer(cfg.Preview.SquareSize)
	if err != nil {
		log.Fatal("could not load piece sprites: ", err)
	}

	h := &httpapi.Handlers{
		Renderer: renderer,
		BaseURL:  cfg.Server.BaseURL,
		Version:  version,
		Logger:   logger,
	}

	if !*noStorage {
		store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			log.Fatal("could not open storage: ", err)
		}
		defer store.Close()
		h.Store = store
		logger.Info("storage opened", zap.String("backend", cfg.Storage.Backend))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapi.NewServer(cfg.Server, h).Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
