package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/simplechess/internal/config"
	"github.com/benbeisheim/simplechess/internal/controller"
	"github.com/benbeisheim/simplechess/internal/service"
	"github.com/benbeisheim/simplechess/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var recorder service.Recorder
	if cfg.StoragePath != "" {
		store, err := storage.NewStore(cfg.StoragePath, cfg.Dev)
		if err != nil {
			log.Fatalf("failed to open storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}
		defer store.Close()
		recorder = store
		log.Printf("persisting games to %s", cfg.StoragePath)
	}

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, recorder)

	app := controller.NewApp(gameService, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Printf("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
