package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhle/taskflow/internal/api"
	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/report"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/task"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("[taskflowd] loading config: %v", err)
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatalf("[taskflowd] opening store: %v", err)
	}
	defer s.Close()
	log.Printf("[taskflowd] using database %s", cfg.Database.Path)

	authSvc := auth.NewService(s, auth.NewPasswordHasher(cfg.Auth.BcryptCost))
	taskSvc := task.NewService(s)
	engine := report.NewEngine(s)

	server := api.NewServer(authSvc, taskSvc, engine)

	// Shut down cleanly on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("[taskflowd] shutting down")
		if err := server.Shutdown(); err != nil {
			log.Printf("[taskflowd] shutdown: %v", err)
		}
	}()

	log.Printf("[taskflowd] listening on %s", cfg.Server.Addr)
	if err := server.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("[taskflowd] server: %v", err)
	}
}
