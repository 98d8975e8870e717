package main

import (
	"log"

	"github.com/FelixBlom97/EloStealo/app"
	"github.com/FelixBlom97/EloStealo/app/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	app.MustInitStore(cfg)
	app.InitPublisher(cfg)
	router := app.NewRouter(cfg)
	if err := router.Run(cfg.HTTP.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
