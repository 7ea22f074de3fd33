package main

import (
	"log"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/app"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
