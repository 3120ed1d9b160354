package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sidehustle-starter/coach-api/config"
	"github.com/sidehustle-starter/coach-api/internal/app"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := app.Run(cfg, logger); err != nil {
		logger.Error("app stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
