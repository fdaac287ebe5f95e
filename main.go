// @title StudySet Backend API
// @version 1.0
// @description Backend server for the StudySet learning platform: courses, practice tests and scored attempt history.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"studyset_backend/internal/app"
	"studyset_backend/internal/config"
	"studyset_backend/pkg/configwatcher"
	"studyset_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	watch := flag.Bool("watch-config", false, "reload config on file change")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(*configDir+"/config.yaml", application.ReloadConfig)
	}

	application.Run()
}
