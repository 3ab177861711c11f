package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"

	"workgen/internal/config"
	"workgen/internal/container"
	"workgen/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if appConfig.Database.Enabled() {
		if err := appContainer.InitWithDatabase(ctx); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	} else {
		log.Println("No DATABASE_URL configured, sessions are kept in memory only")
	}

	if err := appContainer.InitServices(); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	appContainer.Sweeper.Start(ctx)

	server := ui.NewServer(ui.Services{
		Sessions: appContainer.Sessions,
		Upload:   appContainer.Upload,
		Projects: appContainer.Projects,
		Insights: appContainer.Insights,
		Reports:  appContainer.Reports,
		EDA:      appContainer.EDA,
		Archive:  appContainer.History,
	}, appConfig.Data.MaxUploadBytes())

	application, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, server)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
