package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"corrlens/adapters/corrapi"
	"corrlens/adapters/postgres"
	"corrlens/adapters/stats/engine"
	"corrlens/app"
	"corrlens/internal/config"
	"corrlens/ports"
	"corrlens/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] invalid configuration: %v", err)
	}

	var repo ports.AnalysisRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("[Main] failed to connect to database: %v", err)
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("[Main] failed to migrate database: %v", err)
		}
		repo = postgres.NewAnalysisRepository(db)
		log.Printf("[Main] run persistence enabled")
	} else {
		log.Printf("[Main] DATABASE_URL not set, run persistence disabled")
	}

	var source ports.MatrixSource
	var series ports.SeriesSource
	var pairs ports.PairSource
	if cfg.Correlation.Source == config.SourceRemote {
		client := corrapi.NewClient(corrapi.Config{
			BaseURL: cfg.Correlation.ServiceURL,
			APIKey:  cfg.Correlation.ServiceAPIKey,
			Timeout: cfg.Correlation.Timeout,
		})
		source = client
		series = client
		pairs = client
		log.Printf("[Main] using remote correlation service at %s", cfg.Correlation.ServiceURL)
	} else {
		source = engine.NewLocalSource()
		log.Printf("[Main] using local correlation engine")
	}

	analysis := app.NewAnalysisService(source, pairs, repo)
	timeseries := app.NewTimeSeriesService(series)

	server := ui.NewApp(cfg, analysis, timeseries, repo)
	log.Printf("[Main] listening on :%s", cfg.Server.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("[Main] server stopped: %v", err)
	}
}
