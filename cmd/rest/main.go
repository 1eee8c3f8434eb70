package main

import (
	"context"
	"log"

	"hiking-portal-be/internal/bootstrap"
	"hiking-portal-be/internal/config"
	"hiking-portal-be/internal/server"
	"hiking-portal-be/internal/tracer"
	"hiking-portal-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Retention.Validate(); err != nil {
		log.Fatalf("Invalid retention policy: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Activity Consumer...")
		if err := container.ActivityService.Consume(context.Background()); err != nil {
			log.Printf("Background Activity Consumer Error: %v", err)
		}
	}()

	if err := container.RetentionScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Unable to start retention scheduler: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
