package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/cleaning-service-api/internal/config"
	"github.com/iliyamo/cleaning-service-api/internal/database"
	"github.com/iliyamo/cleaning-service-api/internal/handler"
	"github.com/iliyamo/cleaning-service-api/internal/queue"
	"github.com/iliyamo/cleaning-service-api/internal/repository"
	"github.com/iliyamo/cleaning-service-api/internal/router"
	"github.com/iliyamo/cleaning-service-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: nil disables rate limiting and catalog caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	services := repository.NewServiceRepo(db)
	bookings := repository.NewBookingRepo(db)
	manager := service.NewBookingService(bookings, services)

	e := router.New(cfg,
		rdb,
		handler.NewAuthHandler(cfg, users),
		handler.NewServiceHandler(services),
		handler.NewBookingHandler(manager),
	)

	// Audit-log consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
