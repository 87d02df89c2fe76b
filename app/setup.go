package app

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/willowgate/school-api/api"
	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/database"
	"github.com/willowgate/school-api/router"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/services/cron"
	"github.com/willowgate/school-api/utils/cache"
)

func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := database.StartGORM(cfg)
	if err != nil {
		log.Println("Check whether Postgres is running and reachable")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Error running migrations")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("unexpected database handle type")
	}

	if err := database.SeedDefaultAdmin(db, cfg); err != nil {
		return err
	}

	// Redis backs rate limiting only; the API stays up without it
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: failed to connect to Redis, rate limiting disabled: %v", err)
		redisCache = nil
	}

	var cronManager *cron.CronManager
	if cfg.CronEnabled {
		cronManager = cron.NewCronManager(db, cfg, services.NewAuthService(db, cfg))
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.Port), store)
	app := server.GetEngine()

	router.SetupRoutes(app, store, cfg, redisCache)

	return server.Run()
}
