package db

import (
	"log"
	"time"

	"social-api/configs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	"gorm.io/plugin/opentelemetry/tracing"
)

type Store struct{ DB *gorm.DB }

// Open connects with exponential backoff; container orchestration may
// bring the database up after the service.
func Open(cfg *configs.Config) *Store {
	var last error
	var g *gorm.DB
	for i := 0; i < 8; i++ {
		g, last = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if last == nil {
			break
		}
		time.Sleep(time.Duration(1<<i) * time.Second)
	}
	if last != nil {
		log.Fatalf("db open failed: %v", last)
	}

	if replica := cfg.ReplicaDSN(); replica != "" {
		if err := g.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replica)},
		})); err != nil {
			log.Fatalf("db resolver: %v", err)
		}
	}
	if cfg.OTELEndpoint != "" {
		if err := g.Use(tracing.NewPlugin()); err != nil {
			log.Printf("db tracing plugin: %v", err)
		}
	}

	sqlDB, err := g.DB()
	if err != nil {
		log.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Store{DB: g}
}
