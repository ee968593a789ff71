package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/yourusername/trivia-quiz-api/internal/config"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
	"github.com/yourusername/trivia-quiz-api/pkg/database"
)

// Утилита управления миграциями без запуска API:
//
//	migrate -cmd up
//	migrate -cmd down -steps 1
//	migrate -cmd force -version 1   (снять dirty-состояние после упавшей миграции)
//	migrate -cmd version
func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	command := flag.String("cmd", "up", "команда: up, down, force, version")
	steps := flag.Int("steps", 1, "сколько миграций откатить для down")
	version := flag.Int("version", -1, "версия для force")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logging.New(config.AppConfig{Name: "trivia-migrate"}, config.LogConfig{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(cfg.App, cfg.Log)

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	m, err := database.NewMigrator(db, cfg.Database.MigrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "force":
		if *version < 0 {
			log.Fatal().Msg("-version is required for force")
		}
		err = m.Force(*version)
	case "version":
	default:
		log.Error().Str("cmd", *command).Msg("unknown command")
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", *command).Msg("migration failed")
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrateV4.ErrNilVersion) {
		log.Fatal().Err(err).Msg("failed to read migration version")
	}
	log.Info().Str("cmd", *command).Uint("version", current).Bool("dirty", dirty).Msg("done")
}
