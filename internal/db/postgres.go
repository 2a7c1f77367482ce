package db

import (
  "fmt"
  "strings"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/types"
  "github.com/yungbote/wellspring-backend/internal/utils"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

  // Local development can run against a sqlite file instead of a full
  // postgres instance.
  if driver == "sqlite" {
    sqlitePath := utils.GetEnv("SQLITE_PATH", "wellspring.db", log)
    log.Info("Opening sqlite database...", "path", sqlitePath)
    sqliteDB, err := gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{
      TranslateError: true,
    })
    if err != nil {
      log.Error("Failed to open sqlite database", "error", err)
      return nil, fmt.Errorf("failed to open sqlite database: %w", err)
    }
    return &PostgresService{db: sqliteDB, log: serviceLog}, nil
  }

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "wellspring", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    TranslateError: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.WeeklyPlan{},
    &types.PlanItem{},
    &types.Adaptation{},
    &types.CoreFiveLog{},
    &types.PlanGenerationRun{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
