package db

import (
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pobsd/game"
	"pobsd/logger"
)

const batchSize = 100

// Open opens the SQLite database at dbPath and migrates the game table.
func Open(dbPath string) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		zap.NewStdLog(logger.ZapLogger),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := conn.AutoMigrate(&Game{}); err != nil {
		if sqlDB, dbErr := conn.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return conn, nil
}

// SaveGames replaces the content of the game table with games in a single
// transaction. UIDs must be distinct, as they are in a catalog.
func SaveGames(conn *gorm.DB, games []*game.Game) error {
	rows := make([]Game, len(games))
	for i, g := range games {
		rows[i] = NewGame(g)
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Game{}).Error; err != nil {
			return fmt.Errorf("failed to clear game table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert games: %w", err)
		}
		logger.Log.Infow("Games saved", zap.Int("count", len(rows)))
		return nil
	})
}

// Export writes games to a fresh snapshot at dbPath.
func Export(dbPath string, games []*game.Game) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return SaveGames(conn, games)
}
