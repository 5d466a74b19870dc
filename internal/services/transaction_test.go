package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gamedex/internal/database"
	. "gamedex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) (*TransactionService, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "games_test.db")
	sql, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sql.AutoMigrate(&Game{}))

	return NewTransactionService(database.DB{SQL: sql}), sql
}

func transactionTestGame(t *testing.T) *Game {
	t.Helper()

	date, err := ParseDate("1995-03-11")
	require.NoError(t, err)

	return &Game{
		Name:        "Chrono Trigger",
		ReleaseDate: date,
		Studio:      "Square",
		Ratings:     10,
		Platforms:   datatypes.NewJSONSlice([]string{"SNES"}),
	}
}

func countGames(t *testing.T, sql *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, sql.Model(&Game{}).Count(&count).Error)
	return count
}

func TestTransactionService_ExecuteCommits(t *testing.T) {
	service, sql := setupTestService(t)

	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		return tx.Create(transactionTestGame(t)).Error
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countGames(t, sql))
}

func TestTransactionService_ExecuteRollsBackOnError(t *testing.T) {
	service, sql := setupTestService(t)
	expected := errors.New("boom")

	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(transactionTestGame(t)).Error; err != nil {
			return err
		}
		return expected
	})
	assert.ErrorIs(t, err, expected)

	assert.Equal(t, int64(0), countGames(t, sql))
}

func TestTransactionService_ExecuteRecoversPanic(t *testing.T) {
	service, sql := setupTestService(t)

	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(transactionTestGame(t)).Error; err != nil {
			return err
		}
		panic("boom")
	})
	assert.Error(t, err)

	assert.Equal(t, int64(0), countGames(t, sql))
}
