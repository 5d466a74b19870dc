package gamesController

import (
	"context"
	"path/filepath"
	"testing"

	"gamedex/config"
	"gamedex/internal/database"
	. "gamedex/internal/models"
	"gamedex/internal/repositories"
	"gamedex/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestController(t *testing.T) GameControllerInterface {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "games_test.db")
	sql, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sql.AutoMigrate(&Game{}))

	db := database.DB{SQL: sql}
	return New(repositories.New(), services.New(db), config.Config{}, db)
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func chronoRequest() *CreateGameRequest {
	return &CreateGameRequest{
		Name:        "Chrono Trigger",
		ReleaseDate: "1995-03-11",
		Studio:      "Square",
		Ratings:     intPtr(10),
		Platforms:   []string{"SNES"},
	}
}

func TestCreateGame_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateGameRequest)
		message string
	}{
		{
			name:    "Missing name",
			mutate:  func(r *CreateGameRequest) { r.Name = "" },
			message: "name is required",
		},
		{
			name:    "Missing release date",
			mutate:  func(r *CreateGameRequest) { r.ReleaseDate = "" },
			message: "release_date is required",
		},
		{
			name:    "Malformed release date",
			mutate:  func(r *CreateGameRequest) { r.ReleaseDate = "March 11th 1995" },
			message: "invalid date",
		},
		{
			name:    "Missing studio",
			mutate:  func(r *CreateGameRequest) { r.Studio = "" },
			message: "studio is required",
		},
		{
			name:    "Missing ratings",
			mutate:  func(r *CreateGameRequest) { r.Ratings = nil },
			message: "ratings is required",
		},
		{
			name:    "Missing platforms",
			mutate:  func(r *CreateGameRequest) { r.Platforms = nil },
			message: "platforms is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(t)

			request := chronoRequest()
			tt.mutate(request)

			_, err := controller.CreateGame(context.Background(), request)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreateGame_EmptyPlatformsAllowed(t *testing.T) {
	controller := newTestController(t)

	request := chronoRequest()
	request.Platforms = []string{}

	game, err := controller.CreateGame(context.Background(), request)
	require.NoError(t, err)
	assert.Empty(t, []string(game.Platforms))
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	created, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	game, err := controller.GetGame(ctx, "Chrono Trigger")
	require.NoError(t, err)

	assert.Equal(t, created.Name, game.Name)
	assert.Equal(t, "1995-03-11", game.ReleaseDate.String())
	assert.Equal(t, "Square", game.Studio)
	assert.Equal(t, 10, game.Ratings)
	assert.Equal(t, []string{"SNES"}, []string(game.Platforms))
}

func TestCreateGame_DuplicateName(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	duplicate := chronoRequest()
	duplicate.Studio = "Not Square"
	_, err = controller.CreateGame(ctx, duplicate)
	assert.ErrorIs(t, err, ErrGameExists)

	// Original row is untouched
	game, err := controller.GetGame(ctx, "Chrono Trigger")
	require.NoError(t, err)
	assert.Equal(t, "Square", game.Studio)
}

func TestGetGame_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.GetGame(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestPatchGame_RatingsOnly(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	game, err := controller.PatchGame(ctx, "Chrono Trigger", &PatchGameRequest{
		Ratings: intPtr(7),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, game.Ratings)
	assert.Equal(t, "Square", game.Studio)
	assert.Equal(t, "1995-03-11", game.ReleaseDate.String())
	assert.Equal(t, []string{"SNES"}, []string(game.Platforms))
}

func TestPatchGame_EmptyBodyIsNoOp(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	game, err := controller.PatchGame(ctx, "Chrono Trigger", &PatchGameRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, game.Ratings)
}

func TestPatchGame_Validation(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	_, err = controller.PatchGame(ctx, "Chrono Trigger", &PatchGameRequest{
		Studio: strPtr(""),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = controller.PatchGame(ctx, "Chrono Trigger", &PatchGameRequest{
		ReleaseDate: strPtr("11-03-1995"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPatchGame_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.PatchGame(context.Background(), "Missing", &PatchGameRequest{
		Ratings: intPtr(7),
	})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestReplaceGame_FullReplace(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	game, err := controller.ReplaceGame(ctx, "Chrono Trigger", &ReplaceGameRequest{
		ReleaseDate: "2008-11-25",
		Studio:      "Square Enix",
		Ratings:     intPtr(9),
		Platforms:   []string{"DS"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Chrono Trigger", game.Name)
	assert.Equal(t, "2008-11-25", game.ReleaseDate.String())
	assert.Equal(t, "Square Enix", game.Studio)
	assert.Equal(t, 9, game.Ratings)
	assert.Equal(t, []string{"DS"}, []string(game.Platforms))
}

func TestReplaceGame_RequiresEveryField(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	// Omitted fields are not preserved from the prior row; they are rejected
	_, err = controller.ReplaceGame(ctx, "Chrono Trigger", &ReplaceGameRequest{
		ReleaseDate: "2008-11-25",
		Studio:      "Square Enix",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceGame_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.ReplaceGame(context.Background(), "Missing", &ReplaceGameRequest{
		ReleaseDate: "2008-11-25",
		Studio:      "Square Enix",
		Ratings:     intPtr(9),
		Platforms:   []string{"DS"},
	})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDeleteGame_ThenGetNotFound(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	game, err := controller.DeleteGame(ctx, "Chrono Trigger")
	require.NoError(t, err)
	assert.Equal(t, "Chrono Trigger", game.Name)

	_, err = controller.GetGame(ctx, "Chrono Trigger")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDeleteGame_NotFound(t *testing.T) {
	controller := newTestController(t)

	_, err := controller.DeleteGame(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestListGames_LimitValidation(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.ListGames(ctx, &ListGamesRequest{Offset: 0, Limit: MaxListLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = controller.ListGames(ctx, &ListGamesRequest{Offset: 0, Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = controller.ListGames(ctx, &ListGamesRequest{Offset: -1, Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListGames_OffsetAndFilters(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.CreateGame(ctx, chronoRequest())
	require.NoError(t, err)

	doom := &CreateGameRequest{
		Name:        "Doom",
		ReleaseDate: "1993-12-10",
		Studio:      "id Software",
		Ratings:     intPtr(9),
		Platforms:   []string{"DOS"},
	}
	_, err = controller.CreateGame(ctx, doom)
	require.NoError(t, err)

	games, err := controller.ListGames(ctx, &ListGamesRequest{Offset: 0, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, games, 2)

	games, err = controller.ListGames(ctx, &ListGamesRequest{Offset: 1, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, games, 1)

	games, err = controller.ListGames(ctx, &ListGamesRequest{
		Offset: 0,
		Limit:  100,
		Studio: "id Software",
	})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Doom", games[0].Name)

	games, err = controller.ListGames(ctx, &ListGamesRequest{
		Offset:      0,
		Limit:       100,
		ReleaseDate: "1995-03-11",
	})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Chrono Trigger", games[0].Name)

	_, err = controller.ListGames(ctx, &ListGamesRequest{
		Offset:      0,
		Limit:       100,
		ReleaseDate: "not-a-date",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
