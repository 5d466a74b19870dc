package gamesController

import (
	"context"
	"errors"
	"fmt"

	"gamedex/config"
	"gamedex/internal/database"
	. "gamedex/internal/models"
	"gamedex/internal/repositories"
	"gamedex/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxListLimit bounds the list page size; larger values are rejected before
// the store is touched.
const MaxListLimit = 100

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameController struct {
	gameRepo           repositories.GameRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
}

type CreateGameRequest struct {
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	Studio      string   `json:"studio"`
	Ratings     *int     `json:"ratings"`
	Platforms   []string `json:"platforms"`
}

// ReplaceGameRequest carries every non-key field; a full update never
// preserves omitted fields.
type ReplaceGameRequest struct {
	ReleaseDate string   `json:"release_date"`
	Studio      string   `json:"studio"`
	Ratings     *int     `json:"ratings"`
	Platforms   []string `json:"platforms"`
}

// PatchGameRequest carries any subset of non-key fields; only supplied
// fields overwrite the stored row.
type PatchGameRequest struct {
	ReleaseDate *string  `json:"release_date"`
	Studio      *string  `json:"studio"`
	Ratings     *int     `json:"ratings"`
	Platforms   []string `json:"platforms"`
}

type ListGamesRequest struct {
	Offset      int
	Limit       int
	Studio      string
	Ratings     *int
	ReleaseDate string
}

type GameControllerInterface interface {
	ListGames(ctx context.Context, request *ListGamesRequest) ([]*Game, error)
	GetGame(ctx context.Context, name string) (*Game, error)
	CreateGame(ctx context.Context, request *CreateGameRequest) (*Game, error)
	ReplaceGame(ctx context.Context, name string, request *ReplaceGameRequest) (*Game, error)
	PatchGame(ctx context.Context, name string, request *PatchGameRequest) (*Game, error)
	DeleteGame(ctx context.Context, name string) (*Game, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) GameControllerInterface {
	return &GameController{
		gameRepo:           repos.Game,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("gamesController"),
	}
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// mapStoreError translates store outcomes into the controller error taxonomy.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrGameNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrGameExists
	default:
		return err
	}
}

func (c *GameController) ListGames(
	ctx context.Context,
	request *ListGamesRequest,
) ([]*Game, error) {
	log := c.log.Function("ListGames")

	if request.Offset < 0 {
		return nil, invalidInput("offset must not be negative")
	}
	if request.Limit <= 0 || request.Limit > MaxListLimit {
		return nil, invalidInput(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}

	filter := repositories.GameFilter{
		Ratings: request.Ratings,
	}
	if request.Studio != "" {
		filter.Studio = &request.Studio
	}
	if request.ReleaseDate != "" {
		date, err := ParseDate(request.ReleaseDate)
		if err != nil {
			return nil, invalidInput(err.Error())
		}
		filter.ReleaseDate = &date
	}

	games, err := c.gameRepo.List(ctx, c.db.SQL, filter, request.Offset, request.Limit)
	if err != nil {
		return nil, log.Err("failed to list games", err)
	}

	return games, nil
}

func (c *GameController) GetGame(ctx context.Context, name string) (*Game, error) {
	log := c.log.Function("GetGame")

	game, err := c.gameRepo.Get(ctx, c.db.SQL, name)
	if err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		return nil, log.Err("failed to get game", err, "name", name)
	}

	return game, nil
}

func (c *GameController) CreateGame(
	ctx context.Context,
	request *CreateGameRequest,
) (*Game, error) {
	log := c.log.Function("CreateGame")

	if request.Name == "" {
		return nil, invalidInput("name is required")
	}

	fields := ReplaceGameRequest{
		ReleaseDate: request.ReleaseDate,
		Studio:      request.Studio,
		Ratings:     request.Ratings,
		Platforms:   request.Platforms,
	}
	releaseDate, err := fields.validate()
	if err != nil {
		return nil, err
	}

	game := &Game{
		Name:        request.Name,
		ReleaseDate: releaseDate,
		Studio:      request.Studio,
		Ratings:     *request.Ratings,
		Platforms:   datatypes.NewJSONSlice(request.Platforms),
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.gameRepo.Insert(ctx, tx, game)
	})
	if err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		return nil, log.Err("failed to create game", err, "name", request.Name)
	}

	log.Info("Game created successfully", "name", game.Name)
	return game, nil
}

func (c *GameController) ReplaceGame(
	ctx context.Context,
	name string,
	request *ReplaceGameRequest,
) (*Game, error) {
	log := c.log.Function("ReplaceGame")

	releaseDate, err := request.validate()
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"release_date": releaseDate,
		"studio":       request.Studio,
		"ratings":      *request.Ratings,
		"platforms":    datatypes.NewJSONSlice(request.Platforms),
	}

	var game *Game
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		game, err = c.gameRepo.Replace(ctx, tx, name, fields)
		return err
	})
	if err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		return nil, log.Err("failed to replace game", err, "name", name)
	}

	log.Info("Game replaced successfully", "name", name)
	return game, nil
}

func (c *GameController) PatchGame(
	ctx context.Context,
	name string,
	request *PatchGameRequest,
) (*Game, error) {
	log := c.log.Function("PatchGame")

	fields := make(map[string]any)

	if request.ReleaseDate != nil {
		date, err := ParseDate(*request.ReleaseDate)
		if err != nil {
			return nil, invalidInput(err.Error())
		}
		fields["release_date"] = date
	}
	if request.Studio != nil {
		if *request.Studio == "" {
			return nil, invalidInput("studio must not be empty")
		}
		fields["studio"] = *request.Studio
	}
	if request.Ratings != nil {
		fields["ratings"] = *request.Ratings
	}
	if request.Platforms != nil {
		fields["platforms"] = datatypes.NewJSONSlice(request.Platforms)
	}

	var game *Game
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var mergeErr error
		game, mergeErr = c.gameRepo.Merge(ctx, tx, name, fields)
		return mergeErr
	})
	if err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		return nil, log.Err("failed to patch game", err, "name", name)
	}

	log.Info("Game patched successfully", "name", name, "fields", len(fields))
	return game, nil
}

func (c *GameController) DeleteGame(ctx context.Context, name string) (*Game, error) {
	log := c.log.Function("DeleteGame")

	var game *Game
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var deleteErr error
		game, deleteErr = c.gameRepo.Delete(ctx, tx, name)
		return deleteErr
	})
	if err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		return nil, log.Err("failed to delete game", err, "name", name)
	}

	log.Info("Game deleted successfully", "name", name)
	return game, nil
}

func (r *ReplaceGameRequest) validate() (Date, error) {
	if r.ReleaseDate == "" {
		return Date{}, invalidInput("release_date is required")
	}
	releaseDate, err := ParseDate(r.ReleaseDate)
	if err != nil {
		return Date{}, invalidInput(err.Error())
	}
	if r.Studio == "" {
		return Date{}, invalidInput("studio is required")
	}
	if r.Ratings == nil {
		return Date{}, invalidInput("ratings is required")
	}
	if r.Platforms == nil {
		return Date{}, invalidInput("platforms is required")
	}
	return releaseDate, nil
}
