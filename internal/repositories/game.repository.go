package repositories

import (
	"context"
	"errors"

	. "gamedex/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// GameFilter holds optional equality filters over the indexed columns.
type GameFilter struct {
	Studio      *string
	Ratings     *int
	ReleaseDate *Date
}

type GameRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter GameFilter, offset, limit int) ([]*Game, error)
	Get(ctx context.Context, tx *gorm.DB, name string) (*Game, error)
	Insert(ctx context.Context, tx *gorm.DB, game *Game) error
	Replace(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) (*Game, error)
	Merge(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) (*Game, error)
	Delete(ctx context.Context, tx *gorm.DB, name string) (*Game, error)
}

type gameRepository struct{}

func NewGameRepository() GameRepository {
	return &gameRepository{}
}

func (r *gameRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter GameFilter,
	offset, limit int,
) ([]*Game, error) {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&Game{})

	if filter.Studio != nil {
		query = query.Where("studio = ?", *filter.Studio)
	}
	if filter.Ratings != nil {
		query = query.Where("ratings = ?", *filter.Ratings)
	}
	if filter.ReleaseDate != nil {
		query = query.Where("release_date = ?", filter.ReleaseDate.Time())
	}

	var games []*Game
	if err := query.Offset(offset).Limit(limit).Find(&games).Error; err != nil {
		return nil, log.Err("failed to list games", err, "offset", offset, "limit", limit)
	}

	return games, nil
}

func (r *gameRepository) Get(
	ctx context.Context,
	tx *gorm.DB,
	name string,
) (*Game, error) {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("Get")

	var game Game
	if err := tx.WithContext(ctx).First(&game, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get game", err, "name", name)
	}

	return &game, nil
}

func (r *gameRepository) Insert(
	ctx context.Context,
	tx *gorm.DB,
	game *Game,
) error {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("Insert")

	if err := tx.WithContext(ctx).Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return log.Err("failed to insert game", err, "name", game.Name)
	}

	log.Info("Game inserted", "name", game.Name)
	return nil
}

// Replace overwrites every non-key column with the provided fields.
func (r *gameRepository) Replace(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	fields map[string]any,
) (*Game, error) {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("Replace")

	game, err := r.Get(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Model(game).Updates(fields).Error; err != nil {
		return nil, log.Err("failed to replace game", err, "name", name)
	}

	return r.Get(ctx, tx, name)
}

// Merge overwrites only the provided fields. An empty field map returns the
// stored row untouched.
func (r *gameRepository) Merge(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	fields map[string]any,
) (*Game, error) {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("Merge")

	game, err := r.Get(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return game, nil
	}

	if err := tx.WithContext(ctx).Model(game).Updates(fields).Error; err != nil {
		return nil, log.Err("failed to merge game", err, "name", name)
	}

	return r.Get(ctx, tx, name)
}

func (r *gameRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	name string,
) (*Game, error) {
	log := logger.New("gameRepository").TraceFromContext(ctx).Function("Delete")

	game, err := r.Get(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).Delete(&Game{}, "name = ?", name).Error; err != nil {
		return nil, log.Err("failed to delete game", err, "name", name)
	}

	log.Info("Game deleted", "name", name)
	return game, nil
}
