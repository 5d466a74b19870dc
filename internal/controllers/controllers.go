package controllers

import (
	"gamedex/config"
	"gamedex/internal/database"
	"gamedex/internal/repositories"
	"gamedex/internal/services"

	gamesController "gamedex/internal/controllers/games"
)

type Controllers struct {
	Game gamesController.GameControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Game: gamesController.New(repos, services, config, db),
	}
}
