package repositories

type Repository struct {
	Game GameRepository
}

func New() Repository {
	return Repository{
		Game: NewGameRepository(),
	}
}
