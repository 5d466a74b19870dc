package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"gamedex/internal/app"
	gamesController "gamedex/internal/controllers/games"
	"gamedex/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	Handler
	gameController gamesController.GameControllerInterface
}

func NewGameHandler(app app.App, router fiber.Router) *GameHandler {
	log := logger.New("handlers").File("game_handler")
	return &GameHandler{
		gameController: app.Controllers.Game,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games")

	games.Get("", h.listGames)
	games.Post("/", h.createGame)
	games.Get("/:name", h.getGame)
	games.Put("/:name", h.replaceGame)
	games.Patch("/:name", h.patchGame)
	games.Delete("/:name", h.deleteGame)
}

func (h *GameHandler) listGames(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("listGames")

	request := gamesController.ListGamesRequest{
		Studio:      c.Query("studio"),
		ReleaseDate: c.Query("release_date"),
	}

	var err error
	if request.Offset, err = queryInt(c, "offset", 0); err != nil {
		log.Warn("Invalid offset", "offset", c.Query("offset"))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "offset must be an integer",
		})
	}
	if request.Limit, err = queryInt(c, "limit", gamesController.MaxListLimit); err != nil {
		log.Warn("Invalid limit", "limit", c.Query("limit"))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "limit must be an integer",
		})
	}
	if raw := c.Query("ratings"); raw != "" {
		ratings, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid ratings filter", "ratings", raw)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "ratings must be an integer",
			})
		}
		request.Ratings = &ratings
	}

	games, err := h.gameController.ListGames(c.Context(), &request)
	if err != nil {
		if errors.Is(err, gamesController.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to list games", err)
		return serverError(c, "Failed to list games")
	}

	return c.JSON(games)
}

func (h *GameHandler) getGame(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("getGame")

	name, err := gameName(c)
	if err != nil {
		log.Warn("Invalid game name", "name", c.Params("name"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game name",
		})
	}

	game, err := h.gameController.GetGame(c.Context(), name)
	if err != nil {
		if errors.Is(err, gamesController.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		_ = log.Err("Failed to retrieve game", err, "name", name)
		return serverError(c, "Failed to retrieve game")
	}

	return c.JSON(game)
}

func (h *GameHandler) createGame(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("createGame")

	var req gamesController.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.CreateGame(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, gamesController.ErrInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, gamesController.ErrGameExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Game already exists",
			})
		}
		_ = log.Err("Failed to create game", err, "name", req.Name)
		return serverError(c, "Failed to create game")
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

func (h *GameHandler) replaceGame(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("replaceGame")

	name, err := gameName(c)
	if err != nil {
		log.Warn("Invalid game name", "name", c.Params("name"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game name",
		})
	}

	var req gamesController.ReplaceGameRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err, "name", name)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.ReplaceGame(c.Context(), name, &req)
	if err != nil {
		switch {
		case errors.Is(err, gamesController.ErrInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, gamesController.ErrGameNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		_ = log.Err("Failed to replace game", err, "name", name)
		return serverError(c, "Failed to replace game")
	}

	return c.JSON(game)
}

func (h *GameHandler) patchGame(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("patchGame")

	name, err := gameName(c)
	if err != nil {
		log.Warn("Invalid game name", "name", c.Params("name"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game name",
		})
	}

	var req gamesController.PatchGameRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err, "name", name)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.PatchGame(c.Context(), name, &req)
	if err != nil {
		switch {
		case errors.Is(err, gamesController.ErrInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, gamesController.ErrGameNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		_ = log.Err("Failed to patch game", err, "name", name)
		return serverError(c, "Failed to patch game")
	}

	return c.JSON(game)
}

func (h *GameHandler) deleteGame(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("game_handler").Function("deleteGame")

	name, err := gameName(c)
	if err != nil {
		log.Warn("Invalid game name", "name", c.Params("name"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game name",
		})
	}

	game, err := h.gameController.DeleteGame(c.Context(), name)
	if err != nil {
		if errors.Is(err, gamesController.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		_ = log.Err("Failed to delete game", err, "name", name)
		return serverError(c, "Failed to delete game")
	}

	return c.JSON(game)
}

// gameName decodes the name path parameter; names may contain encoded
// spaces and punctuation.
func gameName(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return "", err
	}
	return name, nil
}

// serverError answers a 500 with the request's trace ID so clients can
// reference the failing request in reports.
func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":    message,
		"trace_id": middleware.GetTraceID(c),
	})
}

func queryInt(c *fiber.Ctx, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
