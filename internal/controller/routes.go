package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/middleware"
	"github.com/lgbarn/chesscore-go/internal/service"
)

// NewApp builds the fiber application with middleware and every route.
func NewApp(gameService *service.GameService, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chesscore",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.Server.RequestLogging && cfg.LogFile != nil {
		app.Use(middleware.RequestLogger(cfg.LogFile))
	}
	if origins := cfg.Server.AllowedOrigins; origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, DELETE, OPTIONS",
		}))
	}

	RegisterRoutes(app, gameService, cfg)
	return app
}

// RegisterRoutes adds the REST and websocket game routes to app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, cfg *config.Config) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService, cfg)

	// Set up REST routes
	api := app.Group("/api")
	games := api.Group("/games")
	games.Post("/", gameController.CreateGame)
	games.Get("/:id", gameController.GetGameState)
	games.Delete("/:id", gameController.DeleteGame)
	games.Get("/:id/moves", gameController.GetMoves)
	games.Post("/:id/moves", gameController.MakeMove)
	games.Post("/:id/undo", gameController.Undo)

	// Set up WebSocket routes
	lookup := func(gameID string) error {
		_, err := gameService.GetGameState(gameID)
		return err
	}
	app.Get("/ws/games/:id", middleware.WebSocketUpgrade(lookup), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		Origins:         cfg.Server.Origins(),
	}))
}
