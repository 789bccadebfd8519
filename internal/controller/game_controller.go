// Package controller exposes the game service over HTTP and websockets.
package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/service"
)

// GameController serves the REST game routes.
type GameController struct {
	gameService *service.GameService
}

// NewGameController creates a controller over gameService.
func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// CreateGame starts a game, optionally from a FEN position.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

// GetGameState returns the game view.
func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetMoves returns the moves available to the side to move.
func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.GetMoves(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"moves": moves})
}

// MakeMove plays the move in the request body.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	view, err := gc.gameService.HandleMove(c.Params("id"), req.Move)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// Undo reverts the last move.
func (gc *GameController) Undo(c *fiber.Ctx) error {
	view, err := gc.gameService.Undo(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// DeleteGame ends a game.
func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrInvalidNotation),
		errors.Is(err, errors.ErrInvalidFEN),
		errors.Is(err, errors.ErrSquareOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrInvalidMove),
		errors.Is(err, errors.ErrGameOver),
		errors.Is(err, errors.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrTooManyGames):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
