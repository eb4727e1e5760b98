package handlers

import (
	"drift_chronicles_service/internal/bottle/app"
	"drift_chronicles_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BottleHandler handle bottle pool HTTP requests
type BottleHandler struct {
	bottleUC     app.BottleUseCase
	matchmakerUC app.MatchmakingUseCase
}

// NewBottleHandler create a BottleHandler
func NewBottleHandler(bottleUC app.BottleUseCase, matchmakerUC app.MatchmakingUseCase) *BottleHandler {
	return &BottleHandler{
		bottleUC:     bottleUC,
		matchmakerUC: matchmakerUC,
	}
}

// Cast throw a new bottle
// @Summary Cast a bottle
// @Description Throw a message bottle into the shared pool
// @Tags Bottles
// @Accept json
// @Produce json
// @Param request body object true "bottle content"
// @Success 200 {object} string "bottle id"
// @Failure 400 {object} string "invalid content"
// @Router /bottle/cast [post]
func (h *BottleHandler) Cast(c *fiber.Ctx) error {
	type request struct {
		Content string `json:"content"`
	}

	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	bottleID, err := h.bottleUC.Cast(c.UserContext(), userID, req.Content)
	if err != nil {
		logger.Log.Error("Cast Err", zap.String("userID", userID), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"bottle_id": bottleID, "message": "bottle cast into the ocean"})
}

// Pick draw a random bottle
// @Summary Pick a bottle
// @Description Draw one random bottle from the pool, excluding bottles already seen this session
// @Tags Bottles
// @Produce json
// @Success 200 {object} string "a bottle, or empty ocean"
// @Router /bottle/pick [get]
func (h *BottleHandler) Pick(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	bottle, err := h.matchmakerUC.PickNext(c.UserContext(), userID)
	if err != nil {
		logger.Log.Error("Pick Err", zap.String("userID", userID), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if bottle == nil {
		// an empty pool is a normal outcome, not an error
		return c.JSON(fiber.Map{"bottle": nil, "message": "the ocean is empty"})
	}

	return c.JSON(fiber.Map{"bottle": bottle})
}

// ThrowBack return a bottle to the pool
// @Summary Throw a bottle back
// @Description Return a drawn bottle so others can find it, never shown to this user again this session
// @Tags Bottles
// @Accept json
// @Produce json
// @Param request body object true "bottle id"
// @Success 200 {object} string "next bottle, or empty ocean"
// @Failure 404 {object} string "bottle not found"
// @Router /bottle/throwback [post]
func (h *BottleHandler) ThrowBack(c *fiber.Ctx) error {
	type request struct {
		BottleID string `json:"bottle_id"`
	}

	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.matchmakerUC.ThrowBack(c.UserContext(), userID, req.BottleID); err != nil {
		logger.Log.Error("ThrowBack Err", zap.String("userID", userID), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	next, err := h.matchmakerUC.PickNext(c.UserContext(), userID)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if next == nil {
		return c.JSON(fiber.Map{"bottle": nil, "message": "the ocean is empty"})
	}
	return c.JSON(fiber.Map{"bottle": next})
}

// Claim keep a bottle and open its chat
// @Summary Claim a bottle
// @Description Claim the bottle exclusively and open a private chat with its creator
// @Tags Bottles
// @Accept json
// @Produce json
// @Param request body object true "bottle id"
// @Success 200 {object} string "claim result with chat id"
// @Failure 409 {object} string "already claimed"
// @Router /bottle/claim [post]
func (h *BottleHandler) Claim(c *fiber.Ctx) error {
	type request struct {
		BottleID string `json:"bottle_id"`
	}

	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	result, err := h.bottleUC.Claim(c.UserContext(), userID, req.BottleID)
	if err != nil {
		logger.Log.Error("Claim Err", zap.String("userID", userID), zap.String("bottleID", req.BottleID), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"bottle": result.Bottle, "chat_id": result.ChatID})
}

// Get read one bottle
// @Summary Get a bottle
// @Description Read one bottle by id
// @Tags Bottles
// @Produce json
// @Param id path string true "bottle id"
// @Success 200 {object} string "the bottle"
// @Failure 404 {object} string "bottle not found"
// @Router /bottle/{id} [get]
func (h *BottleHandler) Get(c *fiber.Ctx) error {
	if _, err := subjectID(c); err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	bottle, err := h.bottleUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"bottle": bottle})
}

// Profile read the caller's profile
// @Summary Get profile
// @Description Read the caller's profile and counters
// @Tags Bottles
// @Produce json
// @Success 200 {object} string "the profile"
// @Router /profile [get]
func (h *BottleHandler) Profile(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.bottleUC.Profile(c.UserContext(), userID)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"profile": profile})
}
