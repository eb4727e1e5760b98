package handlers

import (
	"drift_chronicles_service/internal/identity/app"
	"drift_chronicles_service/pkg/logger"
	"drift_chronicles_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdentityHandler handle identity HTTP requests
type IdentityHandler struct {
	identityUC app.IdentityUseCase
}

// NewIdentityHandler create a IdentityHandler
func NewIdentityHandler(identityUC app.IdentityUseCase) *IdentityHandler {
	return &IdentityHandler{identityUC: identityUC}
}

// EnterVoid issue an anonymous identity
// @Summary Enter the void
// @Description Issue a fresh anonymous identity and session token
// @Tags Identity
// @Produce json
// @Success 200 {object} string "token"
// @Router /identity/anonymous [post]
func (h *IdentityHandler) EnterVoid(c *fiber.Ctx) error {
	t, err := h.identityUC.EnterVoid(c.UserContext())
	if err != nil {
		logger.Log.Error("EnterVoid Err", zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"token": t, "message": "welcome to the void"})
}

// Register create a credentialed account
// @Summary Register
// @Description Create an email/password account
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body object true "credentials"
// @Success 200 {object} string "register success"
// @Failure 400 {object} string "invalid credentials"
// @Router /identity/register [post]
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email))

	if err := h.identityUC.Register(c.UserContext(), req.Email, req.Password); err != nil {
		logger.Log.Error("Register Err", zap.String("email", req.Email), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "register success"})
}

// Login authenticate an account
// @Summary Login
// @Description Authenticate with email and password
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body object true "credentials"
// @Success 200 {object} string "token"
// @Failure 401 {object} string "invalid credentials"
// @Router /identity/login [post]
func (h *IdentityHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("Email", req.Email))

	t, err := h.identityUC.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logger.Log.Error("Login Err", zap.String("email", req.Email), zap.String("err", err.Error()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"token": t, "message": "login success"})
}

// Logout end the session
// @Summary Logout
// @Description End the session and forget session browsing state
// @Tags Identity
// @Produce json
// @Param auth query string false "session token"
// @Success 200 {object} string "logout success"
// @Router /identity/logout [post]
func (h *IdentityHandler) Logout(c *fiber.Ctx) error {
	t, ok := c.Locals(middlewares.TokenRaw).(string)
	if !ok || t == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.identityUC.Logout(c.UserContext(), t); err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

// Session report whether the session behind the presented token expired
// @Summary Session status
// @Description Check whether the current session has expired
// @Tags Identity
// @Produce json
// @Success 200 {object} string "session status"
// @Router /identity/session [get]
func (h *IdentityHandler) Session(c *fiber.Ctx) error {
	t, ok := c.Locals(middlewares.TokenRaw).(string)
	if !ok || t == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	expired, err := h.identityUC.CheckSessionTimeout(c.UserContext(), t)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"expired": expired})
}
