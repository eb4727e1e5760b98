package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"
	"drift_chronicles_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "drift service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("drift service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// statusOf map error kinds onto HTTP statuses
func statusOf(err error) int {
	switch errprocess.KindOf(err) {
	case errprocess.KindValidation:
		return fiber.StatusBadRequest
	case errprocess.KindNotFound:
		return fiber.StatusNotFound
	case errprocess.KindAlreadyClaimed:
		return fiber.StatusConflict
	case errprocess.KindPermission:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// subjectID identity always comes from the verified token, never the body
func subjectID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middlewares.TokenSubjectID).(string)
	if !ok || id == "" {
		return "", errprocess.New(errprocess.KindPermission, "missing subject identity")
	}
	return id, nil
}
