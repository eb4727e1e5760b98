package handlers

import (
	"drift_chronicles_service/internal/chat/app"
	"drift_chronicles_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler handle private chat HTTP requests
type ChatHandler struct {
	chatUC app.ChatUseCase
}

// NewChatHandler create a ChatHandler
func NewChatHandler(chatUC app.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUC: chatUC}
}

// List the caller's active chats
// @Summary List chats
// @Description Active chats of the caller, most recent message first
// @Tags Chats
// @Produce json
// @Success 200 {object} string "chats"
// @Router /chats [get]
func (h *ChatHandler) List(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	chats, err := h.chatUC.ListChats(c.UserContext(), userID)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"chats": chats})
}

// Get one chat with its stranger alias
// @Summary Get a chat
// @Description One chat the caller participates in
// @Tags Chats
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} string "the chat"
// @Failure 403 {object} string "not a participant"
// @Router /chat/{id} [get]
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	chatID := c.Params("id")
	chat, err := h.chatUC.GetChat(c.UserContext(), chatID, userID)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"chat": chat, "stranger_name": app.StrangerName(chatID)})
}

// Messages the full ordered transcript
// @Summary List messages
// @Description Full transcript of the chat, oldest first
// @Tags Chats
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} string "messages"
// @Failure 403 {object} string "not a participant"
// @Router /chat/{id}/messages [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	msgs, err := h.chatUC.ListMessages(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// Send append a reply to the chat
// @Summary Send a message
// @Description Append a reply, unread counter of the other participant is incremented
// @Tags Chats
// @Accept json
// @Produce json
// @Param id path string true "chat id"
// @Param request body object true "message content"
// @Success 200 {object} string "the message"
// @Failure 403 {object} string "chat released or not a participant"
// @Router /chat/{id}/message [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
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

	msg, err := h.chatUC.SendMessage(c.UserContext(), c.Params("id"), userID, req.Content)
	if err != nil {
		logger.Log.Error("Send Err", zap.String("userID", userID), zap.String("chatID", c.Params("id")), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": msg})
}

// Read zero the caller's unread counter
// @Summary Mark read
// @Description Zero the caller's unread counter for the chat, best-effort
// @Tags Chats
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} string "ok"
// @Router /chat/{id}/read [post]
func (h *ChatHandler) Read(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	h.chatUC.MarkRead(c.UserContext(), c.Params("id"), userID)
	return c.JSON(fiber.Map{"message": "read"})
}

// Release end the chat
// @Summary Release a chat
// @Description End the chat for both participants, repeat calls are no-ops
// @Tags Chats
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} string "released"
// @Failure 403 {object} string "not a participant"
// @Router /chat/{id}/release [post]
func (h *ChatHandler) Release(c *fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.chatUC.Release(c.UserContext(), c.Params("id"), userID); err != nil {
		logger.Log.Error("Release Err", zap.String("userID", userID), zap.String("chatID", c.Params("id")), zap.String("err", err.Error()))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "chat released"})
}
