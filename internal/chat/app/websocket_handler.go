package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"drift_chronicles_service/internal/chat/domain"
	"drift_chronicles_service/pkg/logger"
	"drift_chronicles_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// WSRequest action sent by the client over the live feed
type WSRequest struct {
	Action  string `json:"action"`
	Content string `json:"content"`
}

// WSResponse frame pushed to the client
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Payload map[string]interface{} `json:"payload"`
}

// messageWriter write half of a websocket connection
type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// lockedWriter serializes frames onto one connection. The transcript
// push, the keepalive ping and the read loop all write the same socket,
// which tolerates only one writer at a time.
type lockedWriter struct {
	mu   sync.Mutex
	conn messageWriter
}

func (w *lockedWriter) WriteMessage(mt int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(mt, data)
}

// LiveFeedHandler websocket entry point for a chat's live transcript
type LiveFeedHandler struct {
	chatUC ChatUseCase
}

// NewLiveFeedHandler create a LiveFeedHandler
func NewLiveFeedHandler(chatUC ChatUseCase) *LiveFeedHandler {
	return &LiveFeedHandler{chatUC: chatUC}
}

// HandleConnection run the connection until the client goes away. The
// full transcript is pushed on attach and after every change; the read
// loop accepts send and read actions on the same socket.
func (h *LiveFeedHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenSubject := conn.Locals(middlewares.TokenSubjectID)
	userID, _ := tokenSubject.(string)
	chatID := conn.Params("id")
	logger.Log.Info("websocket attach", zap.String("userID", userID), zap.String("chatID", chatID))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancelConn := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", userID), zap.String("chatID", chatID))
		conn.Close()
		cancelConn()
	}()

	// fiber answers close frames itself, SetCloseHandler only observes
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	out := &lockedWriter{conn: conn}

	cancelSub, err := h.chatUC.SubscribeMessages(ctxClose, chatID, userID, func(msgs []domain.Message) {
		h.sendResponse(out, WSResponse{
			Action:  "transcript",
			Success: true,
			Payload: map[string]interface{}{
				"chat_id":       chatID,
				"stranger_name": StrangerName(chatID),
				"messages":      msgs,
			},
		})
	})
	if err != nil {
		h.sendError(out, err.Error())
		return
	}
	defer cancelSub()

	// keepalive ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := out.WriteMessage(websocket.PingMessage, []byte("ping message")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, out, chatID, userID, mt, message)
	}
}

func (h *LiveFeedHandler) execWebsocketAction(ctx context.Context, out messageWriter, chatID, userID string, mt int, msg []byte) {
	if mt != websocket.TextMessage {
		h.sendError(out, "unknown message type")
		return
	}

	var req WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(out, "invalid request payload")
		return
	}

	resp := WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	case "send":
		sent, err := h.chatUC.SendMessage(ctx, chatID, userID, req.Content)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message_id"] = sent.ID
		}

	case "read":
		h.chatUC.MarkRead(ctx, chatID, userID)
		resp.Success = true

	default:
		resp.Error = "unknown action"
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err",
			zap.String("SubjectID", userID),
			zap.String("Action", req.Action),
			zap.String("err", resp.Error))
	}
	h.sendResponse(out, resp)
}

func (h *LiveFeedHandler) sendResponse(out messageWriter, resp WSResponse) {
	b, _ := json.Marshal(resp)
	if err := out.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *LiveFeedHandler) sendError(out messageWriter, errorMsg string) {
	h.sendResponse(out, WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{"error": errorMsg},
	})
}
