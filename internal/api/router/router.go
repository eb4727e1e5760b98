package router

import (
	"context"

	"drift_chronicles_service/internal/api/handlers"
	chatapp "drift_chronicles_service/internal/chat/app"
	"drift_chronicles_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wire all routes
// @title Drift Chronicles Service API
// @version 1.0
// @description API documentation for Drift Chronicles Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App,
	identityHandler *handlers.IdentityHandler,
	bottleHandler *handlers.BottleHandler,
	chatHandler *handlers.ChatHandler,
	liveFeed *chatapp.LiveFeedHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	identityRoutes := app.Group("/identity")
	identityRoutes.Post("/anonymous", identityHandler.EnterVoid)
	identityRoutes.Post("/register", identityHandler.Register)
	identityRoutes.Post("/login", identityHandler.Login)

	identityRoutes.Use(middlewares.JWTMiddleware())
	identityRoutes.Post("/logout", identityHandler.Logout)
	identityRoutes.Get("/session", identityHandler.Session)

	bottleRoutes := app.Group("/bottle", middlewares.JWTMiddleware())
	bottleRoutes.Post("/cast", bottleHandler.Cast)
	bottleRoutes.Get("/pick", bottleHandler.Pick)
	bottleRoutes.Post("/throwback", bottleHandler.ThrowBack)
	bottleRoutes.Post("/claim", bottleHandler.Claim)
	bottleRoutes.Get("/:id", bottleHandler.Get)

	app.Get("/profile", middlewares.JWTMiddleware(), bottleHandler.Profile)
	app.Get("/chats", middlewares.JWTMiddleware(), chatHandler.List)

	chatRoutes := app.Group("/chat", middlewares.JWTMiddleware())
	chatRoutes.Get("/:id", chatHandler.Get)
	chatRoutes.Get("/:id/messages", chatHandler.Messages)
	chatRoutes.Post("/:id/message", chatHandler.Send)
	chatRoutes.Post("/:id/read", chatHandler.Read)
	chatRoutes.Post("/:id/release", chatHandler.Release)

	// websocket upgrade gate, everything else on the path 426s
	chatRoutes.Use("/:id/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	chatRoutes.Get("/:id/live", websocket.New(func(c *websocket.Conn) {
		liveFeed.HandleConnection(context.Background(), c)
	}))
}
