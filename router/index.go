package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/MPIO1002/CINEME-sub001/handler"
	"github.com/MPIO1002/CINEME-sub001/middleware"
	"github.com/MPIO1002/CINEME-sub001/validate"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New(), middleware.OptionalJWT(), middleware.OwnerKey())

	sessions := api.Group("/booking-sessions")
	sessions.Post("/", validate.CreateSession(), handler.CreateSession)
	sessions.Get("/:id", handler.GetSession)
	sessions.Delete("/:id", handler.AbandonSession)
	sessions.Post("/:id/seats/:seatId/toggle", handler.ToggleSeat)
	sessions.Put("/:id/combos/:comboId", validate.ComboQuantity(), handler.SetCombo)
	sessions.Put("/:id/customer", validate.CustomerPhone(), handler.SetCustomer)
	sessions.Put("/:id/payment", validate.PaymentMethod(), handler.SetPayment)
	sessions.Post("/:id/submit", handler.SubmitBooking)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/booking-sessions/:id", websocket.New(handler.SessionWebsocket))
}
