package main

import (
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/MPIO1002/CINEME-sub001/client"
	"github.com/MPIO1002/CINEME-sub001/config"
	"github.com/MPIO1002/CINEME-sub001/handler"
	"github.com/MPIO1002/CINEME-sub001/model"
	"github.com/MPIO1002/CINEME-sub001/realtime"
	"github.com/MPIO1002/CINEME-sub001/router"
	"github.com/MPIO1002/CINEME-sub001/session"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Guest-Session",
		AllowCredentials: true,
	}))

	backend := client.New(config.Config("API_BASE_URL")).
		WithToken(config.Config("API_TOKEN"))

	wsBase := config.Config("WS_URL")
	connect := func(showtimeId string, seed []model.Seat, events chan<- model.LockEvent) io.Closer {
		return realtime.Connect(wsBase, showtimeId, backend.ShowtimeSeats, seed, events)
	}

	ttl := time.Duration(config.ConfigInt("SESSION_TTL_MIN", 15)) * time.Minute
	manager := session.NewManager(backend, connect, config.Config("DEFAULT_CUSTOMER_ID"), ttl)
	manager.SetOnChange(handler.BroadcastSession)
	if err := manager.StartSweeper(); err != nil {
		log.Fatal(err)
	}
	defer manager.Stop()

	handler.BookingSessions = manager

	router.SetupRoutes(app)

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8003")))
}
