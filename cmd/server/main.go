// cmd/server/main.go
// Entry point for the TurfBook API server: load config, connect to Postgres,
// run migrations, start the WebSocket hub, and register every route.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/devanshm/turfbook/internal/config"
	"github.com/devanshm/turfbook/internal/database"
	"github.com/devanshm/turfbook/internal/handlers"
	"github.com/devanshm/turfbook/internal/middleware"
	"github.com/devanshm/turfbook/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Migrations run on startup so the schema is always in sync with the code
	// that is about to serve traffic.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The hub fans match results out to live WebSocket watchers.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "TurfBook API",
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", handlers.HealthCheck)

	// Live match updates. The upgrade check runs before the handler; the
	// connection subscribes to the match ID in the path.
	app.Use("/ws", websocket.Upgrade)
	app.Get("/ws/matches/:id", websocket.Serve(hub))

	// Two route groups share the /api/v1 prefix: pub for browsing without a
	// token, api for everything that needs an authenticated user. Fiber matches
	// routes in registration order, so authenticated static paths like
	// /teams/my register before the public /teams/:id wildcard.
	pub := app.Group("/api/v1")
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	pub.Post("/auth/signup", handlers.Signup(cfg, db))
	pub.Post("/auth/login", handlers.Login(cfg, db))
	api.Get("/auth/me", handlers.Me(db))

	// Turfs: anyone browses; only admins and owners register new turfs, and
	// the handler itself checks per-turf ownership on updates.
	pub.Get("/turfs", handlers.GetTurfs(db))
	api.Post("/turfs", middleware.RequireRole("admin", "owner"), handlers.CreateTurf(db))
	pub.Get("/turfs/:id", handlers.GetTurf(db))
	api.Patch("/turfs/:id", middleware.RequireRole("admin", "owner"), handlers.UpdateTurf(db))
	pub.Get("/turfs/:id/slots", handlers.GetTurfSlots(db))
	pub.Get("/turfs/:id/bookings", handlers.GetTurfBookings(db))

	// Bookings: users manage their own; owners decide on their turfs'
	// bookings; admins see and decide everything.
	api.Get("/bookings", handlers.GetMyBookings(db))
	api.Post("/bookings", handlers.CreateBooking(db))
	api.Patch("/bookings/:id/cancel", handlers.CancelBooking(db))
	api.Get("/owner/bookings", middleware.RequireRole("admin", "owner"), handlers.GetOwnerBookings(db))
	api.Patch("/owner/bookings/:id", middleware.RequireRole("admin", "owner"), handlers.DecideBooking(db))
	api.Get("/admin/bookings", middleware.RequireRole("admin"), handlers.GetAllBookings(db))
	api.Patch("/admin/bookings/:id", middleware.RequireRole("admin"), handlers.DecideBooking(db))
	api.Get("/admin/turfs", middleware.RequireRole("admin"), handlers.GetAllTurfs(db))

	// Teams. Static paths (rankings, my) register before the :id wildcard.
	pub.Get("/teams", handlers.GetTeams(db))
	api.Post("/teams", handlers.CreateTeam(db))
	pub.Get("/teams/rankings", handlers.GetRankings(db))
	api.Get("/teams/my", handlers.GetMyTeams(db))
	pub.Get("/teams/:id", handlers.GetTeam(db))
	pub.Get("/teams/:id/members", handlers.GetTeamMembers(db))
	api.Post("/teams/:id/members", handlers.AddTeamMember(db))

	// Matches and matchmaking.
	pub.Get("/matches", handlers.GetMatches(db))
	api.Post("/matches", handlers.CreateMatch(db))
	pub.Get("/matches/:id", handlers.GetMatch(db))
	api.Patch("/matches/:id", handlers.UpdateMatch(db, hub))
	api.Get("/matchmaking/suggestions/:teamId", handlers.GetSuggestions(db))

	// Match invitations.
	api.Get("/match-invitations", handlers.GetInvitations(db))
	api.Post("/match-invitations", handlers.CreateInvitation(db))
	api.Patch("/match-invitations/:id", handlers.RespondInvitation(db))

	// Tournaments.
	pub.Get("/tournaments", handlers.GetTournaments(db))
	api.Post("/tournaments", middleware.RequireRole("admin", "owner"), handlers.CreateTournament(db))
	pub.Get("/tournaments/:id", handlers.GetTournament(db))
	pub.Get("/tournaments/:id/teams", handlers.GetTournamentTeams(db))
	api.Post("/tournaments/:id/register", handlers.RegisterTeam(db))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
