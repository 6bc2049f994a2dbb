package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"

	"github.com/lar-university/advisor/api/http/handlers"
)

// MiddlewareConfig carries the knobs the global middleware stack needs.
type MiddlewareConfig struct {
	FrontendURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Register wires middleware and all HTTP routes onto the given Fiber app.
func Register(
	app *fiber.App,
	mw MiddlewareConfig,
	authGuard fiber.Handler,
	auth *handlers.AuthHandler,
	users *handlers.UserHandler,
	chats *handlers.ChatHandler,
	cv *handlers.CVHandler,
	recs *handlers.RecommendationHandler,
	health *handlers.HealthHandler,
) {
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: mw.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        mw.RateLimitMax,
		Expiration: mw.RateLimitWindow,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/me", authGuard, auth.Me)
	a.Put("/profile", authGuard, auth.UpdateProfile)
	a.Put("/password", authGuard, auth.ChangePassword)

	u := v1.Group("/users", authGuard)
	u.Get("/profile", users.Profile)
	u.Delete("/account", users.DeleteAccount)

	ch := v1.Group("/chats", authGuard)
	ch.Get("/", chats.List)
	ch.Post("/", chats.Create)
	ch.Get("/:id", chats.Get)
	ch.Post("/:id/messages", chats.SendMessage)
	ch.Put("/:id/title", chats.Rename)
	ch.Delete("/:id", chats.Delete)

	cvg := v1.Group("/cv", authGuard)
	cvg.Post("/upload", cv.Upload)
	cvg.Post("/linkedin", cv.LinkedIn)
	cvg.Get("/analyses", cv.Analyses)
	cvg.Get("/analyses/:id", cv.Analysis)

	r := v1.Group("/recommendations")
	r.Get("/specializations", recs.Specializations)
	r.Get("/specializations/:id", recs.Specialization)
	r.Get("/me", authGuard, recs.Me)
	r.Post("/regenerate", authGuard, recs.Regenerate)
}
