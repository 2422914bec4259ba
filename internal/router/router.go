package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/auth"
	"github.com/iliyamo/flavor-house/internal/handler"
	"github.com/iliyamo/flavor-house/internal/middleware"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Health       *handler.HealthHandler
	Public       *handler.PublicHandler
	Auth         *handler.AuthHandler
	Dishes       *handler.AdminDishHandler
	Reservations *handler.AdminReservationHandler
	Reload       *handler.ReloadHandler
	Uploads      *handler.UploadHandler
}

// Guards are the middlewares that wrap some routes but not others.
type Guards struct {
	Session   middleware.SessionVerifier
	MenuCache echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes registers unauthenticated routes: the health check and the
// guest-facing site.
func RegisterRoutes(e *echo.Echo, h Handlers, g Guards) {
	e.GET("/healthz", h.Health.Health)

	v1 := e.Group("/v1")
	v1.GET("/dishes", h.Public.ListDishes, g.MenuCache)
	v1.GET("/categories", h.Public.ListCategories, g.MenuCache)
	v1.GET("/info", h.Public.GetInfo)
	v1.POST("/reservations", h.Public.CreateReservation, g.RateLimit)
}

// RegisterAuth registers sign-in, sign-out and the current-admin endpoint.
// Sign-in is rate limited; the other two need a live session.
func RegisterAuth(e *echo.Echo, h Handlers, g Guards) {
	a := e.Group("/v1/auth")
	a.POST("/login", h.Auth.Login, g.RateLimit)

	s := a.Group("", middleware.JWTAuth(g.Session))
	s.POST("/logout", h.Auth.Logout)
	s.GET("/me", h.Auth.Me)
}

// RegisterAdmin registers the back office under /v1/admin. Every route
// requires a live session with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h Handlers, g Guards) {
	adm := e.Group("/v1/admin",
		middleware.JWTAuth(g.Session),
		middleware.RequireRole(auth.RoleAdmin),
	)

	// ---- Dishes ----
	adm.GET("/dishes", h.Dishes.ListDishes)
	adm.POST("/dishes", h.Dishes.CreateDish)
	adm.PATCH("/dishes/:id", h.Dishes.UpdateDish)
	adm.DELETE("/dishes/:id", h.Dishes.DeleteDish)

	// ---- Categories (read-only; managed with flavorctl) ----
	adm.GET("/categories", h.Dishes.ListCategories)

	// ---- Reservations ----
	adm.GET("/reservations", h.Reservations.ListReservations)
	adm.PATCH("/reservations/:id", h.Reservations.UpdateReservation)
	adm.DELETE("/reservations/:id", h.Reservations.DeleteReservation)

	adm.POST("/reload", h.Reload.Reload)

	// ---- Images ----
	adm.POST("/uploads/sign", h.Uploads.Sign)
	adm.POST("/uploads", h.Uploads.Upload)
}

// Register wires every route group.
func Register(e *echo.Echo, h Handlers, g Guards) {
	if g.MenuCache == nil {
		g.MenuCache = passThrough
	}
	if g.RateLimit == nil {
		g.RateLimit = passThrough
	}
	RegisterRoutes(e, h, g)
	RegisterAuth(e, h, g)
	RegisterAdmin(e, h, g)
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
