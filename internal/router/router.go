package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/handler"
	"github.com/iliyamo/classroom-seating/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth, the protected /v1/me sits behind the
// JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout stays outside the JWT middleware so a client can always
	// terminate a session with just its refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterTeacher registers TEACHER-scoped endpoints under /v1. All
// routes require a valid JWT and the TEACHER role.
func RegisterTeacher(e *echo.Echo, t *handler.TeacherHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("TEACHER"),
	}
	mw = append(mw, extra...)
	g := e.Group("/v1", mw...)

	// ---- Rooms ----
	g.POST("/rooms", t.CreateRoom)
	g.GET("/rooms", t.ListRooms)
	g.GET("/rooms/:id", t.GetRoom)
	g.PUT("/rooms/:id", t.UpdateRoom)
	g.PATCH("/rooms/:id", t.UpdateRoom)
	g.DELETE("/rooms/:id", t.DeleteRoom)

	// ---- Seats ----
	g.POST("/rooms/:id/seats", t.CreateSeat)
	g.POST("/rooms/:id/seats/grid", t.CreateSeatGrid)
	g.GET("/rooms/:id/seats", t.ListSeats)
	g.PUT("/seats/:id", t.UpdateSeat)
	g.PATCH("/seats/:id", t.UpdateSeat)
	g.DELETE("/seats/:id", t.DeleteSeat)

	// ---- Students ----
	g.POST("/rooms/:id/students", t.CreateStudent)
	g.GET("/rooms/:id/students", t.ListStudents)
	g.PUT("/students/:id", t.UpdateStudent)
	g.PATCH("/students/:id", t.UpdateStudent)
	g.DELETE("/students/:id", t.DeleteStudent)

	// ---- Rules ----
	g.POST("/rooms/:id/rules", t.CreateRule)
	g.GET("/rooms/:id/rules", t.ListRules)
	g.DELETE("/rules/:id", t.DeleteRule)

	// ---- Charts ----
	g.POST("/rooms/:id/assign", t.AssignSeats)
	g.GET("/rooms/:id/chart", t.GetChart)
}

// RegisterPublic registers the unauthenticated layout view. The cache
// middleware is passed in so callers decide whether a Redis client is
// available.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/rooms/:id/layout", p.GetPublicLayout, cache)
}
