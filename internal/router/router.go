// Package router registers the HTTP routes on the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/neomatrix/timekeeper/internal/config"
	"github.com/neomatrix/timekeeper/internal/handler"
	"github.com/neomatrix/timekeeper/internal/middleware"
)

// Handlers groups everything Register needs to wire the route table.
type Handlers struct {
	Auth       *handler.AuthHandler
	Timesheets *handler.TimesheetHandler
	Jobs       *handler.JobHandler
	Clients    *handler.ClientHandler
}

// Register wires all routes. Browse and weekly-hours GETs sit behind
// the Redis response cache; everything under /v1 except the auth
// endpoints requires a valid access token, and the staff-scoped routes
// additionally require the token to be linked to a staff record.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1", limiter)

	// Public auth endpoints.
	auth := v1.Group("/auth")
	auth.POST("/check-staff-email", h.Auth.CheckStaffEmail)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	jwt := middleware.JWTAuth(cfg.JWTSecret)
	auth.POST("/logout", h.Auth.Logout, jwt)
	v1.GET("/me", h.Auth.Me, jwt)

	// Weekly hours: submission and reports, scoped to the caller's
	// own staff record.
	staff := v1.Group("/staff", jwt, middleware.RequireStaffLink())
	staff.POST("/:staff_uuid/weekly-hours", h.Timesheets.Submit)
	staff.GET("/:staff_uuid/weekly-hours", h.Timesheets.WeeklyHours, cache)
	staff.GET("/:staff_uuid/weekly-hours/:week_start", h.Timesheets.WeeklyHours, cache)

	// Browse endpoints over synced data.
	jobs := v1.Group("/jobs", jwt)
	jobs.GET("", h.Jobs.List, cache)
	jobs.GET("/my/:staff_uuid", h.Jobs.ListMine, cache)
	jobs.GET("/:job_id", h.Jobs.Detail, cache)

	clients := v1.Group("/clients", jwt)
	clients.GET("", h.Clients.List, cache)
	clients.GET("/:uuid", h.Clients.Detail, cache)
	clients.PATCH("/:uuid/archive", h.Clients.ToggleArchive)
	clients.GET("/:uuid/jobs", h.Clients.ListJobs, cache)
	clients.GET("/:uuid/contacts", h.Clients.ListContacts, cache)

	v1.GET("/contacts", h.Clients.ListAllContacts, jwt, cache)
}
