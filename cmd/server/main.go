package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/neomatrix/timekeeper/internal/config"
	"github.com/neomatrix/timekeeper/internal/database"
	"github.com/neomatrix/timekeeper/internal/handler"
	"github.com/neomatrix/timekeeper/internal/queue"
	"github.com/neomatrix/timekeeper/internal/repository"
	"github.com/neomatrix/timekeeper/internal/router"
	"github.com/neomatrix/timekeeper/internal/timesheet"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables caching and rate limiting

	staffRepo := repository.NewStaffRepo(db)
	clientRepo := repository.NewClientRepo(db)
	jobRepo := repository.NewJobRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	timesheetRepo := repository.NewTimesheetRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	svc := timesheet.NewService(timesheetRepo, staffRepo, taskRepo, jobRepo)

	// The audit consumer tails events.# and appends to logs/sync.log.
	// It reconnects on its own; a dead broker never blocks the API.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit-consumer: stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, userRepo, staffRepo, tokenRepo),
		Timesheets: handler.NewTimesheetHandler(svc),
		Jobs:       handler.NewJobHandler(jobRepo, taskRepo, clientRepo, timesheetRepo),
		Clients:    handler.NewClientHandler(clientRepo, jobRepo),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
