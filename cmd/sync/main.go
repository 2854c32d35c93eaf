// The sync worker pulls staff, clients, jobs and time entries from the
// upstream practice-management API on an interval, stores them in MySQL
// and republishes snapshots onto the message bus. Run with -once for a
// single pass (cron-style deployments).
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neomatrix/timekeeper/internal/config"
	"github.com/neomatrix/timekeeper/internal/database"
	"github.com/neomatrix/timekeeper/internal/queue"
	"github.com/neomatrix/timekeeper/internal/repository"
	"github.com/neomatrix/timekeeper/internal/service"
	"github.com/neomatrix/timekeeper/internal/sync"
	"github.com/neomatrix/timekeeper/internal/upstream"
)

func main() {
	once := flag.Bool("once", false, "run a single sync pass and exit")
	republish := flag.Bool("republish", false, "republish all snapshots from the database and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load().RequireUpstream()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	staffRepo := repository.NewStaffRepo(db)
	clientRepo := repository.NewClientRepo(db)
	jobRepo := repository.NewJobRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	timesheetRepo := repository.NewTimesheetRepo(db)

	pub, err := queue.NewPublisher(queue.BrokerURL())
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer pub.Close()

	repub := service.NewRepublisher(staffRepo, clientRepo, jobRepo, taskRepo, pub)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *republish {
		if err := repub.RepublishAll(ctx); err != nil {
			log.Fatalf("republish: %v", err)
		}
		return
	}

	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamToken, cfg.UpstreamAccountID)
	syncer := sync.New(api, staffRepo, clientRepo, jobRepo, taskRepo, timesheetRepo, repub)

	if *once {
		if err := syncer.SyncAll(ctx); err != nil {
			log.Fatalf("sync: %v", err)
		}
		return
	}

	interval := time.Duration(cfg.SyncIntervalMin) * time.Minute
	log.Printf("sync: starting with %s interval", interval)
	syncer.Run(ctx, interval)
}
