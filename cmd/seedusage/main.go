package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/kmorten/usage_dashboard/backend/internal/config"
	"github.com/kmorten/usage_dashboard/backend/internal/database"
	"github.com/kmorten/usage_dashboard/backend/internal/store"
)

// seedusage inserts a small demo event set for local development: three days
// of activity for one user plus a second user on the last day, so isolation
// is visible in the dashboard immediately.
func main() {
	user := flag.String("user", "testuser", "primary user id to seed")
	other := flag.String("other", "otheruser", "second user id seeded on the last day")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(config.Options{})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := database.RunMigrations(ctx, cfg.Database); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	now := time.Now().UTC()

	events := []store.UsageEvent{
		{UserID: *user, OccurredAt: now.AddDate(0, 0, -2), Tokens: 100, Activity: "chat"},
		{UserID: *user, OccurredAt: now.AddDate(0, 0, -1), Tokens: 200, Activity: "api"},
		{UserID: *user, OccurredAt: now, Tokens: 150, Activity: "chat"},
		{UserID: *other, OccurredAt: now, Tokens: 999, Activity: "api"},
	}

	for _, event := range events {
		id, err := st.InsertUsageEvent(ctx, event)
		if err != nil {
			log.Fatalf("insert event for %s: %v", event.UserID, err)
		}
		log.Printf("seeded %s %s %d tokens (%s) as %s",
			event.UserID, event.OccurredAt.Format("2006-01-02"), event.Tokens, event.Activity, id)
	}

	log.Printf("seeded %d events for %s", len(events), strings.Join([]string{*user, *other}, ", "))
}
