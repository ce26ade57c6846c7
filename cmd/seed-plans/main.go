package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prepply/prepply-backend/internal/config"
	"github.com/prepply/prepply-backend/internal/database"
	"github.com/prepply/prepply-backend/internal/logger"
)

type seedPlan struct {
	Name         string
	Description  string
	Price        int64
	Currency     string
	DurationDays int
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding Subscription Plans ===")

	plans := []seedPlan{
		{
			Name:         "Monthly",
			Description:  "Full access to AI tutoring and unlimited quiz generation for a month",
			Price:        299,
			Currency:     "INR",
			DurationDays: 30,
		},
		{
			Name:         "Quarterly",
			Description:  "Three months of full access at a discount",
			Price:        749,
			Currency:     "INR",
			DurationDays: 90,
		},
		{
			Name:         "Yearly",
			Description:  "A full year of exam prep, best value",
			Price:        2499,
			Currency:     "INR",
			DurationDays: 365,
		},
	}

	successCount := 0
	for _, p := range plans {
		_, err := pool.Exec(ctx,
			`INSERT INTO plans (name, description, price, currency, duration_days, is_active)
			 VALUES ($1, $2, $3, $4, $5, TRUE)
			 ON CONFLICT (name) DO UPDATE
			 SET description = EXCLUDED.description,
			     price = EXCLUDED.price,
			     currency = EXCLUDED.currency,
			     duration_days = EXCLUDED.duration_days,
			     is_active = TRUE,
			     updated_at = NOW()`,
			p.Name, p.Description, p.Price, p.Currency, p.DurationDays)
		if err != nil {
			fmt.Printf("Error seeding plan %s: %v\n", p.Name, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Upserted %d/%d plans.\n", successCount, len(plans))
}
