package services

import (
	"context"
	"log"
	"time"

	"customerhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// StatsService logs a daily customer summary (08:00)
type StatsService struct {
	customers repositories.CustomerRepository
	cron      *cron.Cron
}

// NewStatsService creates a new stats service
func NewStatsService(customers repositories.CustomerRepository) *StatsService {
	return &StatsService{
		customers: customers,
		cron:      cron.New(),
	}
}

// Start schedules the daily summary job
func (s *StatsService) Start() {
	if _, err := s.cron.AddFunc("0 8 * * *", s.logDailySummary); err != nil {
		log.Printf("❌ Failed to schedule daily summary: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ StatsService started (daily summary at 08:00)")
}

// Stop stops the scheduler
func (s *StatsService) Stop() {
	s.cron.Stop()
	log.Println("🛑 StatsService stopped")
}

func (s *StatsService) logDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		log.Printf("❌ Daily summary query error: %v", err)
		return
	}

	var sum float64
	for _, customer := range customers {
		sum += float64(customer.Age)
	}

	avg := 0.0
	if len(customers) > 0 {
		avg = sum / float64(len(customers))
	}

	log.Printf("📊 Daily summary: %d customers, average age %.1f", len(customers), avg)
}
