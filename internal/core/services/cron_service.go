package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled ledger jobs
type CronService struct {
	cron     *cron.Cron
	ledger   *BorrowService
	schedule string
}

// NewCronService creates a cron service; an empty schedule disables it
func NewCronService(ledger *BorrowService, schedule string) *CronService {
	return &CronService{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		ledger:   ledger,
		schedule: schedule,
	}
}

// Start registers the overdue sweep and starts the scheduler
func (s *CronService) Start() error {
	if s.schedule == "" {
		log.Println("⏸️ Overdue sweep disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runOverdueSweep); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started [overdue sweep: %q]", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.SweepOverdue(ctx); err != nil {
		log.Printf("❌ Overdue sweep error: %v", err)
	}
}

// SweepOverdue logs every open loan past its due date and returns how many there are
func (s *CronService) SweepOverdue(ctx context.Context) (int, error) {
	now := s.ledger.Now()
	records, err := s.ledger.ListOverdue(ctx, &now)
	if err != nil {
		return 0, err
	}

	for _, r := range records {
		title := ""
		if r.Book != nil {
			title = r.Book.Title
		}
		name := ""
		if r.Member != nil {
			name = r.Member.FullName()
		}
		log.Printf("⏰ Overdue: record %d, %q borrowed by %s, %d day(s) late",
			r.ID, title, name, r.DaysOverdue(now))
	}

	if len(records) > 0 {
		log.Printf("⏰ Overdue sweep found %d overdue loan(s)", len(records))
	}
	return len(records), nil
}
