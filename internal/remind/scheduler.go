package remind

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler polls the store for due reminders and delivers them on Alerts.
// The channel is buffered; alerts are dropped when the consumer falls
// behind rather than blocking the cron goroutine.
type Scheduler struct {
	store  *Store
	cron   *cron.Cron
	alerts chan Reminder
}

func NewScheduler(store *Store) *Scheduler {
	return &Scheduler{
		store:  store,
		cron:   cron.New(),
		alerts: make(chan Reminder, 16),
	}
}

// Alerts returns the channel due reminders are delivered on.
func (s *Scheduler) Alerts() <-chan Reminder {
	return s.alerts
}

// Start begins polling. Safe to call once.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 30s", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts polling and waits for any in-flight tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	due, err := s.store.DueBefore(time.Now())
	if err != nil {
		return
	}
	for _, r := range due {
		select {
		case s.alerts <- r:
		default:
		}
	}
}
