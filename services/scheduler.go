package services

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/famly-app/family-reminder/utils"
)

// ReminderScheduler runs the reminder generator on a cron schedule
// (default 09:00 every day). A failed run is logged and the next scheduled
// run proceeds normally.
type ReminderScheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
	spec      string
}

func NewReminderScheduler(reminders *ReminderService, spec string) *ReminderScheduler {
	return &ReminderScheduler{
		cron:      cron.New(),
		reminders: reminders,
		spec:      spec,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		utils.InfoLogger.Println("Checking for upcoming events to remind...")
		processed, err := s.reminders.GenerateDueReminders(time.Now())
		if err != nil {
			utils.ErrorLogger.Printf("Scheduled reminder run failed: %v", err)
			return
		}
		utils.InfoLogger.Printf("Scheduled reminder run done, %d event(s) processed", processed)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.cron.Stop()
}
