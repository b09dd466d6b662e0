package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordich/internal/database"
)

// Default window for sending due-review reminders (UTC hours).
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(userID int64, dueCount int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	users     *database.UserRepository
	mastery   *database.MasteryRepository
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		users:     database.NewUserRepository(),
		mastery:   database.NewMasteryRepository(),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds users with words due for review and tells the
// notifier how many. The actual message delivery is the notifier's concern.
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().UTC().Hour()
	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	ctx := context.Background()
	users, err := s.users.All(ctx)
	if err != nil {
		log.Printf("Error listing users for reminders: %v", err)
		return
	}

	now := time.Now().UTC()
	for _, user := range users {
		due, err := s.mastery.DueCount(ctx, user.ID, now)
		if err != nil {
			log.Printf("Error counting due words for user %d: %v", user.ID, err)
			continue
		}
		if due == 0 {
			continue
		}
		// Don't promise more than the user's daily quota.
		if due > user.DailyWords {
			due = user.DailyWords
		}
		if err := s.notifier.SendReminder(user.ID, due); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a due check for a specific user.
func (s *Scheduler) RunManualCheck(userID int64) error {
	due, err := s.mastery.DueCount(context.Background(), userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if due > 0 {
		return s.notifier.SendReminder(userID, due)
	}
	return nil
}

func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
