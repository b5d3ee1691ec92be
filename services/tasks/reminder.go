package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleetrent/config"
	"fleetrent/models"

	"github.com/hibiken/asynq"
)

// TypePickupReminder identifies scheduled pickup reminder tasks.
const TypePickupReminder = "reminder:pickup"

// ReminderScheduler schedules a pickup reminder to fire around a booking's
// start date.
type ReminderScheduler interface {
	SchedulePickupReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// NewPickupReminderTask builds the asynq task for a pickup reminder.
func NewPickupReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePickupReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks on the shared Redis queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler backed by the configured Redis queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// SchedulePickupReminder enqueues a reminder processed at fireAt.
func (s *AsynqReminderScheduler) SchedulePickupReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewPickupReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build pickup reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue pickup reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
