package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fleetrent/config"
	"fleetrent/models"
	"fleetrent/services/tasks"
	"fleetrent/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePickupReminder, handlePickupReminderTask)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handlePickupReminderTask surfaces the reminder. Delivery is a structured log
// entry that downstream notification plumbing can tail.
func handlePickupReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("pickup reminder: invalid payload", zap.Error(err))
		return err
	}

	logger.Info("pickup reminder due",
		zap.String("bookingID", p.BookingID),
		zap.String("userID", p.UserID),
		zap.String("vehicleID", p.VehicleID),
		zap.String("startDate", p.StartDate),
		zap.String("endDate", p.EndDate),
	)
	return nil
}
