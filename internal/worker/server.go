package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"earnings-wallet/internal/services"
)

type Worker struct {
	Telegram *services.TelegramService
}

func NewWorker(telegram *services.TelegramService) *Worker {
	return &Worker{
		Telegram: telegram,
	}
}

func (w *Worker) HandleTelegramNotify(ctx context.Context, t *asynq.Task) error {
	message, err := services.DecodeNotifyPayload(t.Payload())
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := w.Telegram.Send(message); err != nil {
		log.Printf("telegram delivery failed, will retry: %v", err)
		return err
	}
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, telegram *services.TelegramService) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical":      6,
				"notifications": 3,
				"default":       1,
			},
		},
	)

	worker := NewWorker(telegram)
	mux := asynq.NewServeMux()

	mux.HandleFunc(services.TypeTelegramNotify, worker.HandleTelegramNotify)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
