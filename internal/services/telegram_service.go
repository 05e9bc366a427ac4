package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/hibiken/asynq"

	"earnings-wallet/pkg/common"
)

// TypeTelegramNotify is the asynq task type for admin notifications.
// Keep in sync with the worker mux registration.
const TypeTelegramNotify = "telegram:notify"

type telegramNotifyPayload struct {
	Message string `json:"message"`
}

// TelegramService delivers admin notifications to a Telegram chat. Notify
// enqueues through asynq so request handlers never block on the Telegram API;
// the worker process calls Send.
type TelegramService struct {
	Client   *asynq.Client
	botToken string
	chatID   string
}

func NewTelegramService(client *asynq.Client) *TelegramService {
	return &TelegramService{
		Client:   client,
		botToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		chatID:   os.Getenv("TELEGRAM_CHAT_ID"),
	}
}

// Notify enqueues the message for background delivery. Failures are logged
// and swallowed; notification delivery never fails a wallet operation.
func (s *TelegramService) Notify(message string) {
	if s.Client == nil {
		log.Printf("telegram notify (no queue): %s", message)
		return
	}
	payload, err := json.Marshal(telegramNotifyPayload{Message: message})
	if err != nil {
		log.Printf("failed to marshal telegram payload: %v", err)
		return
	}
	task := asynq.NewTask(TypeTelegramNotify, payload)
	if _, err := s.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("notifications")); err != nil {
		log.Printf("failed to enqueue telegram notification: %v", err)
	}
}

// Send posts the message to the Telegram Bot API. Called by the worker.
func (s *TelegramService) Send(message string) error {
	if s.botToken == "" || s.chatID == "" {
		log.Println("telegram credentials not configured, dropping notification")
		return nil
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)
	form := url.Values{}
	form.Set("chat_id", s.chatID)
	form.Set("text", message)
	form.Set("parse_mode", "HTML")

	resp, err := common.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	if body, ok := resp.(map[string]interface{}); ok {
		if okField, exists := body["ok"].(bool); exists && !okField {
			return fmt.Errorf("telegram api rejected message: %v", body["description"])
		}
	}
	return nil
}

// DecodeNotifyPayload extracts the message from a queued notification task.
func DecodeNotifyPayload(data []byte) (string, error) {
	var p telegramNotifyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("invalid telegram notify payload: %w", err)
	}
	return p.Message, nil
}
