package notify

import (
	"context"
	"log"
)

// LogSender writes notifications to the process log. Used when no delivery
// channel is configured.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) Send(_ context.Context, userID uint, message string) error {
	log.Printf("[notify] user %d: %s", userID, message)
	return nil
}
