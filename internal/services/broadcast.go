package services

import (
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"
)

// Sender is the slice of the bot API the broadcaster needs; *telebot.Bot
// satisfies it.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// BroadcastSummary reports the outcome of one broadcast run
type BroadcastSummary struct {
	Delivered int
	Failed    int
}

// BroadcastService sends a message to every stored user sequentially, with a
// fixed delay between sends to stay under Telegram's rate limit.
type BroadcastService struct {
	store  *UserStore
	delay  time.Duration
	logger *logrus.Logger
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(store *UserStore, delay time.Duration, logger *logrus.Logger) *BroadcastService {
	return &BroadcastService{
		store:  store,
		delay:  delay,
		logger: logger,
	}
}

// Broadcast delivers the message to all stored ids. Per-recipient failures
// (blocked bot, deleted account) are counted and never abort the loop.
func (s *BroadcastService) Broadcast(sender Sender, message string, opts ...interface{}) BroadcastSummary {
	ids := s.store.All()
	s.logger.Infof("Broadcasting to %d users", len(ids))

	var summary BroadcastSummary
	for i, id := range ids {
		if _, err := sender.Send(telebot.ChatID(id), message, opts...); err != nil {
			s.logger.Warnf("Broadcast to %d failed: %v", id, err)
			summary.Failed++
		} else {
			summary.Delivered++
		}

		if s.delay > 0 && i < len(ids)-1 {
			time.Sleep(s.delay)
		}
	}

	s.logger.Infof("Broadcast done: %d delivered, %d failed", summary.Delivered, summary.Failed)
	return summary
}
