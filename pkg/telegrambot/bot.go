package telegrambot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/handlers"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/services"
)

// Bot represents the Telegram bot
type Bot struct {
	bot      *telebot.Bot
	config   *config.Config
	handlers map[permissions.AccessType]handlers.MessageHandler
	permCtrl *permissions.Controller
	logger   *logrus.Logger
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg *config.Config,
	subscriptions *services.SubscriptionService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	userStore *services.UserStore,
	broadcast *services.BroadcastService,
	permCtrl *permissions.Controller,
	logger *logrus.Logger,
) (*Bot, error) {
	settings := telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
		},
	}

	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	factory := handlers.NewHandlerFactory(subscriptions, stateService, qrService, userStore, broadcast, cfg, logger)

	bot := &Bot{
		bot:      b,
		config:   cfg,
		handlers: make(map[permissions.AccessType]handlers.MessageHandler),
		permCtrl: permCtrl,
		logger:   logger,
	}

	bot.handlers[permissions.Admin] = factory.CreateHandler(permissions.Admin)
	bot.handlers[permissions.Member] = factory.CreateHandler(permissions.Member)

	bot.setupRoutes()

	return bot, nil
}

// Start starts the bot and blocks until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

// setupRoutes wires middleware and update routing
func (b *Bot) setupRoutes() {
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if sender := c.Sender(); sender != nil {
				b.logger.Debugf("Update from %d: %s", sender.ID, c.Text())
			}
			return next(c)
		}
	})

	b.bot.Handle(telebot.OnText, b.handleUpdate)
	b.bot.Handle("/start", b.handleUpdate)

	b.bot.Handle(telebot.OnCheckout, func(c telebot.Context) error {
		return b.handlerFor(c).HandleCheckout(c)
	})
	b.bot.Handle(telebot.OnPayment, func(c telebot.Context) error {
		return b.handlerFor(c).HandlePayment(context.Background(), c)
	})
}

// handlerFor picks the handler matching the sender's access type
func (b *Bot) handlerFor(c telebot.Context) handlers.MessageHandler {
	accessType := permissions.Member
	if sender := c.Sender(); sender != nil {
		accessType = b.permCtrl.GetAccessType(sender.ID)
	}
	return b.handlers[accessType]
}

// handleUpdate handles a text update from Telegram
func (b *Bot) handleUpdate(c telebot.Context) error {
	return b.handlerFor(c).Handle(context.Background(), c)
}
