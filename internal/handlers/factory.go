package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/services"
)

// MessageHandler defines the interface for handling Telegram updates
type MessageHandler interface {
	Handle(ctx context.Context, c telebot.Context) error
	HandleCheckout(c telebot.Context) error
	HandlePayment(ctx context.Context, c telebot.Context) error
	CanHandle(accessType permissions.AccessType) bool
}

// HandlerFactory creates message handlers
type HandlerFactory struct {
	subscriptions *services.SubscriptionService
	stateService  *services.UserStateService
	qrService     *services.QRService
	userStore     *services.UserStore
	broadcast     *services.BroadcastService
	config        *config.Config
	logger        *logrus.Logger
}

// NewHandlerFactory creates a new handler factory
func NewHandlerFactory(
	subscriptions *services.SubscriptionService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	userStore *services.UserStore,
	broadcast *services.BroadcastService,
	config *config.Config,
	logger *logrus.Logger,
) *HandlerFactory {
	return &HandlerFactory{
		subscriptions: subscriptions,
		stateService:  stateService,
		qrService:     qrService,
		userStore:     userStore,
		broadcast:     broadcast,
		config:        config,
		logger:        logger,
	}
}

// CreateHandler creates a message handler for the given access type
func (f *HandlerFactory) CreateHandler(accessType permissions.AccessType) MessageHandler {
	switch accessType {
	case permissions.Admin:
		return NewAdminHandler(f.subscriptions, f.stateService, f.qrService, f.userStore, f.broadcast, f.config, f.logger)
	default:
		return NewMemberHandler(f.subscriptions, f.stateService, f.qrService, f.userStore, f.config, f.logger)
	}
}
