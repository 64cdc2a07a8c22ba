package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"xui-sub-bot/internal/commands"
	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/models"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/services"
)

// AdminHandler extends the member surface with broadcasts
type AdminHandler struct {
	MemberHandler
	broadcast *services.BroadcastService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	subscriptions *services.SubscriptionService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	userStore *services.UserStore,
	broadcast *services.BroadcastService,
	config *config.Config,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		MemberHandler: *NewMemberHandler(subscriptions, stateService, qrService, userStore, config, logger),
		broadcast:     broadcast,
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *AdminHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Admin
}

// Handle dispatches one incoming update, trying admin commands first
func (h *AdminHandler) Handle(ctx context.Context, c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if state := h.stateService.GetState(userID); state.State == models.AwaitingBroadcastText && !strings.HasPrefix(text, "/") {
		h.stateService.ClearState(userID)
		return h.runBroadcast(c, text)
	}

	if cmd, arg := splitCommand(text); cmd == commands.Broadcast {
		if arg == "" {
			h.stateService.SetState(userID, models.UserState{State: models.AwaitingBroadcastText})
			return h.sendTextMessage(c, "Send the broadcast text.", nil)
		}
		return h.runBroadcast(c, arg)
	}

	return h.MemberHandler.Handle(ctx, c)
}

// runBroadcast sends the message to every stored user and reports a summary
func (h *AdminHandler) runBroadcast(c telebot.Context, message string) error {
	summary := h.broadcast.Broadcast(c.Bot(), message, &telebot.SendOptions{ParseMode: telebot.ModeHTML})

	report := fmt.Sprintf("📣 Broadcast complete: %d delivered, %d failed.", summary.Delivered, summary.Failed)
	return h.sendTextMessage(c, report, h.createMainKeyboard(h.locale(c)))
}
