package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"xui-sub-bot/internal/commands"
	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/helpers"
	"xui-sub-bot/internal/i18n"
	"xui-sub-bot/internal/models"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/pricing"
	"xui-sub-bot/internal/services"
	"xui-sub-bot/internal/validation"
)

// MemberHandler serves regular users: subscription lifecycle, links, stats
type MemberHandler struct {
	BaseHandler
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	subscriptions *services.SubscriptionService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	userStore *services.UserStore,
	config *config.Config,
	logger *logrus.Logger,
) *MemberHandler {
	return &MemberHandler{
		BaseHandler: NewBaseHandler(subscriptions, stateService, qrService, userStore, config, logger),
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *MemberHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Member
}

// Handle dispatches one incoming update
func (h *MemberHandler) Handle(ctx context.Context, c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	loc := h.locale(c)
	userID := c.Sender().ID

	if state := h.stateService.GetState(userID); state.State == models.AwaitingDuration && !strings.HasPrefix(text, "/") {
		h.stateService.ClearState(userID)
		return h.handleSubscribeArg(ctx, c, loc, text)
	}

	cmd, arg := splitCommand(text)

	switch {
	case cmd == commands.Start:
		return h.handleStart(ctx, c, loc)
	case cmd == commands.Help || matchesButton(text, func(l *i18n.Locale) string { return l.BtnHelp }):
		return h.sendTextMessage(c, loc.Help, h.createMainKeyboard(loc))
	case matchesButton(text, func(l *i18n.Locale) string { return l.BtnAbout }):
		return h.sendTextMessage(c, loc.About, h.createMainKeyboard(loc))
	case cmd == commands.Subscribe:
		if arg == "" {
			h.stateService.SetState(userID, models.UserState{State: models.AwaitingDuration})
			return h.sendTextMessage(c, loc.AskDuration, nil)
		}
		return h.handleSubscribeArg(ctx, c, loc, arg)
	case cmd == commands.Get || matchesButton(text, func(l *i18n.Locale) string { return l.BtnLink }):
		return h.handleGet(ctx, c, loc)
	case cmd == commands.Info || matchesButton(text, func(l *i18n.Locale) string { return l.BtnStatus }):
		return h.handleInfo(ctx, c, loc)
	case cmd == commands.List:
		return h.handleList(ctx, c, loc)
	case matchesButton(text, func(l *i18n.Locale) string { return l.BtnTrial }):
		return h.handleTrial(ctx, c, loc)
	case matchesButton(text, func(l *i18n.Locale) string { return l.BtnBuy }):
		return h.handleBuy(c, loc)
	default:
		return h.sendTextMessage(c, loc.Help, h.createMainKeyboard(loc))
	}
}

// handleStart registers the user and probes the panel connection
func (h *MemberHandler) handleStart(ctx context.Context, c telebot.Context, loc *i18n.Locale) error {
	userID := c.Sender().ID

	if added, err := h.userStore.Add(userID); err != nil {
		h.logger.Warnf("Failed to store user %d: %v", userID, err)
	} else if added {
		h.logger.Infof("New user registered: %d", userID)
	}

	if err := h.subscriptions.CheckConnection(ctx); err != nil {
		h.logger.Errorf("Panel connection check failed: %v", err)
		return h.sendTextMessage(c, loc.ConnectionFailed, h.createMainKeyboard(loc))
	}

	return h.sendTextMessage(c, loc.Welcome, h.createMainKeyboard(loc))
}

// handleSubscribeArg validates a duration argument and runs create-or-extend
func (h *MemberHandler) handleSubscribeArg(ctx context.Context, c telebot.Context, loc *i18n.Locale, arg string) error {
	days, err := validation.ValidateDuration(arg)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf(loc.InvalidDuration, arg), h.createMainKeyboard(loc))
	}
	return h.subscribe(ctx, c, loc, days)
}

// subscribe runs the shared create-or-extend flow and reports the outcome
func (h *MemberHandler) subscribe(ctx context.Context, c telebot.Context, loc *i18n.Locale, days int) error {
	result, err := h.subscriptions.SubscribeOrExtend(ctx, c.Sender().ID, days)
	if err != nil {
		h.logger.Errorf("Subscribe failed for user %d: %v", c.Sender().ID, err)
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}

	if result.Created {
		return h.sendTextMessage(c, fmt.Sprintf(loc.Created, result.ClientID), h.createMainKeyboard(loc))
	}
	return h.sendTextMessage(c, fmt.Sprintf(loc.Extended, result.Days), h.createMainKeyboard(loc))
}

// handleTrial grants the one-time free plan if no record exists yet
func (h *MemberHandler) handleTrial(ctx context.Context, c telebot.Context, loc *i18n.Locale) error {
	eligible, err := h.subscriptions.IsTrialEligible(ctx, c.Sender().ID)
	if err != nil {
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}
	if !eligible {
		return h.sendTextMessage(c, loc.TrialUsed, h.createMainKeyboard(loc))
	}

	if _, err := h.subscriptions.SubscribeOrExtend(ctx, c.Sender().ID, pricing.Trial.Days); err != nil {
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}

	return h.sendTextMessage(c, fmt.Sprintf(loc.TrialGranted, pricing.Trial.Days), h.createMainKeyboard(loc))
}

// handleBuy issues a Telegram Stars invoice for the monthly plan
func (h *MemberHandler) handleBuy(c telebot.Context, loc *i18n.Locale) error {
	invoice := &telebot.Invoice{
		Title:       loc.InvoiceTitle,
		Description: fmt.Sprintf(loc.InvoiceDescription, pricing.Monthly.Days),
		Payload:     fmt.Sprintf("sub_%d_%d", pricing.Monthly.Days, c.Sender().ID),
		Currency:    "XTR",
		Prices: []telebot.Price{
			{Label: loc.InvoiceTitle, Amount: pricing.Monthly.Stars},
		},
	}

	if err := c.Send(invoice); err != nil {
		h.logger.Errorf("Failed to send invoice to %d: %v", c.Sender().ID, err)
		return h.sendTextMessage(c, loc.GenericError, h.createMainKeyboard(loc))
	}
	return nil
}

// HandleCheckout confirms the pre-checkout query
func (h *MemberHandler) HandleCheckout(c telebot.Context) error {
	return c.Accept()
}

// HandlePayment fulfills a successful payment through the same
// create-or-extend path as /subscribe
func (h *MemberHandler) HandlePayment(ctx context.Context, c telebot.Context) error {
	loc := h.locale(c)
	payment := c.Message().Payment

	var days int
	var tgID int64
	if _, err := fmt.Sscanf(payment.Payload, "sub_%d_%d", &days, &tgID); err != nil || days <= 0 {
		h.logger.Errorf("Unparseable payment payload %q from %d", payment.Payload, c.Sender().ID)
		return h.sendTextMessage(c, loc.GenericError, h.createMainKeyboard(loc))
	}

	h.logger.Infof("Payment received from %d: %d %s for %d days",
		c.Sender().ID, payment.Total, payment.Currency, days)

	if _, err := h.subscriptions.SubscribeOrExtend(ctx, c.Sender().ID, days); err != nil {
		h.logger.Errorf("Fulfillment failed for user %d: %v", c.Sender().ID, err)
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}

	return h.sendTextMessage(c, fmt.Sprintf(loc.PaymentThanks, days), h.createMainKeyboard(loc))
}

// handleGet sends the vless connection link and its QR code
func (h *MemberHandler) handleGet(ctx context.Context, c telebot.Context, loc *i18n.Locale) error {
	link, err := h.subscriptions.ConnectionLink(ctx, c.Sender().ID)
	if err != nil {
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}

	if err := h.sendTextMessage(c, fmt.Sprintf(loc.LinkMessage, link), h.createMainKeyboard(loc)); err != nil {
		return err
	}
	return h.sendQRCode(c, link)
}

// handleInfo shows expiry status and traffic counters
func (h *MemberHandler) handleInfo(ctx context.Context, c telebot.Context, loc *i18n.Locale) error {
	info, err := h.subscriptions.Info(ctx, c.Sender().ID)
	if err != nil {
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}

	status := loc.StatusActive
	if info.Expired {
		status = loc.StatusExpired
	}

	message := fmt.Sprintf(loc.InfoMessage,
		status,
		helpers.FormatExpiry(info.ExpiryTime, loc.Unlimited),
		helpers.FormatTraffic(info.Up),
		helpers.FormatTraffic(info.Down),
	)

	return h.sendTextMessage(c, message, h.createMainKeyboard(loc))
}

// handleList shows the available inbound names
func (h *MemberHandler) handleList(ctx context.Context, c telebot.Context, loc *i18n.Locale) error {
	names, err := h.subscriptions.ListInbounds(ctx)
	if err != nil {
		return h.sendTextMessage(c, userMessage(err, loc), h.createMainKeyboard(loc))
	}
	if len(names) == 0 {
		return h.sendTextMessage(c, loc.ListEmpty, h.createMainKeyboard(loc))
	}
	return h.sendTextMessage(c, fmt.Sprintf(loc.ListHeader, strings.Join(names, "\n")), h.createMainKeyboard(loc))
}

// splitCommand separates "/cmd arg" into its command and argument parts,
// dropping a @botname suffix.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	cmd, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at != -1 {
		cmd = cmd[:at]
	}
	return cmd, strings.TrimSpace(arg)
}
