package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"xui-sub-bot/internal/config"
	apperrors "xui-sub-bot/internal/errors"
	"xui-sub-bot/internal/i18n"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/services"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	subscriptions *services.SubscriptionService
	stateService  *services.UserStateService
	qrService     *services.QRService
	userStore     *services.UserStore
	config        *config.Config
	logger        *logrus.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(
	subscriptions *services.SubscriptionService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	userStore *services.UserStore,
	config *config.Config,
	logger *logrus.Logger,
) BaseHandler {
	return BaseHandler{
		subscriptions: subscriptions,
		stateService:  stateService,
		qrService:     qrService,
		userStore:     userStore,
		config:        config,
		logger:        logger,
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *BaseHandler) CanHandle(accessType permissions.AccessType) bool {
	return false
}

// sendTextMessage sends an HTML text message with optional markup
func (h *BaseHandler) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeHTML,
	}

	if markup != nil {
		opts.ReplyMarkup = markup
	}

	_, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		h.logger.Errorf("Failed to send message: %v", err)
	}
	return err
}

// sendQRCode sends a QR code image for the given link
func (h *BaseHandler) sendQRCode(c telebot.Context, link string) error {
	qrBytes, err := h.qrService.GenerateQR(link)
	if err != nil {
		h.logger.Errorf("Failed to generate QR code: %v", err)
		return err
	}

	photo := &telebot.Photo{File: telebot.FromReader(bytes.NewReader(qrBytes))}
	_, err = c.Bot().Send(c.Recipient(), photo)
	if err != nil {
		h.logger.Errorf("Failed to send QR code: %v", err)
	}
	return err
}

// createMainKeyboard creates the localized main reply keyboard
func (h *BaseHandler) createMainKeyboard(loc *i18n.Locale) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	markup.Reply(
		telebot.Row{
			telebot.Btn{Text: loc.BtnStatus},
			telebot.Btn{Text: loc.BtnLink},
		},
		telebot.Row{
			telebot.Btn{Text: loc.BtnTrial},
			telebot.Btn{Text: loc.BtnBuy},
		},
		telebot.Row{
			telebot.Btn{Text: loc.BtnHelp},
			telebot.Btn{Text: loc.BtnAbout},
		},
	)

	return markup
}

// locale picks the sender's locale
func (h *BaseHandler) locale(c telebot.Context) *i18n.Locale {
	if sender := c.Sender(); sender != nil {
		return i18n.Get(sender.LanguageCode)
	}
	return i18n.Get("")
}

// matchesButton reports whether the text equals the given keyboard label in
// any locale.
func matchesButton(text string, pick func(*i18n.Locale) string) bool {
	for _, loc := range i18n.All() {
		if pick(loc) == text {
			return true
		}
	}
	return false
}

// userMessage maps an operation error to the localized reply template.
// Externally caused failures degrade to templated text; only the panel's own
// sanitized message leaks through.
func userMessage(err error, loc *i18n.Locale) string {
	var authErr *apperrors.AuthenticationError
	var panelErr *apperrors.PanelError

	switch {
	case errors.Is(err, apperrors.ErrClientNotFound):
		return loc.NoSubscription
	case errors.Is(err, apperrors.ErrSubscriptionExpired):
		return loc.SubscriptionExpired
	case errors.Is(err, apperrors.ErrNoInbounds):
		return loc.NoInbounds
	case errors.As(err, &authErr):
		return loc.ConnectionFailed
	case errors.As(err, &panelErr):
		return fmt.Sprintf(loc.PanelErrorPrefix, html.EscapeString(panelErr.Message))
	default:
		return loc.GenericError
	}
}
