package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"xui-sub-bot/internal/config"
	apperrors "xui-sub-bot/internal/errors"
	"xui-sub-bot/internal/helpers"
	"xui-sub-bot/pkg/panelclient"
)

// SubscriptionService glues the panel client to the subscription rules:
// trial eligibility, create-or-extend, link and info derivation.
type SubscriptionService struct {
	panel  *panelclient.Client
	host   string
	logger *logrus.Logger
}

// SubscribeResult describes the outcome of a create-or-extend operation
type SubscribeResult struct {
	Created  bool
	ClientID string
	Days     int
}

// SubscriptionInfo is the derived state shown by /info
type SubscriptionInfo struct {
	Expired    bool
	ExpiryTime int64
	Up         int64
	Down       int64
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(cfg *config.Config, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{
		panel:  panelclient.NewClient(cfg.Panel, logger),
		host:   hostFromBaseURL(cfg.Panel.BaseURL),
		logger: logger,
	}
}

// CheckConnection probes the panel by (re)establishing a session
func (s *SubscriptionService) CheckConnection(ctx context.Context) error {
	return s.panel.Login(ctx)
}

// Shutdown tears down the panel session
func (s *SubscriptionService) Shutdown(ctx context.Context) {
	s.panel.Logout(ctx)
}

// IsTrialEligible reports whether the user may claim the free trial. A user
// is eligible iff no client record exists anywhere; any existing record,
// expired or not, consumes the trial forever.
func (s *SubscriptionService) IsTrialEligible(ctx context.Context, tgID int64) (bool, error) {
	_, _, err := s.panel.FindUserByTelegramID(ctx, tgID)
	if errors.Is(err, apperrors.ErrClientNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// SubscribeOrExtend extends the user's existing subscription or, when no
// record exists, creates one in the first inbound.
func (s *SubscriptionService) SubscribeOrExtend(ctx context.Context, tgID int64, days int) (*SubscribeResult, error) {
	existing, inbound, err := s.panel.FindUserByTelegramID(ctx, tgID)
	if err == nil {
		if err := s.panel.UpdateUserExpiry(ctx, inbound.ID, existing.ID, tgID, days); err != nil {
			return nil, err
		}
		return &SubscribeResult{ClientID: existing.ID, Days: days}, nil
	}
	if !errors.Is(err, apperrors.ErrClientNotFound) {
		return nil, err
	}

	inbounds, err := s.panel.GetInbounds(ctx)
	if err != nil {
		return nil, err
	}
	if len(inbounds) == 0 {
		return nil, apperrors.ErrNoInbounds
	}

	clientID, err := s.panel.CreateUser(ctx, inbounds[0].ID, tgID, days)
	if err != nil {
		return nil, err
	}

	return &SubscribeResult{Created: true, ClientID: clientID, Days: days}, nil
}

// ConnectionLink derives the vless URI for the user's account. Requires a
// record whose expiry has not passed.
func (s *SubscriptionService) ConnectionLink(ctx context.Context, tgID int64) (string, error) {
	client, inbound, err := s.panel.FindUserByTelegramID(ctx, tgID)
	if err != nil {
		return "", err
	}

	if helpers.IsExpiredNow(client.ExpiryTime) {
		return "", apperrors.ErrSubscriptionExpired
	}

	return helpers.VlessLink(client, inbound, s.host), nil
}

// Info assembles the user's expiry status and traffic counters
func (s *SubscriptionService) Info(ctx context.Context, tgID int64) (*SubscriptionInfo, error) {
	client, _, err := s.panel.FindUserByTelegramID(ctx, tgID)
	if err != nil {
		return nil, err
	}

	info := &SubscriptionInfo{
		Expired:    helpers.IsExpired(client.ExpiryTime, time.Now().UnixMilli()),
		ExpiryTime: client.ExpiryTime,
	}

	stats, err := s.panel.GetClientStats(ctx, client.Email)
	if err != nil {
		// Counters are cosmetic here; expiry status still renders
		s.logger.Warnf("Failed to fetch traffic stats for %s: %v", client.Email, err)
		return info, nil
	}
	if stats != nil {
		info.Up = stats.Up
		info.Down = stats.Down
	}

	return info, nil
}

// ListInbounds returns the display names of all configured inbounds
func (s *SubscriptionService) ListInbounds(ctx context.Context) ([]string, error) {
	inbounds, err := s.panel.GetInbounds(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(inbounds))
	for i := range inbounds {
		if name := inbounds[i].DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// hostFromBaseURL extracts the connection host from the panel URL
func hostFromBaseURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return baseURL
	}
	return u.Hostname()
}
