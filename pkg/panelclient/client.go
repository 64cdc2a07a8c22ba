package panelclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/constants"
	apperrors "xui-sub-bot/internal/errors"
	"xui-sub-bot/internal/helpers"
	"xui-sub-bot/internal/models"
)

const sessionKey = "session"

// Client represents a session-authenticated 3x-ui panel API client
type Client struct {
	httpClient  *resty.Client
	panelConfig config.PanelConfig
	cookieCache *cache.Cache
	logger      *logrus.Logger
}

// apiResponse is the panel's response envelope
type apiResponse struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Obj     json.RawMessage `json:"obj"`
}

// NewClient creates a new panel API client
func NewClient(panelConfig config.PanelConfig, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	return &Client{
		httpClient:  httpClient,
		panelConfig: panelConfig,
		cookieCache: cache.New(constants.CacheExpiration*time.Minute, constants.CacheCleanupInterval*time.Minute),
		logger:      logger,
	}
}

// Login establishes a fresh panel session, replacing any cached one. The
// session counts as established when the panel answers 200 with either a
// success flag in the body or session cookies.
func (c *Client) Login(ctx context.Context) error {
	c.cookieCache.Delete(sessionKey)

	c.logger.Infof("Logging in to panel at %s", c.panelConfig.BaseURL)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"username": c.panelConfig.Username,
			"password": c.panelConfig.Password,
		}).
		Post(c.panelConfig.BaseURL + "/login")

	if err != nil {
		return &apperrors.AuthenticationError{Message: fmt.Sprintf("login request failed: %v", err)}
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Login failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: "unexpected login status"}
	}

	var apiResp apiResponse
	bodySuccess := json.Unmarshal(resp.Body(), &apiResp) == nil && apiResp.Success

	cookies := resp.Cookies()
	if !bodySuccess && len(cookies) == 0 {
		return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: apiResp.Msg}
	}

	c.cookieCache.Set(sessionKey, cookies, cache.DefaultExpiration)
	c.logger.Info("Successfully logged in to panel")
	return nil
}

// Logout ends the panel session and drops the cached cookies regardless of
// how the panel answers.
func (c *Client) Logout(ctx context.Context) {
	req := c.httpClient.R().SetContext(ctx)
	if cookies, found := c.cookieCache.Get(sessionKey); found {
		req.SetCookies(cookies.([]*http.Cookie))
	}
	if _, err := req.Post(c.panelConfig.BaseURL + "/panel/api/logout"); err != nil {
		c.logger.Warnf("Logout request failed: %v", err)
	}
	c.cookieCache.Delete(sessionKey)
}

// ensureSession returns the cached session cookies, logging in lazily
func (c *Client) ensureSession(ctx context.Context) ([]*http.Cookie, error) {
	if cookies, found := c.cookieCache.Get(sessionKey); found {
		return cookies.([]*http.Cookie), nil
	}

	if err := c.Login(ctx); err != nil {
		return nil, err
	}

	cookies, found := c.cookieCache.Get(sessionKey)
	if !found {
		return nil, &apperrors.AuthenticationError{Message: "no session after login"}
	}
	return cookies.([]*http.Cookie), nil
}

// do performs an authenticated request. On a 401/403 the session is
// invalidated, re-established once and the request retried once; a second
// rejection propagates.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*resty.Response, error) {
	for attempt := 0; ; attempt++ {
		cookies, err := c.ensureSession(ctx)
		if err != nil {
			return nil, err
		}

		req := c.httpClient.R().SetContext(ctx).SetCookies(cookies)
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, c.panelConfig.BaseURL+path)
		if err != nil {
			return nil, fmt.Errorf("%s %s request failed: %w", method, path, err)
		}

		status := resp.StatusCode()
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			c.cookieCache.Delete(sessionKey)
			if attempt == 0 {
				c.logger.Warnf("Panel session rejected (%d), re-authenticating", status)
				continue
			}
			return nil, &apperrors.AuthenticationError{Status: status, Message: "session rejected after re-login"}
		}

		if status != http.StatusOK {
			c.logger.Errorf("%s %s failed - Status: %d, Response: %s", method, path, status, string(resp.Body()))
			return nil, fmt.Errorf("%s %s failed with status code: %d", method, path, status)
		}

		return resp, nil
	}
}

// GetInbounds lists the panel's inbounds, normalizing both response shapes
// (success/obj envelope and bare array) into one type.
func (c *Client) GetInbounds(ctx context.Context) ([]models.Inbound, error) {
	resp, err := c.do(ctx, http.MethodGet, "/panel/api/inbounds/list", nil)
	if err != nil {
		return nil, err
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err == nil && (apiResp.Success || apiResp.Msg != "") {
		if !apiResp.Success {
			return nil, &apperrors.PanelError{Operation: "list inbounds", Message: apiResp.Msg}
		}
		var inbounds []models.Inbound
		if err := json.Unmarshal(apiResp.Obj, &inbounds); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inbounds: %w", err)
		}
		return inbounds, nil
	}

	// Some panel versions answer with a bare array
	var inbounds []models.Inbound
	if err := json.Unmarshal(resp.Body(), &inbounds); err != nil {
		return nil, fmt.Errorf("unexpected inbounds response shape: %w", err)
	}
	return inbounds, nil
}

// FindUserByTelegramID scans every inbound's embedded client list for a
// record belonging to the given Telegram user. Inbounds with malformed
// settings are skipped so one bad inbound cannot mask the rest.
func (c *Client) FindUserByTelegramID(ctx context.Context, tgID int64) (*models.Client, *models.Inbound, error) {
	inbounds, err := c.GetInbounds(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range inbounds {
		inbound := &inbounds[i]
		settings, err := inbound.DecodeSettings()
		if err != nil {
			c.logger.Warnf("Skipping inbound %d: malformed settings: %v", inbound.ID, err)
			continue
		}

		for j := range settings.Clients {
			if settings.Clients[j].MatchesTelegramUser(tgID) {
				return &settings.Clients[j], inbound, nil
			}
		}
	}

	return nil, nil, apperrors.ErrClientNotFound
}

// CreateUser provisions a new client in the given inbound and returns its
// UUID. The account key is derived from the Telegram id.
func (c *Client) CreateUser(ctx context.Context, inboundID int, tgID int64, days int) (string, error) {
	client := models.Client{
		ID:         uuid.New().String(),
		Email:      models.DeriveEmail(tgID),
		Enable:     true,
		ExpiryTime: helpers.ExpiryFromNow(time.Now().UnixMilli(), days),
		TgID:       models.TelegramID(tgID),
	}

	settingsJSON, err := client.SettingsJSON()
	if err != nil {
		return "", err
	}

	c.logger.Infof("Creating client %s in inbound %d for %d days", client.Email, inboundID, days)

	resp, err := c.do(ctx, http.MethodPost, "/panel/api/inbounds/addClient", map[string]interface{}{
		"id":       inboundID,
		"settings": settingsJSON,
	})
	if err != nil {
		return "", err
	}

	if err := checkAPIResponse(resp.Body(), "add client"); err != nil {
		return "", err
	}

	return client.ID, nil
}

// UpdateUserExpiry extends an existing client's subscription. The new expiry
// is max(now, current expiry) + days, so extending an active subscription
// never shortens it.
func (c *Client) UpdateUserExpiry(ctx context.Context, inboundID int, clientID string, tgID int64, days int) error {
	existing, _, err := c.FindUserByTelegramID(ctx, tgID)
	if err != nil {
		return err
	}

	updated := *existing
	updated.ID = clientID
	updated.Enable = true
	updated.ExpiryTime = helpers.NextExpiry(time.Now().UnixMilli(), existing.ExpiryTime, days)

	settingsJSON, err := updated.SettingsJSON()
	if err != nil {
		return err
	}

	c.logger.Infof("Extending client %s in inbound %d by %d days", updated.Email, inboundID, days)

	resp, err := c.do(ctx, http.MethodPost, "/panel/api/inbounds/updateClient/"+clientID, map[string]interface{}{
		"id":       inboundID,
		"settings": settingsJSON,
	})
	if err != nil {
		return err
	}

	return checkAPIResponse(resp.Body(), "update client")
}

// GetClientStats fetches per-client traffic counters by account key. A
// missing record yields (nil, nil), not an error.
func (c *Client) GetClientStats(ctx context.Context, email string) (*models.ClientStat, error) {
	resp, err := c.do(ctx, http.MethodGet, "/panel/api/inbounds/getClientTraffics/"+email, nil)
	if err != nil {
		return nil, err
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse client traffics response: %w", err)
	}

	if !apiResp.Success {
		return nil, &apperrors.PanelError{Operation: "get client traffics", Message: apiResp.Msg}
	}

	if len(apiResp.Obj) == 0 || string(apiResp.Obj) == "null" {
		return nil, nil
	}

	var stat models.ClientStat
	if err := json.Unmarshal(apiResp.Obj, &stat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client traffics: %w", err)
	}
	return &stat, nil
}

// checkAPIResponse surfaces the panel's business-logic verdict
func checkAPIResponse(body []byte, operation string) error {
	if len(body) == 0 {
		return fmt.Errorf("empty response from panel for %s", operation)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", operation, err)
	}

	if !apiResp.Success {
		return &apperrors.PanelError{Operation: operation, Message: apiResp.Msg}
	}
	return nil
}
