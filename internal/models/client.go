package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"xui-sub-bot/internal/constants"
)

// TelegramID decodes the panel's tgId field, which different panel versions
// emit either as a number or as a string.
type TelegramID int64

// UnmarshalJSON accepts both numeric and quoted tgId values
func (t *TelegramID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some panels store a @username here instead of an id
		*t = 0
		return nil
	}
	*t = TelegramID(id)
	return nil
}

// MarshalJSON always emits tgId as a number
func (t TelegramID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(t), 10)), nil
}

// Client represents one VPN account embedded in an inbound's settings
type Client struct {
	ID         string     `json:"id"`
	Flow       string     `json:"flow,omitempty"`
	Email      string     `json:"email"`
	LimitIP    int        `json:"limitIp"`
	TotalGB    int64      `json:"totalGB"`
	ExpiryTime int64      `json:"expiryTime"`
	Enable     bool       `json:"enable"`
	TgID       TelegramID `json:"tgId"`
	SubID      string     `json:"subId,omitempty"`
}

// InboundSettings is the decoded form of an inbound's JSON-encoded settings
// field
type InboundSettings struct {
	Clients    []Client `json:"clients"`
	Decryption string   `json:"decryption,omitempty"`
}

// ToDictionary converts the client to a map for API requests
func (c *Client) ToDictionary() map[string]interface{} {
	result := map[string]interface{}{
		"id":         c.ID,
		"enable":     c.Enable,
		"email":      c.Email,
		"totalGB":    c.TotalGB,
		"limitIp":    c.LimitIP,
		"expiryTime": c.ExpiryTime,
		"tgId":       int64(c.TgID),
	}

	if c.Flow != "" {
		result["flow"] = c.Flow
	}
	if c.SubID != "" {
		result["subId"] = c.SubID
	}

	return result
}

// SettingsJSON renders a one-client settings payload the way the panel's
// addClient/updateClient endpoints expect it: a JSON string, not an object.
func (c *Client) SettingsJSON() (string, error) {
	settings := map[string]interface{}{
		"clients": []map[string]interface{}{c.ToDictionary()},
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal client settings: %w", err)
	}
	return string(data), nil
}

// DeriveEmail returns the deterministic account key for a Telegram user
func DeriveEmail(tgID int64) string {
	return fmt.Sprintf("%s%d", constants.EmailPrefix, tgID)
}

// MatchesTelegramUser reports whether this client record belongs to the given
// Telegram user, either via the stored tgId or the derived email key.
func (c *Client) MatchesTelegramUser(tgID int64) bool {
	return int64(c.TgID) == tgID || c.Email == DeriveEmail(tgID)
}
